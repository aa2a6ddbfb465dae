// Package jsonutil pulls JSON payloads out of model responses that may be
// fenced as markdown or surrounded by prose.
package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when a response contains no JSON value at all
var ErrNoJSON = errors.New("no JSON content found")

const previewLen = 200

// Unfence strips a surrounding ```json ... ``` block, if any.
func Unfence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	body := text[3:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		return text
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// Locate returns the span from the first opening delimiter to the last
// matching closing one. open must be '[' or '{'.
func Locate(text string, open byte) (string, error) {
	closer := byte('}')
	if open == '[' {
		closer = ']'
	}

	start := strings.IndexByte(text, open)
	if start < 0 {
		return "", ErrNoJSON
	}
	end := strings.LastIndexByte(text, closer)
	if end < start {
		return "", fmt.Errorf("no closing %c found", closer)
	}
	return text[start : end+1], nil
}

// DecodeArray decodes a JSON array of T from raw model output.
func DecodeArray[T any](raw string) ([]T, error) {
	span, err := Locate(Unfence(raw), '[')
	if err != nil {
		return nil, fmt.Errorf("%w (raw length: %d)", err, len(raw))
	}

	var out []T
	if err := json.Unmarshal([]byte(span), &out); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w (text: %s)", err, preview(span))
	}
	return out, nil
}

// DecodeObject decodes a single JSON object T from raw model output.
func DecodeObject[T any](raw string) (T, error) {
	var out T
	span, err := Locate(Unfence(raw), '{')
	if err != nil {
		return out, fmt.Errorf("%w (raw length: %d)", err, len(raw))
	}
	if err := json.Unmarshal([]byte(span), &out); err != nil {
		return out, fmt.Errorf("invalid JSON: %w (text: %s)", err, preview(span))
	}
	return out, nil
}

func preview(s string) string {
	if len(s) > previewLen {
		return s[:previewLen] + "..."
	}
	return s
}
