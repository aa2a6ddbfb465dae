package jsonutil

import (
	"errors"
	"testing"
)

type entry struct {
	Content string `json:"content"`
	Style   string `json:"tts_prompt"`
}

func TestUnfence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `[1,2]`, `[1,2]`},
		{"json fence", "```json\n[1,2]\n```", `[1,2]`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"unterminated fence", "```json\n[1]", `[1]`},
		{"single line fence left alone", "```[1]```", "```[1]```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unfence(tt.in); got != tt.want {
				t.Errorf("Unfence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeArray(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"pure array", `[{"content":"a","tts_prompt":"calm"},{"content":"b","tts_prompt":"warm"}]`, 2, false},
		{"fenced", "```json\n[{\"content\":\"a\",\"tts_prompt\":\"x\"}]\n```", 1, false},
		{"prose around", `Here you go: [{"content":"a"}] hope it helps`, 1, false},
		{"empty array", `[]`, 0, false},
		{"no json", `I cannot help with that`, 0, true},
		{"object instead of array", `{"content":"a"}`, 0, true},
		{"truncated", `[{"content":"a"},{"content":`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeArray[entry](tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeArray() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(got) != tt.want {
				t.Errorf("DecodeArray() len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDecodeArrayNoJSON(t *testing.T) {
	_, err := DecodeArray[entry]("nothing here")
	if !errors.Is(err, ErrNoJSON) {
		t.Errorf("error = %v, want ErrNoJSON", err)
	}
}

func TestDecodeObject(t *testing.T) {
	got, err := DecodeObject[entry]("```json\n{\"content\":\"hello\",\"tts_prompt\":\"bright\"}\n```")
	if err != nil {
		t.Fatalf("DecodeObject() error = %v", err)
	}
	if got.Content != "hello" || got.Style != "bright" {
		t.Errorf("DecodeObject() = %+v", got)
	}
}
