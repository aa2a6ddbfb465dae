package handler

import (
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nguyentantai21042004/slidecast/internal/converter"
	"github.com/nguyentantai21042004/slidecast/internal/deck"
	"github.com/nguyentantai21042004/slidecast/internal/jobstore"
	"github.com/nguyentantai21042004/slidecast/internal/model"
	"github.com/nguyentantai21042004/slidecast/pkg/response"
)

// ConvertRequest holds the non-file form fields of POST /api/convert
type ConvertRequest struct {
	Voice string `validate:"omitempty,alpha,max=32"`
	Async string `validate:"omitempty,oneof=true false 1 0"`
}

// ConvertResponse is returned when a synchronous conversion finishes
type ConvertResponse struct {
	Message    string              `json:"message"`
	JobID      string              `json:"jobId"`
	VideoURL   string              `json:"videoUrl"`
	ScriptPath string              `json:"scriptPath,omitempty"`
	DurationMs int64               `json:"durationMs"`
	Degraded   bool                `json:"degraded"`
	Details    []model.SlideDetail `json:"details"`
}

// AcceptedResponse is returned when a conversion is queued
type AcceptedResponse struct {
	Message   string       `json:"message"`
	JobID     string       `json:"jobId"`
	Status    model.Status `json:"status"`
	StatusURL string       `json:"statusUrl"`
}

// Convert handles POST /api/convert
func (h *Handler) Convert(c *fiber.Ctx) error {
	req := ConvertRequest{
		Voice: c.FormValue("voice"),
		Async: c.FormValue("async"),
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	fh, err := deckFile(c)
	if err != nil {
		return response.ValidationError(c, err.Error(), nil)
	}

	maxSize := int64(h.cfg.Server.MaxUploadMB) << 20
	if fh.Size > maxSize {
		return response.ValidationError(c, "File too large", map[string]interface{}{
			"maxSize":  maxSize,
			"fileSize": fh.Size,
		})
	}
	if !deck.IsDeckFile(fh.Filename) {
		return response.ValidationError(c, "Unsupported file type. Supported: PPTX, PDF", map[string]interface{}{
			"filename": fh.Filename,
		})
	}
	contentType, ok, err := sniffDeck(fh)
	if err != nil {
		return response.ServiceError(c, "Failed to read upload")
	}
	if !ok {
		return response.ValidationError(c, "File content does not match a PPTX or PDF deck", map[string]interface{}{
			"contentType": contentType,
		})
	}

	id, path, err := h.saveUpload(c, fh)
	if err != nil {
		h.logger.Error(c.UserContext(), "Failed to store upload: %v", err)
		return response.ServiceError(c, "Failed to store upload")
	}

	in := converter.Input{ID: id, Source: path, Voice: req.Voice}
	if h.async(req.Async) {
		return h.submit(c, in)
	}

	rec, err := h.service.Convert(c.UserContext(), in)
	if rec == nil {
		os.Remove(path)
		return h.failure(c, converter.Describe(err, h.cfg.Server.Production()))
	}
	if rec.Status == model.StatusFailed {
		return h.failure(c, rec.Error)
	}

	result := rec.Result
	return response.OK(c, ConvertResponse{
		Message:    "Video created",
		JobID:      rec.ID,
		VideoURL:   result.VideoURL,
		ScriptPath: result.ScriptPath,
		DurationMs: result.DurationMs,
		Degraded:   result.Degraded,
		Details:    result.Slides,
	})
}

func (h *Handler) submit(c *fiber.Ctx, in converter.Input) error {
	rec, err := h.service.Submit(c.UserContext(), in)
	if err != nil {
		os.Remove(in.Source)
		if model.KindOf(err) == model.KindInput {
			return h.failure(c, converter.Describe(err, h.cfg.Server.Production()))
		}
		h.logger.Error(c.UserContext(), "Failed to submit job: %v", err)
		return response.ServiceError(c, "Failed to queue conversion")
	}

	return response.Accepted(c, AcceptedResponse{
		Message:   "Conversion queued",
		JobID:     rec.ID,
		Status:    rec.Status,
		StatusURL: "/api/jobs/" + rec.ID,
	})
}

// async reads the form flag, falling back to server.async
func (h *Handler) async(v string) bool {
	if v == "" {
		return h.cfg.Server.Async
	}
	b, _ := strconv.ParseBool(v)
	return b
}

// failure maps a job error to 400 for bad input and 500 otherwise
func (h *Handler) failure(c *fiber.Ctx, info *jobstore.ErrorInfo) error {
	status := fiber.StatusInternalServerError
	if info.Kind == string(model.KindInput) {
		status = fiber.StatusBadRequest
	}
	return response.Error(c, status, response.ErrorBody{
		Message:    info.Message,
		Kind:       info.Kind,
		Stage:      info.Stage,
		SlideIndex: info.SlideIndex,
		Cause:      info.Cause,
	})
}
