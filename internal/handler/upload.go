package handler

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// deckFields are the multipart fields accepted for the deck, in lookup order
var deckFields = []string{"pptx", "file"}

func deckFile(c *fiber.Ctx) (*multipart.FileHeader, error) {
	for _, field := range deckFields {
		if fh, err := c.FormFile(field); err == nil {
			return fh, nil
		}
	}
	return nil, fmt.Errorf("file is required (field %q or %q)", deckFields[0], deckFields[1])
}

// sniffDeck checks the upload's content, not just its name. PPTX files are
// detected as zip containers.
func sniffDeck(fh *multipart.FileHeader) (string, bool, error) {
	f, err := fh.Open()
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", false, err
	}
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("application/pdf") || m.Is("application/zip") {
			return mtype.String(), true, nil
		}
	}
	return mtype.String(), false, nil
}

// saveUpload stores the deck under paths.uploads named by a fresh id, which
// the job reuses.
func (h *Handler) saveUpload(c *fiber.Ctx, fh *multipart.FileHeader) (string, string, error) {
	if err := os.MkdirAll(h.cfg.Paths.Uploads, 0755); err != nil {
		return "", "", fmt.Errorf("create uploads dir: %w", err)
	}
	id := uuid.NewString()
	path := filepath.Join(h.cfg.Paths.Uploads, id+strings.ToLower(filepath.Ext(fh.Filename)))
	if err := c.SaveFile(fh, path); err != nil {
		return "", "", fmt.Errorf("save upload: %w", err)
	}
	return id, path, nil
}
