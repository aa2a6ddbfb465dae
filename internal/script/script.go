// Package script writes the narration of a finished job as a Word document,
// one section per slide.
package script

import (
	"fmt"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/slidecast/internal/model"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
	headSize  = 14
)

// Write renders the per-slide narration to a .docx at outputPath
func Write(title string, slides []model.SlideDetail, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addRun(doc.AddParagraph(""), title, true, titleSize)
	addRun(doc.AddParagraph(""), "Generated "+time.Now().Format("2006-01-02 15:04"), false, fontSize)

	for _, s := range slides {
		addRun(doc.AddParagraph(""), heading(s), true, headSize)

		if s.Style != "" {
			addRun(doc.AddParagraph(""), "Delivery: "+s.Style, false, fontSize)
		}
		for _, para := range paragraphs(s.Content) {
			addRun(doc.AddParagraph(""), para, false, fontSize)
		}
		if s.Degraded {
			addRun(doc.AddParagraph(""), "Placeholder audio used: "+s.Reason, true, fontSize)
		}
	}

	return doc.SaveTo(outputPath)
}

func heading(s model.SlideDetail) string {
	h := fmt.Sprintf("Slide %d", s.Index+1)
	if s.DurationMs > 0 {
		h += fmt.Sprintf(" (%.1fs)", float64(s.DurationMs)/1000)
	}
	return h
}

// paragraphs splits narration on blank lines
func paragraphs(text string) []string {
	var out []string
	for _, block := range strings.Split(text, "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			out = append(out, strings.Join(strings.Fields(block), " "))
		}
	}
	return out
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
