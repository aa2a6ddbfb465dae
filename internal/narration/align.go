package narration

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/slidecast/internal/model"
)

type rawEntry struct {
	Content string `json:"content"`
	Style   string `json:"tts_prompt"`
}

func (p *planner) placeholder(index int) model.NarrationEntry {
	return model.NarrationEntry{
		Index:       index,
		Content:     p.opts.PlaceholderText,
		Style:       p.opts.PlaceholderStyle,
		Placeholder: true,
	}
}

func (p *planner) entry(index int, raw rawEntry) model.NarrationEntry {
	content := strings.TrimSpace(raw.Content)
	if content == "" {
		return p.placeholder(index)
	}
	style := strings.TrimSpace(raw.Style)
	if style == "" {
		style = p.opts.DefaultStyle
	}
	return model.NarrationEntry{Index: index, Content: content, Style: style}
}

// align maps the service's entries onto slide positions. Missing or empty
// entries become placeholders and surplus entries are dropped.
func (p *planner) align(ctx context.Context, raw []rawEntry, slides []model.Slide) []model.NarrationEntry {
	if len(raw) != len(slides) {
		p.logger.Warn(ctx, "Analysis returned %d entries for %d slides", len(raw), len(slides))
	}

	out := make([]model.NarrationEntry, len(slides))
	for i, s := range slides {
		if i < len(raw) {
			out[i] = p.entry(s.Index, raw[i])
		} else {
			out[i] = p.placeholder(s.Index)
		}
		if out[i].Placeholder {
			p.logger.Warn(ctx, "Slide %d narrated with placeholder", s.Index)
		}
	}
	return out
}
