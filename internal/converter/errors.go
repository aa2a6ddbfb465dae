package converter

import (
	"errors"

	"github.com/nguyentantai21042004/slidecast/internal/jobstore"
	"github.com/nguyentantai21042004/slidecast/internal/model"
)

// Describe turns a job error into what clients see. The full chain is only
// exposed outside production.
func Describe(err error, production bool) *jobstore.ErrorInfo {
	info := &jobstore.ErrorInfo{Message: "Conversion failed"}

	var pe *model.PipelineError
	if errors.As(err, &pe) {
		info.Kind = string(pe.Kind)
		info.Stage = string(pe.Stage)
		info.Message = kindMessages[pe.Kind]
		if pe.SlideIndex >= 0 {
			idx := pe.SlideIndex
			info.SlideIndex = &idx
		}
	}
	if !production {
		info.Cause = err.Error()
	}
	return info
}

var kindMessages = map[model.ErrorKind]string{
	model.KindInput:     "The deck could not be read",
	model.KindPlanning:  "Narration could not be planned",
	model.KindSynthesis: "Speech synthesis failed",
	model.KindRender:    "A slide clip could not be rendered",
	model.KindAssembly:  "The final video could not be assembled",
}
