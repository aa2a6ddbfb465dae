package converter

import (
	"fmt"
	"io"
	"os"

	"github.com/nguyentantai21042004/slidecast/internal/model"
	"github.com/nguyentantai21042004/slidecast/internal/script"
)

// placeSource moves (or copies, when keep is set) the deck into the job root.
// Rename fails across filesystems, so a move falls back to copy and remove.
func placeSource(src, dst string, keep bool) error {
	if !keep {
		if err := os.Rename(src, dst); err == nil {
			return nil
		}
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	if !keep {
		return os.Remove(src)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

func writeScript(job *model.Job, result *model.Result) error {
	title := fmt.Sprintf("Narration script (job %s)", job.ID)
	if err := script.Write(title, result.Slides, job.ScriptPath()); err != nil {
		return fmt.Errorf("write %s: %w", job.ScriptPath(), err)
	}
	return nil
}
