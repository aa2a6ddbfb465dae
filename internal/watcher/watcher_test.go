package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/converter"
	"github.com/nguyentantai21042004/slidecast/internal/jobstore"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/internal/model"
)

func TestIsDeckFile(t *testing.T) {
	w := &implWatcher{}
	tests := []struct {
		path string
		want bool
	}{
		{"/inbox/lecture.pptx", true},
		{"/inbox/Lecture.PDF", true},
		{"/inbox/clip.mp4", false},
		{"/inbox/.lecture.pptx.part", false},
		{"/inbox/~$lecture.pptx", false},
		{"/inbox/notes.docx", false},
	}
	for _, tt := range tests {
		if got := w.isDeckFile(tt.path); got != tt.want {
			t.Errorf("isDeckFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestStartDispatchesNewDecks(t *testing.T) {
	dir := t.TempDir()

	seen := make(chan string, 4)
	handler := func(ctx context.Context, path string) error {
		seen <- filepath.Base(path)
		return nil
	}

	w, err := New(Options{Dir: dir, MaxConcurrent: 1, Settle: 10 * time.Millisecond}, handler, logger.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// give the watch loop a moment to start selecting
	time.Sleep(50 * time.Millisecond)
	for _, name := range []string{"notes.txt", "deck.pptx"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case got := <-seen:
		if got != "deck.pptx" {
			t.Errorf("handled %q, want deck.pptx", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("deck was never handled")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() = %v, want context.Canceled", err)
	}
	if len(seen) != 0 {
		t.Errorf("unexpected extra events: %d", len(seen))
	}
}

type fakeConverter struct {
	converter.Service
	inputs []converter.Input
	err    error
}

func (f *fakeConverter) Convert(ctx context.Context, in converter.Input) (*jobstore.Record, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return &jobstore.Record{ID: "job-1", Status: model.StatusFailed}, f.err
	}
	return &jobstore.Record{
		ID:     "job-1",
		Status: model.StatusDone,
		Result: &model.Result{VideoPath: "/work/job-1_processed/final_video.mp4"},
	}, nil
}

func TestConvertAndArchive(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantArchive bool
	}{
		{"success archives the deck", nil, true},
		{"failure leaves the deck in the inbox", model.NewError(model.KindPlanning, model.StatusPlanning, errors.New("quota")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inbox := t.TempDir()
			archived := filepath.Join(t.TempDir(), "archived")
			src := filepath.Join(inbox, "deck.pdf")
			if err := os.WriteFile(src, []byte("%PDF"), 0644); err != nil {
				t.Fatal(err)
			}

			svc := &fakeConverter{err: tt.err}
			err := ConvertAndArchive(svc, archived, "Kore", logger.Nop())(context.Background(), src)
			if (err != nil) == tt.wantArchive {
				t.Errorf("err = %v", err)
			}

			in := svc.inputs[0]
			if !in.Keep || in.Voice != "Kore" || in.Source != src {
				t.Errorf("input = %+v", in)
			}

			_, archErr := os.Stat(filepath.Join(archived, "deck.pdf"))
			_, inboxErr := os.Stat(src)
			if tt.wantArchive && (archErr != nil || inboxErr == nil) {
				t.Errorf("deck should be moved to the archive (archive err %v, inbox err %v)", archErr, inboxErr)
			}
			if !tt.wantArchive && inboxErr != nil {
				t.Errorf("deck should stay in the inbox: %v", inboxErr)
			}
		})
	}
}

func TestArchiveNameCollision(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "deck.pptx"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(t.TempDir(), "deck.pptx")
	if err := os.WriteFile(src, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := archive(src, dir); err != nil {
		t.Fatalf("archive() error = %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("archive has %d entries, want 2", len(entries))
	}
}
