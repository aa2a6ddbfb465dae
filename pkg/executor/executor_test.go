package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExecute(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantOut    string
		wantErr    bool
		wantStderr string
	}{
		{"stdout captured", []string{"-c", "printf hello"}, "hello", false, ""},
		{"stderr folded into error", []string{"-c", "echo boom >&2; exit 3"}, "", true, "stderr: boom"},
		{"failure without stderr", []string{"-c", "exit 1"}, "", true, ""},
	}

	exec := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := exec.Execute(context.Background(), "sh", tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if out != tt.wantOut {
				t.Errorf("Execute() out = %q, want %q", out, tt.wantOut)
			}
			if tt.wantStderr != "" && !strings.Contains(err.Error(), tt.wantStderr) {
				t.Errorf("error %q does not contain %q", err, tt.wantStderr)
			}
		})
	}
}

func TestExecuteInDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := New().ExecuteInDir(context.Background(), dir, "sh", "-c", "ls")
	if err != nil {
		t.Fatalf("ExecuteInDir() error = %v", err)
	}
	if !strings.Contains(out, "marker.txt") {
		t.Errorf("ExecuteInDir() out = %q, want it to list marker.txt", out)
	}
}

func TestExecuteTimeout(t *testing.T) {
	tests := []struct {
		name        string
		script      string
		wantTimeout bool
	}{
		{name: "direct child", script: "sleep 5", wantTimeout: true},
		{name: "backgrounded grandchild", script: "sleep 5 & wait", wantTimeout: true},
		// sh exits at once but the orphan keeps stdout open
		{name: "grandchild holding stdout", script: "(sleep 5; echo late) & echo early"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			start := time.Now()
			_, err := New().Execute(ctx, "sh", "-c", tt.script)
			elapsed := time.Since(start)

			if elapsed > time.Second {
				t.Errorf("Execute() returned after %v, want under 1s", elapsed)
			}
			if !tt.wantTimeout {
				return
			}
			if err == nil {
				t.Fatal("Execute() should fail when the context expires")
			}
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("error %v should wrap context.DeadlineExceeded", err)
			}
		})
	}
}
