package exporter

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-proposals/pkg/interfaces"
)

// FileWriter writes artifacts below a root directory on the local disk.
type FileWriter struct {
	root string
}

var _ interfaces.ArtifactWriter = (*FileWriter)(nil)

// NewFileWriter returns a writer rooted at root.
func NewFileWriter(root string) *FileWriter {
	return &FileWriter{root: root}
}

func (w *FileWriter) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.MkdirAll(w.resolve(path), 0o755)
}

func (w *FileWriter) WriteFile(ctx context.Context, req interfaces.WriteFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Content == nil {
		return errors.New("exporter: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("exporter: write requires path")
	}
	data, err := io.ReadAll(req.Content)
	if err != nil {
		return err
	}
	return os.WriteFile(w.resolve(req.Path), data, 0o644)
}

func (w *FileWriter) resolve(path string) string {
	return filepath.Join(w.root, filepath.FromSlash(path))
}

// recordingWriter keeps writes in memory; it backs dry runs.
type recordingWriter struct {
	files map[string][]byte
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{files: map[string][]byte{}}
}

func (w *recordingWriter) EnsureDir(context.Context, string) error { return nil }

func (w *recordingWriter) WriteFile(_ context.Context, req interfaces.WriteFileRequest) error {
	if req.Content == nil {
		return errors.New("exporter: write requires content reader")
	}
	data, err := io.ReadAll(req.Content)
	if err != nil {
		return err
	}
	w.files[req.Path] = data
	return nil
}
