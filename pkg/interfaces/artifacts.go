package interfaces

import (
	"context"
	"io"
)

// ArtifactWriter persists exporter output. Paths are slash separated and
// relative to the writer's root.
type ArtifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req WriteFileRequest) error
}

// WriteFileRequest describes a single artifact write.
type WriteFileRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	ContentType string
	Checksum    string
	Metadata    map[string]string
}
