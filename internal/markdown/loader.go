package markdown

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/goliatone/go-proposals/pkg/interfaces"
)

// Loader resolves glob patterns and reads documents from a filesystem.
type Loader struct {
	fs       fs.FS
	basePath string
}

// NewLoader constructs a Loader over filesystem. basePath is used to turn
// absolute paths into filesystem-relative ones.
func NewLoader(filesystem fs.FS, basePath string) *Loader {
	return &Loader{
		fs:       filesystem,
		basePath: filepath.Clean(basePath),
	}
}

// Glob returns the slash separated paths matching pattern, sorted. "*"
// matches within a path segment and "**" spans directories. A pattern whose
// static prefix does not exist matches nothing.
func (l *Loader) Glob(ctx context.Context, pattern string) ([]string, error) {
	pattern = cleanPattern(pattern)
	if pattern == "" {
		return nil, errors.New("markdown loader: empty glob pattern")
	}

	matcher, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("markdown loader: compile glob %q: %w", pattern, err)
	}

	root := staticPrefix(pattern)
	if _, err := fs.Stat(l.fs, root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("markdown loader: stat %s: %w", root, err)
	}

	var matches []string
	walkErr := fs.WalkDir(l.fs, root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if matcher.Match(current) {
			matches = append(matches, current)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(matches)
	return matches, nil
}

// LoadFile reads and parses a single document.
func (l *Loader) LoadFile(ctx context.Context, filePath string) (*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := l.makeRelative(filePath)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	doc, err := BuildDocument(rel, data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]
	return doc, nil
}

func (l *Loader) makeRelative(filePath string) (string, error) {
	clean := filepath.Clean(filePath)
	if !filepath.IsAbs(clean) {
		return filepath.ToSlash(clean), nil
	}
	if l.basePath == "" || l.basePath == "." {
		return "", fmt.Errorf("markdown loader: absolute path %s provided without base path", filePath)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("markdown loader: make relative %s: %w", filePath, err)
	}
	return filepath.ToSlash(rel), nil
}

func cleanPattern(pattern string) string {
	pattern = filepath.ToSlash(strings.TrimSpace(pattern))
	for strings.HasPrefix(pattern, "./") {
		pattern = strings.TrimPrefix(pattern, "./")
	}
	return strings.TrimPrefix(pattern, "/")
}

// staticPrefix returns the directory portion of pattern that precedes the
// first segment containing glob syntax.
func staticPrefix(pattern string) string {
	segments := strings.Split(pattern, "/")
	static := make([]string, 0, len(segments))
	for _, segment := range segments[:len(segments)-1] {
		if strings.ContainsAny(segment, "*?[{\\") {
			break
		}
		static = append(static, segment)
	}
	if len(static) == 0 {
		return "."
	}
	return path.Join(static...)
}
