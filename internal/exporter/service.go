// Package exporter writes per-status JSON snapshots of proposal documents
// for the front-end build.
package exporter

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-proposals/internal/domain"
	"github.com/goliatone/go-proposals/internal/index"
	"github.com/goliatone/go-proposals/internal/logging"
	"github.com/goliatone/go-proposals/pkg/interfaces"
)

const (
	// TextCodeWriteFailed tags failures to create or write an output file.
	TextCodeWriteFailed = "EXPORT_WRITE_FAILED"
	// TextCodeQueryFailed tags failures to read the document index.
	TextCodeQueryFailed = "EXPORT_QUERY_FAILED"

	contentTypeJSON = "application/json"
	emptyArray      = "[]"
)

var (
	errGrouperRequired = errors.New("exporter: document index is required")
	errWriterRequired  = errors.New("exporter: artifact writer is required")
)

// Grouper returns the documents of a class grouped by status.
type Grouper interface {
	Groups(ctx context.Context, class domain.DocumentClass) ([]index.Group, error)
}

// Target binds a class to its output directory relative to the writer root.
type Target struct {
	Class     domain.DocumentClass
	OutputDir string
}

// DefaultTargets returns the output directory of every class.
func DefaultTargets() []Target {
	targets := make([]Target, 0, len(domain.Classes))
	for _, class := range domain.Classes {
		targets = append(targets, Target{Class: class, OutputDir: class.DefaultOutputDir()})
	}
	return targets
}

// Request selects what an export run produces.
type Request struct {
	Statuses domain.StatusSet
	// Classes restricts the run; empty means every configured target.
	Classes []domain.DocumentClass
	// DryRun renders every file without touching the writer.
	DryRun bool
}

// File describes one written snapshot.
type File struct {
	Path      string
	Status    string
	Documents int
	Size      int
	Checksum  string
}

// ClassResult reports the files written for one class.
type ClassResult struct {
	Class     domain.DocumentClass
	OutputDir string
	Files     []File
}

// Result summarises an export run.
type Result struct {
	Classes  []ClassResult
	DryRun   bool
	Duration time.Duration
	// Artifacts holds the rendered content of every file during a dry run.
	Artifacts map[string][]byte
}

// Service writes status snapshots for each configured class.
type Service struct {
	targets []Target
	groups  Grouper
	writer  interfaces.ArtifactWriter
	logger  interfaces.Logger
	now     func() time.Time
}

// NewService wires an exporter. When targets is empty DefaultTargets is used.
func NewService(targets []Target, groups Grouper, writer interfaces.ArtifactWriter, logger interfaces.Logger) (*Service, error) {
	if groups == nil {
		return nil, errGrouperRequired
	}
	if writer == nil {
		return nil, errWriterRequired
	}
	if len(targets) == 0 {
		targets = DefaultTargets()
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		targets: append([]Target(nil), targets...),
		groups:  groups,
		writer:  writer,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Export writes, for each selected class in turn, an empty array for every
// known status and then one array per status group found in the index.
// Group files overwrite the empty placeholders.
func (s *Service) Export(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	targets, err := s.selectTargets(req.Classes)
	if err != nil {
		return nil, err
	}

	start := s.now()
	writer := s.writer
	var recorder *recordingWriter
	if req.DryRun {
		recorder = newRecordingWriter()
		writer = recorder
	}

	result := &Result{DryRun: req.DryRun}
	for _, target := range targets {
		classResult, err := s.exportClass(ctx, writer, target, req.Statuses)
		if err != nil {
			return nil, err
		}
		result.Classes = append(result.Classes, classResult)
	}

	if recorder != nil {
		result.Artifacts = recorder.files
	}
	result.Duration = s.now().Sub(start)
	return result, nil
}

func (s *Service) exportClass(ctx context.Context, writer interfaces.ArtifactWriter, target Target, statuses domain.StatusSet) (ClassResult, error) {
	logger := logging.WithFields(s.logger, map[string]any{
		"document_class": string(target.Class),
		"output_dir":     target.OutputDir,
	})
	result := ClassResult{Class: target.Class, OutputDir: target.OutputDir}

	if err := writer.EnsureDir(ctx, target.OutputDir); err != nil {
		return result, writeError(err, target.OutputDir)
	}

	written := make(map[string]int)
	record := func(file File) {
		if pos, ok := written[file.Path]; ok {
			result.Files[pos] = file
			return
		}
		written[file.Path] = len(result.Files)
		result.Files = append(result.Files, file)
	}

	for _, slug := range statuses.Slugs() {
		file, err := s.write(ctx, writer, target.OutputDir, slug, []byte(emptyArray))
		if err != nil {
			return result, err
		}
		record(file)
	}

	groups, err := s.groups.Groups(ctx, target.Class)
	if err != nil {
		return result, goerrors.Wrap(err, goerrors.CategoryOperation, fmt.Sprintf("query %s documents", target.Class)).
			WithTextCode(TextCodeQueryFailed)
	}

	for _, group := range groups {
		slug := domain.Slugify(group.FieldValue)
		if slug == "" {
			logger.Warn("exporter.group.skipped", "status", group.FieldValue, "reason", "empty slug")
			continue
		}
		if !statuses.Contains(group.FieldValue) {
			logger.Warn("exporter.group.unknown_status", "status", group.FieldValue)
		}

		records := make([]Record, 0, len(group.Documents))
		for _, doc := range group.Documents {
			records = append(records, NewRecord(doc))
		}
		payload, err := encodeRecords(records)
		if err != nil {
			return result, goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("encode %s group %q", target.Class, group.FieldValue))
		}

		file, err := s.write(ctx, writer, target.OutputDir, slug, payload)
		if err != nil {
			return result, err
		}
		file.Status = group.FieldValue
		file.Documents = len(records)
		record(file)
	}

	logger.Info("exporter.class.completed", "files", len(result.Files), "groups", len(groups))
	return result, nil
}

func (s *Service) write(ctx context.Context, writer interfaces.ArtifactWriter, dir, slug string, payload []byte) (File, error) {
	target := path.Join(dir, slug+".json")
	sum := sha256.Sum256(payload)
	checksum := hex.EncodeToString(sum[:])
	err := writer.WriteFile(ctx, interfaces.WriteFileRequest{
		Path:        target,
		Content:     bytes.NewReader(payload),
		Size:        int64(len(payload)),
		ContentType: contentTypeJSON,
		Checksum:    checksum,
		Metadata:    map[string]string{"slug": slug},
	})
	if err != nil {
		return File{}, writeError(err, target)
	}
	return File{Path: target, Size: len(payload), Checksum: checksum}, nil
}

func (s *Service) selectTargets(classes []domain.DocumentClass) ([]Target, error) {
	if len(classes) == 0 {
		return s.targets, nil
	}
	selected := make([]Target, 0, len(classes))
	for _, class := range classes {
		found := false
		for _, target := range s.targets {
			if target.Class == class {
				selected = append(selected, target)
				found = true
				break
			}
		}
		if !found {
			return nil, goerrors.New(fmt.Sprintf("no export target for class %q", class), goerrors.CategoryBadInput).
				WithTextCode("EXPORT_CLASS_UNKNOWN")
		}
	}
	return selected, nil
}

func writeError(err error, target string) error {
	if strings.TrimSpace(target) == "" {
		target = "."
	}
	return goerrors.Wrap(err, goerrors.CategoryOperation, fmt.Sprintf("write %s", target)).
		WithTextCode(TextCodeWriteFailed).
		WithMetadata(map[string]any{"path": target})
}
