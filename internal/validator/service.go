// Package validator checks the frontmatter of every proposal document
// against its class schema, reading documents concurrently and stopping at
// the first failure.
package validator

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-proposals/internal/domain"
	"github.com/goliatone/go-proposals/internal/frontmatter"
	"github.com/goliatone/go-proposals/internal/logging"
	"github.com/goliatone/go-proposals/internal/markdown"
	"github.com/goliatone/go-proposals/pkg/interfaces"
)

const (
	// DefaultWorkers bounds concurrent document reads when unset.
	DefaultWorkers = 8

	TextCodeReadFailed   = "DOCUMENT_READ_FAILED"
	TextCodeMalformed    = "FRONTMATTER_MALFORMED"
	TextCodeGlobFailed   = "DOCUMENT_GLOB_FAILED"
	TextCodeUnknownClass = "VALIDATOR_CLASS_UNKNOWN"
)

var errMarkdownRequired = errors.New("validator: markdown service is required")

// Target binds a class to the glob selecting its documents.
type Target struct {
	Class domain.DocumentClass
	Glob  string
}

// DefaultTargets returns the default glob of every class.
func DefaultTargets() []Target {
	targets := make([]Target, 0, len(domain.Classes))
	for _, class := range domain.Classes {
		targets = append(targets, Target{Class: class, Glob: class.DefaultGlob()})
	}
	return targets
}

// Config wires the validator.
type Config struct {
	Targets  []Target
	Statuses domain.StatusSet
	// Workers bounds concurrent reads; zero means DefaultWorkers.
	Workers int
}

// Request selects the classes a run checks; empty means all targets.
type Request struct {
	Classes []domain.DocumentClass
}

// ClassReport summarises one class.
type ClassReport struct {
	Class     domain.DocumentClass
	Pattern   string
	Documents int
}

// Report summarises a successful run.
type Report struct {
	Classes   []ClassReport
	Documents int
	Duration  time.Duration
}

// Service validates proposal documents.
type Service struct {
	targets  []Target
	schemas  map[domain.DocumentClass]*frontmatter.Schema
	workers  int
	markdown interfaces.MarkdownService
	logger   interfaces.Logger
	now      func() time.Time
}

// NewService builds a schema per target class.
func NewService(cfg Config, md interfaces.MarkdownService, logger interfaces.Logger) (*Service, error) {
	if md == nil {
		return nil, errMarkdownRequired
	}
	targets := cfg.Targets
	if len(targets) == 0 {
		targets = DefaultTargets()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = logging.NoOp()
	}

	schemas := make(map[domain.DocumentClass]*frontmatter.Schema, len(targets))
	for _, target := range targets {
		schema, err := frontmatter.NewSchema(target.Class, cfg.Statuses)
		if err != nil {
			return nil, err
		}
		schemas[target.Class] = schema
	}

	return &Service{
		targets:  append([]Target(nil), targets...),
		schemas:  schemas,
		workers:  workers,
		markdown: md,
		logger:   logger,
		now:      time.Now,
	}, nil
}

type job struct {
	class domain.DocumentClass
	path  string
}

// Run validates every document of the selected classes. The first failure
// cancels outstanding reads and is returned; no partial report is produced.
func (s *Service) Run(ctx context.Context, req Request) (*Report, error) {
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
	report := &Report{Classes: make([]ClassReport, 0, len(targets))}
	jobs := make([]job, 0)
	for _, target := range targets {
		paths, err := s.markdown.Glob(ctx, target.Glob)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryOperation, fmt.Sprintf("resolve %s documents", target.Class)).
				WithTextCode(TextCodeGlobFailed).
				WithMetadata(map[string]any{"pattern": target.Glob})
		}
		report.Classes = append(report.Classes, ClassReport{
			Class:     target.Class,
			Pattern:   target.Glob,
			Documents: len(paths),
		})
		for _, path := range paths {
			jobs = append(jobs, job{class: target.Class, path: path})
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)

	for _, j := range jobs {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			return s.validateDocument(groupCtx, j)
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Documents = len(jobs)
	report.Duration = s.now().Sub(start)
	s.logger.Info("validator.run.completed", "documents", report.Documents, "classes", len(report.Classes))
	return report, nil
}

func (s *Service) validateDocument(ctx context.Context, j job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := logging.WithDocumentContext(s.logger, j.path, string(j.class), "")

	doc, err := s.markdown.Load(ctx, j.path, interfaces.LoadOptions{})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		textCode := TextCodeReadFailed
		category := goerrors.CategoryOperation
		if errors.Is(err, markdown.ErrFrontMatterMalformed) {
			textCode = TextCodeMalformed
			category = goerrors.CategoryValidation
		}
		logger.Error("validator.document.read_failed", "error", err)
		return goerrors.Wrap(err, category, fmt.Sprintf("read %s", j.path)).
			WithTextCode(textCode).
			WithMetadata(map[string]any{"file": j.path})
	}

	record := make(map[string]any, len(doc.Frontmatter)+1)
	maps.Copy(record, doc.Frontmatter)
	record[frontmatter.FileField] = doc.FilePath

	if _, err := s.schemas[j.class].CastAndValidate(record); err != nil {
		logger.Error("validator.document.invalid", "error", err)
		return err
	}
	logger.Debug("validator.document.valid")
	return nil
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
			return nil, goerrors.New(fmt.Sprintf("no validation target for class %q", strings.TrimSpace(string(class))), goerrors.CategoryBadInput).
				WithTextCode(TextCodeUnknownClass)
		}
	}
	return selected, nil
}
