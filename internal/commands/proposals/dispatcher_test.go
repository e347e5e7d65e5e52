package proposalscmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/goliatone/go-proposals/internal/commands"
	"github.com/goliatone/go-proposals/internal/domain"
	"github.com/goliatone/go-proposals/internal/exporter"
)

type flakyExporter struct {
	attempts int
	failures int
}

func (f *flakyExporter) Export(_ context.Context, req exporter.Request) (*exporter.Result, error) {
	f.attempts++
	if f.attempts <= f.failures {
		return nil, errors.New("output root busy")
	}
	return &exporter.Result{DryRun: req.DryRun}, nil
}

func TestDispatchedExportRetriesUntilSuccess(t *testing.T) {
	svc := &flakyExporter{failures: 1}
	handler := NewExportHandler(svc, domain.NewStatusSet(domain.DefaultStatuses...), nil,
		commands.WithTimeout[ExportCommand](time.Second),
	)

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), ExportCommand{DryRun: true}); err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if svc.attempts != 2 {
		t.Fatalf("expected 2 attempts (initial + retry), got %d", svc.attempts)
	}
}

func TestDispatchedExportPropagatesExhaustedRetries(t *testing.T) {
	svc := &flakyExporter{failures: 10}
	handler := NewExportHandler(svc, domain.NewStatusSet(domain.DefaultStatuses...), nil,
		commands.WithTimeout[ExportCommand](time.Second),
	)

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), ExportCommand{}); err == nil {
		t.Fatal("expected dispatcher to return error after exhausting retries")
	}
	if svc.attempts != 3 {
		t.Fatalf("expected 3 attempts (initial + 2 retries), got %d", svc.attempts)
	}
}
