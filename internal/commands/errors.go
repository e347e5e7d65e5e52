package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors the handler categorises itself. Errors that
// already carry a go-errors category pass through untouched.
const (
	TextCodeInvalidMessage = "PROPOSALS_COMMAND_INVALID"
	TextCodeCanceled       = "PROPOSALS_COMMAND_CANCELED"
	TextCodeTimeout        = "PROPOSALS_COMMAND_TIMEOUT"
	TextCodeContext        = "PROPOSALS_COMMAND_CONTEXT"
	TextCodeFailed         = "PROPOSALS_COMMAND_FAILED"
)

func wrapValidationError(err error) error {
	return categorise(err, goerrors.CategoryValidation, "proposals command message is invalid", TextCodeInvalidMessage)
}

func wrapContextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return categorise(err, goerrors.CategoryCommand, "proposals command cancelled", TextCodeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return categorise(err, goerrors.CategoryCommand, "proposals command deadline exceeded", TextCodeTimeout)
	default:
		return categorise(err, goerrors.CategoryCommand, "proposals command context error", TextCodeContext)
	}
}

func wrapExecuteError(err error) error {
	return categorise(err, goerrors.CategoryCommand, "proposals command failed", TextCodeFailed)
}

func categorise(err error, category goerrors.Category, message, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}
