package scanners

import (
	"context"
	"errors"
	"strings"

	"github.com/depaudit/depaudit/internal/execshell"
)

// PipAuditExecutor runs the pip-audit executable.
type PipAuditExecutor interface {
	ExecutePipAudit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// SafetyExecutor runs the safety executable.
type SafetyExecutor interface {
	ExecuteSafety(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// PipLicensesExecutor runs the pip-licenses executable.
type PipLicensesExecutor interface {
	ExecutePipLicenses(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// PipExecutor runs the pip executable.
type PipExecutor interface {
	ExecutePip(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// recoverStandardOutput extracts parseable stdout from an execution outcome.
// Several scanners exit non-zero when findings exist while still writing a
// complete JSON document, so a CommandFailedError is treated as output rather
// than failure. Errors raised before the tool produced a result propagate.
func recoverStandardOutput(executionResult execshell.ExecutionResult, executionError error) (string, error) {
	if executionError == nil {
		return executionResult.StandardOutput, nil
	}

	commandFailure := execshell.CommandFailedError{}
	if errors.As(executionError, &commandFailure) {
		return commandFailure.Result.StandardOutput, nil
	}

	return "", executionError
}

// hasDocument reports whether the scanner emitted anything beyond whitespace.
func hasDocument(standardOutput string) bool {
	return len(strings.TrimSpace(standardOutput)) > 0
}
