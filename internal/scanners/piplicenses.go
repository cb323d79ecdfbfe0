package scanners

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/depaudit/depaudit/internal/execshell"
	"github.com/depaudit/depaudit/internal/model"
)

const (
	pipLicensesFormatFlagConstant         = "--format=json"
	unknownLicenseValueConstant           = "Unknown"
	pipLicensesParseErrorTemplateConstant = "pip-licenses output is not valid JSON: %w"
)

type pipLicensesEntry struct {
	Name    string `json:"Name"`
	Version string `json:"Version"`
	License string `json:"License"`
}

// PipLicensesScanner enumerates installed dependencies with their license
// identifiers by running pip-licenses.
type PipLicensesScanner struct {
	executor PipLicensesExecutor
}

// NewPipLicensesScanner constructs a scanner backed by the provided executor.
func NewPipLicensesScanner(executor PipLicensesExecutor) *PipLicensesScanner {
	return &PipLicensesScanner{executor: executor}
}

// Enumerate runs pip-licenses and parses its JSON list into dependency
// records. Missing fields become "Unknown" so reports never render blank cells.
func (scanner *PipLicensesScanner) Enumerate(executionContext context.Context) ([]model.DependencyRecord, error) {
	executionResult, executionError := scanner.executor.ExecutePipLicenses(executionContext, execshell.CommandDetails{
		Arguments: []string{pipLicensesFormatFlagConstant},
	})

	standardOutput, outputError := recoverStandardOutput(executionResult, executionError)
	if outputError != nil {
		return nil, outputError
	}
	if !hasDocument(standardOutput) {
		return nil, nil
	}

	var reportedEntries []pipLicensesEntry
	if unmarshalError := json.Unmarshal([]byte(standardOutput), &reportedEntries); unmarshalError != nil {
		return nil, fmt.Errorf(pipLicensesParseErrorTemplateConstant, unmarshalError)
	}

	dependencyRecords := make([]model.DependencyRecord, 0, len(reportedEntries))
	for _, reportedEntry := range reportedEntries {
		dependencyRecords = append(dependencyRecords, model.DependencyRecord{
			Name:    valueOrUnknown(reportedEntry.Name),
			Version: valueOrUnknown(reportedEntry.Version),
			License: valueOrUnknown(reportedEntry.License),
		})
	}

	return dependencyRecords, nil
}

func valueOrUnknown(value string) string {
	if len(value) == 0 {
		return unknownLicenseValueConstant
	}
	return value
}
