package scanners

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/depaudit/depaudit/internal/execshell"
	"github.com/depaudit/depaudit/internal/model"
)

const (
	pipListArgumentConstant               = "list"
	pipOutdatedFlagConstant               = "--outdated"
	pipFormatFlagConstant                 = "--format"
	pipJSONFormatConstant                 = "json"
	pipOutdatedParseErrorTemplateConstant = "pip list output is not valid JSON: %w"
)

type pipOutdatedEntry struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	LatestVersion string `json:"latest_version"`
}

// PipOutdatedScanner lists installed packages whose latest release is newer
// than the installed version.
type PipOutdatedScanner struct {
	executor PipExecutor
}

// NewPipOutdatedScanner constructs a scanner backed by the provided executor.
func NewPipOutdatedScanner(executor PipExecutor) *PipOutdatedScanner {
	return &PipOutdatedScanner{executor: executor}
}

// List runs pip list --outdated and parses its JSON list into outdated records.
func (scanner *PipOutdatedScanner) List(executionContext context.Context) ([]model.OutdatedRecord, error) {
	executionResult, executionError := scanner.executor.ExecutePip(executionContext, execshell.CommandDetails{
		Arguments: []string{pipListArgumentConstant, pipOutdatedFlagConstant, pipFormatFlagConstant, pipJSONFormatConstant},
	})

	standardOutput, outputError := recoverStandardOutput(executionResult, executionError)
	if outputError != nil {
		return nil, outputError
	}
	if !hasDocument(standardOutput) {
		return nil, nil
	}

	var reportedEntries []pipOutdatedEntry
	if unmarshalError := json.Unmarshal([]byte(standardOutput), &reportedEntries); unmarshalError != nil {
		return nil, fmt.Errorf(pipOutdatedParseErrorTemplateConstant, unmarshalError)
	}

	outdatedRecords := make([]model.OutdatedRecord, 0, len(reportedEntries))
	for _, reportedEntry := range reportedEntries {
		outdatedRecords = append(outdatedRecords, model.OutdatedRecord{
			Name:             reportedEntry.Name,
			InstalledVersion: reportedEntry.Version,
			LatestVersion:    reportedEntry.LatestVersion,
		})
	}

	return outdatedRecords, nil
}
