package scanners

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/depaudit/depaudit/internal/execshell"
	"github.com/depaudit/depaudit/internal/model"
)

const (
	pipAuditRequirementsFlagConstant   = "-r"
	pipAuditFormatFlagConstant         = "--format"
	pipAuditJSONFormatConstant         = "json"
	pipAuditSourceNameConstant         = "pip-audit"
	pipAuditParseErrorTemplateConstant = "pip-audit output is not valid JSON: %w"
)

type pipAuditDocument struct {
	Vulnerabilities []pipAuditVulnerability `json:"vulnerabilities"`
}

type pipAuditVulnerability struct {
	Name             string   `json:"name"`
	InstalledVersion string   `json:"installed_version"`
	Identifier       string   `json:"id"`
	Description      string   `json:"description"`
	FixedVersions    []string `json:"fixed_versions"`
}

// PipAuditScanner collects vulnerability findings by running pip-audit against
// a requirements file.
type PipAuditScanner struct {
	executor PipAuditExecutor
}

// NewPipAuditScanner constructs a scanner backed by the provided executor.
func NewPipAuditScanner(executor PipAuditExecutor) *PipAuditScanner {
	return &PipAuditScanner{executor: executor}
}

// Scan runs pip-audit and parses its JSON document into findings. An empty
// document yields no findings and no error.
func (scanner *PipAuditScanner) Scan(executionContext context.Context, requirementsFile string) ([]model.VulnerabilityFinding, error) {
	executionResult, executionError := scanner.executor.ExecutePipAudit(executionContext, execshell.CommandDetails{
		Arguments: []string{pipAuditRequirementsFlagConstant, requirementsFile, pipAuditFormatFlagConstant, pipAuditJSONFormatConstant},
	})

	standardOutput, outputError := recoverStandardOutput(executionResult, executionError)
	if outputError != nil {
		return nil, outputError
	}
	if !hasDocument(standardOutput) {
		return nil, nil
	}

	var document pipAuditDocument
	if unmarshalError := json.Unmarshal([]byte(standardOutput), &document); unmarshalError != nil {
		return nil, fmt.Errorf(pipAuditParseErrorTemplateConstant, unmarshalError)
	}

	findings := make([]model.VulnerabilityFinding, 0, len(document.Vulnerabilities))
	for _, vulnerability := range document.Vulnerabilities {
		findings = append(findings, model.VulnerabilityFinding{
			PackageName:        vulnerability.Name,
			InstalledVersion:   vulnerability.InstalledVersion,
			AdvisoryIdentifier: vulnerability.Identifier,
			Description:        vulnerability.Description,
			FixedVersions:      vulnerability.FixedVersions,
			Source:             pipAuditSourceNameConstant,
		})
	}

	return findings, nil
}
