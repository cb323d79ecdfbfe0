package scanners

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/depaudit/depaudit/internal/execshell"
	"github.com/depaudit/depaudit/internal/model"
)

const (
	safetyCheckArgumentConstant      = "check"
	safetyJSONFlagConstant           = "--json"
	safetySourceNameConstant         = "safety"
	safetyParseErrorTemplateConstant = "safety output is not valid JSON: %w"
)

type safetyFinding struct {
	Package          string `json:"package"`
	InstalledVersion string `json:"installed_version"`
	Advisory         string `json:"advisory"`
	CVE              string `json:"cve"`
	Identifier       string `json:"id"`
}

// SafetyScanner collects supplemental vulnerability findings by running the
// safety check against the active environment.
type SafetyScanner struct {
	executor SafetyExecutor
}

// NewSafetyScanner constructs a scanner backed by the provided executor.
func NewSafetyScanner(executor SafetyExecutor) *SafetyScanner {
	return &SafetyScanner{executor: executor}
}

// Scan runs safety check and parses its JSON list into findings. The advisory
// identifier prefers the CVE and falls back to the safety-internal id.
func (scanner *SafetyScanner) Scan(executionContext context.Context) ([]model.VulnerabilityFinding, error) {
	executionResult, executionError := scanner.executor.ExecuteSafety(executionContext, execshell.CommandDetails{
		Arguments: []string{safetyCheckArgumentConstant, safetyJSONFlagConstant},
	})

	standardOutput, outputError := recoverStandardOutput(executionResult, executionError)
	if outputError != nil {
		return nil, outputError
	}
	if !hasDocument(standardOutput) {
		return nil, nil
	}

	var reportedFindings []safetyFinding
	if unmarshalError := json.Unmarshal([]byte(standardOutput), &reportedFindings); unmarshalError != nil {
		return nil, fmt.Errorf(safetyParseErrorTemplateConstant, unmarshalError)
	}

	findings := make([]model.VulnerabilityFinding, 0, len(reportedFindings))
	for _, reportedFinding := range reportedFindings {
		advisoryIdentifier := reportedFinding.CVE
		if len(advisoryIdentifier) == 0 {
			advisoryIdentifier = reportedFinding.Identifier
		}

		findings = append(findings, model.VulnerabilityFinding{
			PackageName:        reportedFinding.Package,
			InstalledVersion:   reportedFinding.InstalledVersion,
			AdvisoryIdentifier: advisoryIdentifier,
			Description:        reportedFinding.Advisory,
			Source:             safetySourceNameConstant,
		})
	}

	return findings, nil
}
