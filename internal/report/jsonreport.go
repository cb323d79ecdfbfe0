package report

import (
	"encoding/json"
	"fmt"

	"github.com/depaudit/depaudit/internal/model"
)

const (
	reportGeneratorNameConstant      = "depaudit"
	reportFormatVersionConstant      = "1.0"
	statusPassConstant               = "PASS"
	statusWarningConstant            = "WARNING"
	jsonIndentConstant               = "  "
	jsonRenderErrorTemplateConstant  = "failed to serialize JSON report: %w"
	jsonTrailingNewlineConstant      = "\n"
)

// Metadata describes the provenance of a JSON report.
type Metadata struct {
	Timestamp string `json:"timestamp"`
	Generator string `json:"generator"`
	Version   string `json:"version"`
}

// Summary carries the headline counts of a JSON report.
type Summary struct {
	TotalDependencies    int    `json:"total_dependencies"`
	TotalVulnerabilities int    `json:"total_vulnerabilities"`
	Status               string `json:"status"`
}

// Document is the serializable form of the JSON report artifact.
type Document struct {
	Metadata        Metadata                     `json:"metadata"`
	Summary         Summary                      `json:"summary"`
	Vulnerabilities []model.VulnerabilityFinding `json:"vulnerabilities"`
	Dependencies    []model.DependencyRecord     `json:"dependencies"`
	Outdated        []model.OutdatedRecord       `json:"outdated"`
	Compliance      model.ComplianceStatus       `json:"compliance"`
}

// BuildDocument assembles the serializable JSON report from a dataset. The
// summary counts are derived from the same slices that are serialized, so the
// reported totals always match the listed records.
func BuildDocument(dataset model.AuditDataset) Document {
	return Document{
		Metadata: Metadata{
			Timestamp: formatTimestamp(dataset.GeneratedAt),
			Generator: reportGeneratorNameConstant,
			Version:   reportFormatVersionConstant,
		},
		Summary: Summary{
			TotalDependencies:    dataset.DependencyCount(),
			TotalVulnerabilities: dataset.VulnerabilityCount(),
			Status:               deriveStatus(dataset.VulnerabilityCount()),
		},
		Vulnerabilities: emptyWhenNil(dataset.Findings),
		Dependencies:    emptyWhenNil(dataset.Dependencies),
		Outdated:        emptyWhenNil(dataset.Outdated),
		Compliance:      dataset.Compliance(),
	}
}

// RenderJSON produces the indented JSON report artifact for a dataset.
func RenderJSON(dataset model.AuditDataset) (string, error) {
	serialized, marshalError := json.MarshalIndent(BuildDocument(dataset), "", jsonIndentConstant)
	if marshalError != nil {
		return "", fmt.Errorf(jsonRenderErrorTemplateConstant, marshalError)
	}
	return string(serialized) + jsonTrailingNewlineConstant, nil
}

func deriveStatus(vulnerabilityCount int) string {
	if vulnerabilityCount == 0 {
		return statusPassConstant
	}
	return statusWarningConstant
}

// emptyWhenNil keeps absent collections serializing as [] instead of null.
func emptyWhenNil[RecordType any](records []RecordType) []RecordType {
	if records == nil {
		return []RecordType{}
	}
	return records
}
