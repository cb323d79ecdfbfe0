package model

import "time"

// VulnerabilityFinding associates a package and installed version with a known advisory.
type VulnerabilityFinding struct {
	PackageName        string   `json:"package"`
	InstalledVersion   string   `json:"version"`
	AdvisoryIdentifier string   `json:"advisory"`
	Description        string   `json:"description"`
	FixedVersions      []string `json:"fixed_versions,omitempty"`
	Source             string   `json:"source,omitempty"`
}

// DependencyRecord captures a package name, version, and license identifier
// reported by the license tool. The license text is free-form and may name
// several licenses at once.
type DependencyRecord struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	License string `json:"license"`
}

// OutdatedRecord describes a package whose installed version lags the latest release.
type OutdatedRecord struct {
	Name             string `json:"name"`
	InstalledVersion string `json:"installed_version"`
	LatestVersion    string `json:"latest_version"`
}

// CollectionStep identifies one collector stage of the audit pipeline.
type CollectionStep string

// Collector stages recorded in every dataset.
const (
	CollectionStepVulnerabilityScan   CollectionStep = "vulnerability_scan"
	CollectionStepSupplementalScan    CollectionStep = "supplemental_vulnerability_scan"
	CollectionStepLicenseEnumeration  CollectionStep = "license_enumeration"
	CollectionStepDependencyInventory CollectionStep = "dependency_inventory"
)

// CollectionStepStatus records whether a collector stage completed cleanly.
type CollectionStepStatus struct {
	Step      CollectionStep `json:"step"`
	Completed bool           `json:"completed"`
	Detail    string         `json:"detail,omitempty"`
}

// ComplianceStatus summarizes collector completion as report-facing booleans.
// Each field is derived from the recorded step statuses rather than asserted
// unconditionally, so a broken scanner surfaces as an unchecked item.
type ComplianceStatus struct {
	VulnerabilityScanCompleted   bool `json:"vulnerability_scan_completed"`
	LicenseScanCompleted         bool `json:"license_scan_completed"`
	DependencyInventoryCompleted bool `json:"dependency_inventory_completed"`
}

// AuditDataset aggregates every collected record for a single run. It is
// constructed once per run and read-only afterwards; all renderers consume the
// same GeneratedAt timestamp.
type AuditDataset struct {
	GeneratedAt  time.Time
	Findings     []VulnerabilityFinding
	Dependencies []DependencyRecord
	Outdated     []OutdatedRecord
	Steps        []CollectionStepStatus
}

// VulnerabilityCount returns the number of collected findings.
func (dataset AuditDataset) VulnerabilityCount() int {
	return len(dataset.Findings)
}

// DependencyCount returns the number of collected dependency records.
func (dataset AuditDataset) DependencyCount() int {
	return len(dataset.Dependencies)
}

// StepCompleted reports whether the named collector stage completed cleanly.
// Unrecorded stages count as incomplete.
func (dataset AuditDataset) StepCompleted(step CollectionStep) bool {
	for _, status := range dataset.Steps {
		if status.Step == step {
			return status.Completed
		}
	}
	return false
}

// Compliance derives the report compliance booleans from the step statuses.
func (dataset AuditDataset) Compliance() ComplianceStatus {
	return ComplianceStatus{
		VulnerabilityScanCompleted:   dataset.StepCompleted(CollectionStepVulnerabilityScan) && dataset.StepCompleted(CollectionStepSupplementalScan),
		LicenseScanCompleted:         dataset.StepCompleted(CollectionStepLicenseEnumeration),
		DependencyInventoryCompleted: dataset.StepCompleted(CollectionStepDependencyInventory),
	}
}

// CollectionCompleted reports whether every recorded collector stage completed cleanly.
func (dataset AuditDataset) CollectionCompleted() bool {
	for _, status := range dataset.Steps {
		if !status.Completed {
			return false
		}
	}
	return true
}

// Clock abstracts time-dependent functionality for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the standard library.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
