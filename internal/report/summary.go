package report

import (
	"fmt"
	"strings"

	"github.com/depaudit/depaudit/internal/model"
)

const (
	summaryHeaderConstant                = "## Dependency Audit Summary"
	summaryGeneratedTemplateConstant     = "- **Generated:** %s"
	summaryDependenciesTemplateConstant  = "- **Total Dependencies:** %d"
	summaryVulnerabilitiesTemplate       = "- **Vulnerabilities Found:** %d"
	summaryStatusHeadingConstant         = "### Status"
	summaryPassStatusConstant            = "✅ **PASS** - No vulnerabilities detected"
	summaryWarningStatusTemplate         = "⚠️ **WARNING** - %d vulnerability finding(s) detected"
	summaryTopDependenciesHeading        = "### Top Dependencies"
	summaryDependencyEntryTemplate       = "- %s (%s)%s"
	summaryVulnerableBadgeConstant       = " 🔴"
	summaryCleanBadgeConstant            = " ✅"
	summaryRemainingTemplateConstant     = "... and %d more dependencies"
	topDependencyPreviewLimitConstant    = 10
	summaryLineSeparatorConstant         = "\n"
)

// RenderCISummary produces the short status fragment rendered into CI job
// summaries. At most ten dependencies are previewed in the dataset's sorted
// order.
func RenderCISummary(dataset model.AuditDataset) string {
	var summaryBuilder strings.Builder
	appendLines := func(lines ...string) {
		for _, line := range lines {
			summaryBuilder.WriteString(line)
			summaryBuilder.WriteString(summaryLineSeparatorConstant)
		}
	}

	appendLines(
		summaryHeaderConstant,
		"",
		fmt.Sprintf(summaryGeneratedTemplateConstant, formatTimestamp(dataset.GeneratedAt)),
		fmt.Sprintf(summaryDependenciesTemplateConstant, dataset.DependencyCount()),
		fmt.Sprintf(summaryVulnerabilitiesTemplate, dataset.VulnerabilityCount()),
		"",
		summaryStatusHeadingConstant,
		"",
		buildSummaryStatusLine(dataset.VulnerabilityCount()),
		"",
		summaryTopDependenciesHeading,
		"",
	)

	vulnerablePackages := collectVulnerablePackageNames(dataset.Findings)
	previewedDependencies := TopDependencies(dataset.Dependencies)
	for _, dependency := range previewedDependencies {
		appendLines(fmt.Sprintf(
			summaryDependencyEntryTemplate,
			dependency.Name,
			dependency.Version,
			selectDependencyBadge(dependency.Name, vulnerablePackages),
		))
	}

	if remaining := len(dataset.Dependencies) - len(previewedDependencies); remaining > 0 {
		appendLines("", fmt.Sprintf(summaryRemainingTemplateConstant, remaining))
	}

	return summaryBuilder.String()
}

// TopDependencies returns at most the first ten dependency records, preserving
// the dataset's sorted order.
func TopDependencies(dependencies []model.DependencyRecord) []model.DependencyRecord {
	if len(dependencies) <= topDependencyPreviewLimitConstant {
		return dependencies
	}
	return dependencies[:topDependencyPreviewLimitConstant]
}

func buildSummaryStatusLine(vulnerabilityCount int) string {
	if vulnerabilityCount == 0 {
		return summaryPassStatusConstant
	}
	return fmt.Sprintf(summaryWarningStatusTemplate, vulnerabilityCount)
}

func collectVulnerablePackageNames(findings []model.VulnerabilityFinding) map[string]struct{} {
	vulnerablePackages := make(map[string]struct{}, len(findings))
	for _, finding := range findings {
		vulnerablePackages[finding.PackageName] = struct{}{}
	}
	return vulnerablePackages
}

func selectDependencyBadge(packageName string, vulnerablePackages map[string]struct{}) string {
	if _, vulnerable := vulnerablePackages[packageName]; vulnerable {
		return summaryVulnerableBadgeConstant
	}
	return summaryCleanBadgeConstant
}
