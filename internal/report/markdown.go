package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/depaudit/depaudit/internal/model"
)

const (
	markdownHeaderConstant                  = "# Dependency Audit Report"
	markdownGeneratedTemplateConstant       = "**Generated:** %s"
	markdownSummaryHeadingConstant          = "## Summary"
	markdownMetricTableHeaderConstant       = "| Metric | Value |"
	markdownMetricTableDividerConstant      = "|--------|-------|"
	markdownDependencyMetricTemplate        = "| Total Dependencies | %d |"
	markdownVulnerabilityMetricTemplate     = "| Total Vulnerabilities | %d |"
	markdownStatusHeadingConstant           = "## Security Status"
	markdownPassStatusConstant              = "✅ **PASS** - No vulnerabilities detected in dependencies"
	markdownWarningStatusTemplateConstant   = "⚠️ **WARNING** - %d vulnerability finding(s) detected"
	markdownVulnerabilityHeadingConstant    = "## Vulnerabilities"
	markdownNoVulnerabilitiesLineConstant   = "No known vulnerabilities were found."
	markdownVulnerabilityTableHeader        = "| Package | Version | Advisory | Description |"
	markdownVulnerabilityTableDivider       = "|---------|---------|----------|-------------|"
	markdownVulnerabilityRowTemplate        = "| %s | %s | %s | %s |"
	markdownDependencyHeadingConstant       = "## Dependencies and Licenses"
	markdownDependencyTableHeaderConstant   = "| Package | Version | License |"
	markdownDependencyTableDividerConstant  = "|---------|---------|---------|"
	markdownDependencyRowTemplateConstant   = "| %s | %s | %s |"
	markdownOutdatedHeadingConstant         = "## Outdated Packages"
	markdownOutdatedTableHeaderConstant     = "| Package | Installed | Latest |"
	markdownOutdatedTableDividerConstant    = "|---------|-----------|--------|"
	markdownOutdatedRowTemplateConstant     = "| %s | %s | %s |"
	markdownComplianceHeadingConstant       = "## Compliance Checklist"
	markdownChecklistItemTemplateConstant   = "- [%s] %s"
	markdownCheckedMarkConstant             = "x"
	markdownUncheckedMarkConstant           = " "
	markdownVulnerabilityScanItemConstant   = "Vulnerability scans completed"
	markdownLicenseScanItemConstant         = "License analysis completed"
	markdownInventoryItemConstant           = "Dependency inventory completed"
	markdownSecurityGatesPassedConstant     = "- [x] Security gates passed"
	markdownSecurityGatesAttentionConstant  = "- [ ] Security gates require attention"
	markdownRecommendationsHeadingConstant  = "## Recommendations"
	markdownSectionSeparatorConstant        = "---"
	descriptionTruncationLimitConstant      = 50
	descriptionTruncationSuffixConstant     = "..."
	markdownTableCellEscapeReplacement      = "\\|"
	markdownTableCellPipeConstant           = "|"
	markdownLineSeparatorConstant           = "\n"
)

var vulnerableRecommendations = []string{
	"1. **Update vulnerable packages** to versions without known advisories",
	"2. **Review license obligations** before commercial deployment",
	"3. **Track dependency updates** regularly using automated tooling",
}

var cleanRecommendations = []string{
	"1. All security checks passed",
	"2. Schedule regular dependency scans",
	"3. Monitor for newly disclosed vulnerabilities",
}

// RenderMarkdown produces the full Markdown audit report for a dataset.
func RenderMarkdown(dataset model.AuditDataset) string {
	var reportBuilder strings.Builder
	appendLines := func(lines ...string) {
		for _, line := range lines {
			reportBuilder.WriteString(line)
			reportBuilder.WriteString(markdownLineSeparatorConstant)
		}
	}

	appendLines(
		markdownHeaderConstant,
		"",
		fmt.Sprintf(markdownGeneratedTemplateConstant, formatTimestamp(dataset.GeneratedAt)),
		"",
		markdownSummaryHeadingConstant,
		"",
		markdownMetricTableHeaderConstant,
		markdownMetricTableDividerConstant,
		fmt.Sprintf(markdownDependencyMetricTemplate, dataset.DependencyCount()),
		fmt.Sprintf(markdownVulnerabilityMetricTemplate, dataset.VulnerabilityCount()),
		"",
		markdownSectionSeparatorConstant,
		"",
		markdownStatusHeadingConstant,
		"",
		buildStatusLine(dataset.VulnerabilityCount()),
		"",
		markdownSectionSeparatorConstant,
		"",
		markdownVulnerabilityHeadingConstant,
		"",
	)

	if dataset.VulnerabilityCount() == 0 {
		appendLines(markdownNoVulnerabilitiesLineConstant, "")
	} else {
		appendLines(markdownVulnerabilityTableHeader, markdownVulnerabilityTableDivider)
		for _, finding := range dataset.Findings {
			appendLines(fmt.Sprintf(
				markdownVulnerabilityRowTemplate,
				escapeTableCell(finding.PackageName),
				escapeTableCell(finding.InstalledVersion),
				escapeTableCell(finding.AdvisoryIdentifier),
				escapeTableCell(truncateDescription(finding.Description)),
			))
		}
		appendLines("")
	}

	appendLines(
		markdownSectionSeparatorConstant,
		"",
		markdownDependencyHeadingConstant,
		"",
		markdownDependencyTableHeaderConstant,
		markdownDependencyTableDividerConstant,
	)
	for _, dependency := range dataset.Dependencies {
		appendLines(fmt.Sprintf(
			markdownDependencyRowTemplateConstant,
			escapeTableCell(dependency.Name),
			escapeTableCell(dependency.Version),
			escapeTableCell(dependency.License),
		))
	}
	appendLines("")

	if len(dataset.Outdated) > 0 {
		appendLines(
			markdownSectionSeparatorConstant,
			"",
			markdownOutdatedHeadingConstant,
			"",
			markdownOutdatedTableHeaderConstant,
			markdownOutdatedTableDividerConstant,
		)
		for _, outdated := range dataset.Outdated {
			appendLines(fmt.Sprintf(
				markdownOutdatedRowTemplateConstant,
				escapeTableCell(outdated.Name),
				escapeTableCell(outdated.InstalledVersion),
				escapeTableCell(outdated.LatestVersion),
			))
		}
		appendLines("")
	}

	compliance := dataset.Compliance()
	appendLines(
		markdownSectionSeparatorConstant,
		"",
		markdownComplianceHeadingConstant,
		"",
		buildChecklistItem(compliance.DependencyInventoryCompleted, markdownInventoryItemConstant),
		buildChecklistItem(compliance.LicenseScanCompleted, markdownLicenseScanItemConstant),
		buildChecklistItem(compliance.VulnerabilityScanCompleted, markdownVulnerabilityScanItemConstant),
		buildSecurityGateLine(dataset.VulnerabilityCount()),
		"",
		markdownSectionSeparatorConstant,
		"",
		markdownRecommendationsHeadingConstant,
		"",
	)
	appendLines(selectRecommendations(dataset.VulnerabilityCount())...)

	return reportBuilder.String()
}

func buildStatusLine(vulnerabilityCount int) string {
	if vulnerabilityCount == 0 {
		return markdownPassStatusConstant
	}
	return fmt.Sprintf(markdownWarningStatusTemplateConstant, vulnerabilityCount)
}

func buildChecklistItem(completed bool, label string) string {
	checkMark := markdownUncheckedMarkConstant
	if completed {
		checkMark = markdownCheckedMarkConstant
	}
	return fmt.Sprintf(markdownChecklistItemTemplateConstant, checkMark, label)
}

func buildSecurityGateLine(vulnerabilityCount int) string {
	if vulnerabilityCount == 0 {
		return markdownSecurityGatesPassedConstant
	}
	return markdownSecurityGatesAttentionConstant
}

func selectRecommendations(vulnerabilityCount int) []string {
	if vulnerabilityCount > 0 {
		return vulnerableRecommendations
	}
	return cleanRecommendations
}

// truncateDescription limits descriptions to a fixed rune count so table rows
// stay readable. Counted in runes rather than bytes to avoid splitting
// multibyte characters.
func truncateDescription(description string) string {
	descriptionRunes := []rune(description)
	if len(descriptionRunes) <= descriptionTruncationLimitConstant {
		return description
	}
	return string(descriptionRunes[:descriptionTruncationLimitConstant]) + descriptionTruncationSuffixConstant
}

func escapeTableCell(cellValue string) string {
	sanitized := strings.ReplaceAll(cellValue, markdownTableCellPipeConstant, markdownTableCellEscapeReplacement)
	return strings.ReplaceAll(sanitized, markdownLineSeparatorConstant, " ")
}

func formatTimestamp(timestamp time.Time) string {
	return timestamp.UTC().Format(time.RFC3339)
}
