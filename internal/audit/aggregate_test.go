package audit_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/depaudit/depaudit/internal/audit"
	"github.com/depaudit/depaudit/internal/model"
)

const (
	testAggregateSubtestNameTemplate = "%d_%s"
)

func TestMergeFindingsDeduplicatesByPackageAndAdvisory(testInstance *testing.T) {
	testCases := []struct {
		name         string
		primary      []model.VulnerabilityFinding
		supplemental []model.VulnerabilityFinding
		expected     []model.VulnerabilityFinding
	}{
		{
			name: "duplicate_dropped_first_occurrence_kept",
			primary: []model.VulnerabilityFinding{
				{PackageName: "requests", AdvisoryIdentifier: "CVE-2021-1", Source: "pip-audit"},
			},
			supplemental: []model.VulnerabilityFinding{
				{PackageName: "requests", AdvisoryIdentifier: "CVE-2021-1", Source: "safety"},
				{PackageName: "urllib3", AdvisoryIdentifier: "CVE-2021-2", Source: "safety"},
			},
			expected: []model.VulnerabilityFinding{
				{PackageName: "requests", AdvisoryIdentifier: "CVE-2021-1", Source: "pip-audit"},
				{PackageName: "urllib3", AdvisoryIdentifier: "CVE-2021-2", Source: "safety"},
			},
		},
		{
			name: "same_package_different_advisories_kept",
			primary: []model.VulnerabilityFinding{
				{PackageName: "pyyaml", AdvisoryIdentifier: "CVE-2020-1"},
				{PackageName: "pyyaml", AdvisoryIdentifier: "CVE-2020-2"},
			},
			expected: []model.VulnerabilityFinding{
				{PackageName: "pyyaml", AdvisoryIdentifier: "CVE-2020-1"},
				{PackageName: "pyyaml", AdvisoryIdentifier: "CVE-2020-2"},
			},
		},
		{
			name:     "empty_inputs_produce_empty_output",
			expected: []model.VulnerabilityFinding{},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testAggregateSubtestNameTemplate, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			merged := audit.MergeFindings(testCase.primary, testCase.supplemental)
			require.Equal(testInstance, testCase.expected, merged)
		})
	}
}

func TestSortDependenciesOrdersCaseSensitively(testInstance *testing.T) {
	unsorted := []model.DependencyRecord{
		{Name: "flask"},
		{Name: "Django"},
		{Name: "Zope"},
		{Name: "attrs"},
	}

	sorted := audit.SortDependencies(unsorted)

	require.Equal(testInstance, []model.DependencyRecord{
		{Name: "Django"},
		{Name: "Zope"},
		{Name: "attrs"},
		{Name: "flask"},
	}, sorted)
	require.Equal(testInstance, "flask", unsorted[0].Name)
}

func TestParseFailMode(testInstance *testing.T) {
	testCases := []struct {
		rawValue     string
		expectedMode audit.FailMode
		expectError  bool
	}{
		{rawValue: "open", expectedMode: audit.FailModeOpen},
		{rawValue: " CLOSED ", expectedMode: audit.FailModeClosed},
		{rawValue: "strict", expectError: true},
		{rawValue: "", expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testAggregateSubtestNameTemplate, testCaseIndex, testCase.rawValue), func(testInstance *testing.T) {
			parsedMode, parseError := audit.ParseFailMode(testCase.rawValue)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedMode, parsedMode)
		})
	}
}
