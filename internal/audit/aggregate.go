package audit

import (
	"sort"

	"github.com/depaudit/depaudit/internal/model"
)

const findingKeySeparatorConstant = "\x00"

// MergeFindings combines findings from the primary and supplemental scanners,
// dropping duplicates that share both package name and advisory identifier.
// The first occurrence wins so primary-scanner details are preferred, and the
// collection order is otherwise preserved.
func MergeFindings(findingGroups ...[]model.VulnerabilityFinding) []model.VulnerabilityFinding {
	totalFindings := 0
	for _, findingGroup := range findingGroups {
		totalFindings += len(findingGroup)
	}

	merged := make([]model.VulnerabilityFinding, 0, totalFindings)
	seenFindings := make(map[string]struct{}, totalFindings)

	for _, findingGroup := range findingGroups {
		for _, finding := range findingGroup {
			findingKey := finding.PackageName + findingKeySeparatorConstant + finding.AdvisoryIdentifier
			if _, alreadySeen := seenFindings[findingKey]; alreadySeen {
				continue
			}
			seenFindings[findingKey] = struct{}{}
			merged = append(merged, finding)
		}
	}

	return merged
}

// SortDependencies returns a copy of the dependency records ordered by name,
// case-sensitive lexicographic ascending, for deterministic report output.
func SortDependencies(dependencies []model.DependencyRecord) []model.DependencyRecord {
	sorted := make([]model.DependencyRecord, len(dependencies))
	copy(sorted, dependencies)
	sort.SliceStable(sorted, func(firstIndex int, secondIndex int) bool {
		return sorted[firstIndex].Name < sorted[secondIndex].Name
	})
	return sorted
}
