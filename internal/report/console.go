package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/depaudit/depaudit/internal/model"
)

const (
	consoleSummaryTemplateConstant      = "Audited %d dependencies, %d vulnerability finding(s), status %s\n"
	consoleTopDependenciesLineConstant  = "\nTop dependencies:\n"
	consolePackageColumnHeaderConstant  = "PACKAGE"
	consoleVersionColumnHeaderConstant  = "VERSION"
	consoleLicenseColumnHeaderConstant  = "LICENSE"
)

// WriteConsoleTranscript prints the run outcome and an aligned preview of the
// top dependencies to the provided writer.
func WriteConsoleTranscript(outputWriter io.Writer, dataset model.AuditDataset) error {
	_, writeError := fmt.Fprintf(
		outputWriter,
		consoleSummaryTemplateConstant,
		dataset.DependencyCount(),
		dataset.VulnerabilityCount(),
		deriveStatus(dataset.VulnerabilityCount()),
	)
	if writeError != nil {
		return writeError
	}

	previewedDependencies := TopDependencies(dataset.Dependencies)
	if len(previewedDependencies) == 0 {
		return nil
	}

	if _, writeError = fmt.Fprint(outputWriter, consoleTopDependenciesLineConstant); writeError != nil {
		return writeError
	}

	dependencyTable := tablewriter.NewWriter(outputWriter)
	dependencyTable.SetHeader([]string{consolePackageColumnHeaderConstant, consoleVersionColumnHeaderConstant, consoleLicenseColumnHeaderConstant})
	dependencyTable.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	dependencyTable.SetAlignment(tablewriter.ALIGN_LEFT)
	dependencyTable.SetBorder(false)
	dependencyTable.SetHeaderLine(false)
	dependencyTable.SetRowLine(false)
	dependencyTable.SetColumnSeparator("")
	dependencyTable.SetAutoWrapText(false)

	for _, dependency := range previewedDependencies {
		dependencyTable.Append([]string{dependency.Name, dependency.Version, dependency.License})
	}
	dependencyTable.Render()

	return nil
}
