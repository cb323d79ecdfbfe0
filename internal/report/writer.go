package report

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// MarkdownReportFileName is the relative path of the Markdown artifact.
	MarkdownReportFileName = "AUDIT_REPORT.md"
	// JSONReportFileName is the relative path of the JSON artifact.
	JSONReportFileName = "audit-report.json"
	// CISummaryFileName is the relative path of the CI summary artifact.
	CISummaryFileName = "CI_SUMMARY.md"

	reportDirectoryPermissionsConstant = 0o755
	reportFilePermissionsConstant      = 0o644
	directoryCreateErrorTemplate       = "failed to create report directory %s: %w"
	artifactWriteErrorTemplateConstant = "failed to write %s: %w"
)

// Artifacts holds the three rendered report bodies for one run.
type Artifacts struct {
	Markdown string
	JSON     string
	Summary  string
}

// Writer persists report artifacts into a configured output directory.
type Writer struct {
	fileSystem      afero.Fs
	outputDirectory string
}

// NewWriter constructs a report writer over the provided filesystem.
func NewWriter(fileSystem afero.Fs, outputDirectory string) *Writer {
	return &Writer{fileSystem: fileSystem, outputDirectory: outputDirectory}
}

// Write persists all three artifacts, creating the output directory when missing.
func (writer *Writer) Write(artifacts Artifacts) error {
	if directoryError := writer.fileSystem.MkdirAll(writer.outputDirectory, reportDirectoryPermissionsConstant); directoryError != nil {
		return fmt.Errorf(directoryCreateErrorTemplate, writer.outputDirectory, directoryError)
	}

	artifactFiles := []struct {
		fileName string
		content  string
	}{
		{fileName: MarkdownReportFileName, content: artifacts.Markdown},
		{fileName: JSONReportFileName, content: artifacts.JSON},
		{fileName: CISummaryFileName, content: artifacts.Summary},
	}

	for _, artifactFile := range artifactFiles {
		artifactPath := filepath.Join(writer.outputDirectory, artifactFile.fileName)
		if writeError := afero.WriteFile(writer.fileSystem, artifactPath, []byte(artifactFile.content), reportFilePermissionsConstant); writeError != nil {
			return fmt.Errorf(artifactWriteErrorTemplateConstant, artifactFile.fileName, writeError)
		}
	}

	return nil
}
