package audit_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/depaudit/depaudit/internal/audit"
	"github.com/depaudit/depaudit/internal/execshell"
	"github.com/depaudit/depaudit/internal/report"
)

const (
	testCommandOutputDirectoryConstant = "reports"
	testScriptedPipAuditOutputConstant = `{"vulnerabilities": []}`
	testScriptedSafetyOutputConstant   = `[]`
	testScriptedLicensesOutputConstant = `[{"Name": "flask", "Version": "2.0.1", "License": "BSD-3-Clause"}]`
	testScriptedOutdatedOutputConstant = `[]`
)

type scriptedCommandRunner struct {
	outputs map[execshell.CommandName]execshell.ExecutionResult
}

func (runner *scriptedCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	return runner.outputs[command.Name], nil
}

func TestCommandBuilderRegistersFlags(testInstance *testing.T) {
	builder := audit.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	require.NotNil(testInstance, command.Flags().Lookup("output"))
	require.NotNil(testInstance, command.Flags().Lookup("fail-mode"))
	require.NotNil(testInstance, command.Flags().Lookup("requirements"))
	require.Equal(testInstance, "open", command.Flags().Lookup("fail-mode").DefValue)
}

func TestCommandRunWritesReportsThroughStubbedScanners(testInstance *testing.T) {
	memoryFileSystem := afero.NewMemMapFs()
	builder := audit.CommandBuilder{
		CommandRunner: &scriptedCommandRunner{outputs: map[execshell.CommandName]execshell.ExecutionResult{
			execshell.CommandPipAudit:    {StandardOutput: testScriptedPipAuditOutputConstant},
			execshell.CommandSafety:      {StandardOutput: testScriptedSafetyOutputConstant},
			execshell.CommandPipLicenses: {StandardOutput: testScriptedLicensesOutputConstant},
			execshell.CommandPip:         {StandardOutput: testScriptedOutdatedOutputConstant},
		}},
		FileSystem: memoryFileSystem,
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetContext(context.Background())
	command.SetArgs([]string{"--output", testCommandOutputDirectoryConstant})
	require.NoError(testInstance, command.Execute())

	expectedFiles := []string{
		testCommandOutputDirectoryConstant + "/" + report.MarkdownReportFileName,
		testCommandOutputDirectoryConstant + "/" + report.JSONReportFileName,
		testCommandOutputDirectoryConstant + "/" + report.CISummaryFileName,
	}
	for _, expectedFile := range expectedFiles {
		fileExists, existsError := afero.Exists(memoryFileSystem, expectedFile)
		require.NoError(testInstance, existsError)
		require.True(testInstance, fileExists)
	}

	markdownContent, readError := afero.ReadFile(memoryFileSystem, expectedFiles[0])
	require.NoError(testInstance, readError)
	require.Contains(testInstance, string(markdownContent), "✅ **PASS**")
	require.Contains(testInstance, string(markdownContent), "| flask | 2.0.1 | BSD-3-Clause |")
}

func TestCommandRunRejectsUnknownFailMode(testInstance *testing.T) {
	builder := audit.CommandBuilder{FileSystem: afero.NewMemMapFs()}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetContext(context.Background())
	command.SetArgs([]string{"--fail-mode", "strict"})
	executionError := command.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unsupported fail mode")
}
