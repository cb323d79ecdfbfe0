package scanners_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/depaudit/depaudit/internal/execshell"
	"github.com/depaudit/depaudit/internal/model"
	"github.com/depaudit/depaudit/internal/scanners"
)

const (
	testRequirementsFileNameConstant  = "requirements.txt"
	testScannerSubtestNameTemplate    = "%d_%s"
	testEmptyOutputCaseNameConstant   = "empty_output"
	testMalformedJSONCaseNameConstant = "malformed_json"
	testRunnerErrorCaseNameConstant   = "runner_error"
	testPipAuditDocumentConstant      = `{"vulnerabilities": [{"name": "requests", "installed_version": "2.25.0", "id": "PYSEC-2021-102", "description": "Insufficient certificate validation in the requests library", "fixed_versions": ["2.25.1"]}]}`
	testSafetyDocumentConstant        = `[{"package": "urllib3", "installed_version": "1.26.3", "advisory": "CRLF injection issue", "cve": "CVE-2021-28363", "id": "40291"}, {"package": "pyyaml", "installed_version": "5.3", "advisory": "Arbitrary code execution", "cve": "", "id": "38100"}]`
	testPipLicensesDocumentConstant   = `[{"Name": "flask", "Version": "2.0.1", "License": "BSD-3-Clause"}, {"Name": "internal-pkg", "Version": "0.1.0", "License": ""}]`
	testPipOutdatedDocumentConstant   = `[{"name": "flask", "version": "2.0.1", "latest_version": "2.3.2"}]`
)

type stubExecutor struct {
	result           execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.CommandDetails
}

func (executor *stubExecutor) record(details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, details)
	return executor.result, executor.executionError
}

func (executor *stubExecutor) ExecutePipAudit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.record(details)
}

func (executor *stubExecutor) ExecuteSafety(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.record(details)
}

func (executor *stubExecutor) ExecutePipLicenses(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.record(details)
}

func (executor *stubExecutor) ExecutePip(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.record(details)
}

func TestPipAuditScannerScan(testInstance *testing.T) {
	testCases := []struct {
		name             string
		result           execshell.ExecutionResult
		executionError   error
		expectedFindings []model.VulnerabilityFinding
		expectError      bool
	}{
		{
			name:   "findings_parsed",
			result: execshell.ExecutionResult{StandardOutput: testPipAuditDocumentConstant},
			expectedFindings: []model.VulnerabilityFinding{
				{
					PackageName:        "requests",
					InstalledVersion:   "2.25.0",
					AdvisoryIdentifier: "PYSEC-2021-102",
					Description:        "Insufficient certificate validation in the requests library",
					FixedVersions:      []string{"2.25.1"},
					Source:             "pip-audit",
				},
			},
		},
		{
			name: "findings_recovered_from_nonzero_exit",
			result: execshell.ExecutionResult{
				StandardOutput: testPipAuditDocumentConstant,
				ExitCode:       1,
			},
			executionError: execshell.CommandFailedError{
				Command: execshell.ShellCommand{Name: execshell.CommandPipAudit},
				Result:  execshell.ExecutionResult{StandardOutput: testPipAuditDocumentConstant, ExitCode: 1},
			},
			expectedFindings: []model.VulnerabilityFinding{
				{
					PackageName:        "requests",
					InstalledVersion:   "2.25.0",
					AdvisoryIdentifier: "PYSEC-2021-102",
					Description:        "Insufficient certificate validation in the requests library",
					FixedVersions:      []string{"2.25.1"},
					Source:             "pip-audit",
				},
			},
		},
		{
			name:   testEmptyOutputCaseNameConstant,
			result: execshell.ExecutionResult{StandardOutput: "   \n"},
		},
		{
			name:        testMalformedJSONCaseNameConstant,
			result:      execshell.ExecutionResult{StandardOutput: "{not json"},
			expectError: true,
		},
		{
			name:           testRunnerErrorCaseNameConstant,
			executionError: execshell.CommandExecutionError{Command: execshell.ShellCommand{Name: execshell.CommandPipAudit}, Cause: errors.New("not installed")},
			expectError:    true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testScannerSubtestNameTemplate, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			executor := &stubExecutor{result: testCase.result, executionError: testCase.executionError}
			scanner := scanners.NewPipAuditScanner(executor)

			findings, scanError := scanner.Scan(context.Background(), testRequirementsFileNameConstant)
			if testCase.expectError {
				require.Error(testInstance, scanError)
				return
			}
			require.NoError(testInstance, scanError)
			require.Equal(testInstance, testCase.expectedFindings, findings)
			require.Len(testInstance, executor.recordedCommands, 1)
			require.Equal(testInstance, []string{"-r", testRequirementsFileNameConstant, "--format", "json"}, executor.recordedCommands[0].Arguments)
		})
	}
}

func TestSafetyScannerScan(testInstance *testing.T) {
	executor := &stubExecutor{result: execshell.ExecutionResult{StandardOutput: testSafetyDocumentConstant}}
	scanner := scanners.NewSafetyScanner(executor)

	findings, scanError := scanner.Scan(context.Background())
	require.NoError(testInstance, scanError)
	require.Len(testInstance, findings, 2)
	require.Equal(testInstance, "CVE-2021-28363", findings[0].AdvisoryIdentifier)
	require.Equal(testInstance, "urllib3", findings[0].PackageName)
	require.Equal(testInstance, "safety", findings[0].Source)
	require.Equal(testInstance, "38100", findings[1].AdvisoryIdentifier)
	require.Len(testInstance, executor.recordedCommands, 1)
	require.Equal(testInstance, []string{"check", "--json"}, executor.recordedCommands[0].Arguments)
}

func TestSafetyScannerToleratesEmptyOutput(testInstance *testing.T) {
	executor := &stubExecutor{}
	scanner := scanners.NewSafetyScanner(executor)

	findings, scanError := scanner.Scan(context.Background())
	require.NoError(testInstance, scanError)
	require.Empty(testInstance, findings)
}

func TestSafetyScannerRejectsMalformedOutput(testInstance *testing.T) {
	executor := &stubExecutor{result: execshell.ExecutionResult{StandardOutput: "safety exploded"}}
	scanner := scanners.NewSafetyScanner(executor)

	findings, scanError := scanner.Scan(context.Background())
	require.Error(testInstance, scanError)
	require.Empty(testInstance, findings)
}

func TestPipLicensesScannerEnumerate(testInstance *testing.T) {
	executor := &stubExecutor{result: execshell.ExecutionResult{StandardOutput: testPipLicensesDocumentConstant}}
	scanner := scanners.NewPipLicensesScanner(executor)

	dependencies, enumerateError := scanner.Enumerate(context.Background())
	require.NoError(testInstance, enumerateError)
	require.Equal(testInstance, []model.DependencyRecord{
		{Name: "flask", Version: "2.0.1", License: "BSD-3-Clause"},
		{Name: "internal-pkg", Version: "0.1.0", License: "Unknown"},
	}, dependencies)
	require.Len(testInstance, executor.recordedCommands, 1)
	require.Equal(testInstance, []string{"--format=json"}, executor.recordedCommands[0].Arguments)
}

func TestPipOutdatedScannerList(testInstance *testing.T) {
	executor := &stubExecutor{result: execshell.ExecutionResult{StandardOutput: testPipOutdatedDocumentConstant}}
	scanner := scanners.NewPipOutdatedScanner(executor)

	outdated, listError := scanner.List(context.Background())
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []model.OutdatedRecord{
		{Name: "flask", InstalledVersion: "2.0.1", LatestVersion: "2.3.2"},
	}, outdated)
	require.Len(testInstance, executor.recordedCommands, 1)
	require.Equal(testInstance, []string{"list", "--outdated", "--format", "json"}, executor.recordedCommands[0].Arguments)
}
