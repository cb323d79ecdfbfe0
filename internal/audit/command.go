package audit

import (
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/depaudit/depaudit/internal/execshell"
	"github.com/depaudit/depaudit/internal/report"
	"github.com/depaudit/depaudit/internal/scanners"
	"github.com/depaudit/depaudit/internal/ui"
	"github.com/depaudit/depaudit/internal/utils"
	flagutils "github.com/depaudit/depaudit/internal/utils/flags"
)

const (
	commandNameConstant     = "audit"
	commandShortDescription = "Run dependency scanners and generate audit reports"
	commandLongDescription  = "audit runs pip-audit, safety, pip-licenses, and pip against the project, " +
		"aggregates their findings, and writes Markdown, JSON, and CI summary reports."

	flagOutputName              = "output"
	flagOutputDescription       = "directory receiving the report artifacts"
	flagFailModeName            = "fail-mode"
	flagFailModeDescription     = "collector failure policy"
	flagRequirementsName        = "requirements"
	flagRequirementsDescription = "requirements file passed to pip-audit"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the resolved audit configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	CommandRunner         execshell.CommandRunner
	CommandEventsObserver execshell.CommandEventObserver
	FileSystem            afero.Fs
}

// Build constructs the cobra command for the audit pipeline.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	defaults := builder.resolveConfiguration()

	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		RunE:  builder.run,
	}

	command.Flags().String(flagOutputName, defaults.OutputDirectory, flagOutputDescription)
	command.Flags().String(flagFailModeName, defaults.FailMode, flagutils.FormatChoiceUsage(defaults.FailMode, FailModeChoices(), flagFailModeDescription))
	command.Flags().String(flagRequirementsName, defaults.RequirementsFile, flagRequirementsDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	outputDirectory := resolveStringFlag(command, flagOutputName, configuration.OutputDirectory)
	requirementsFile := resolveStringFlag(command, flagRequirementsName, configuration.RequirementsFile)
	failModeValue := resolveStringFlag(command, flagFailModeName, configuration.FailMode)

	failMode, failModeError := ParseFailMode(failModeValue)
	if failModeError != nil {
		return failModeError
	}

	logger := builder.resolveLogger()

	commandRunner := builder.CommandRunner
	if commandRunner == nil {
		commandRunner = execshell.NewOSCommandRunner()
	}

	eventObserver := builder.CommandEventsObserver
	if eventObserver == nil {
		eventObserver = ui.NewConsoleCommandEventLogger(logger)
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner, eventObserver)
	if executorError != nil {
		return executorError
	}

	fileSystem := builder.FileSystem
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger:               logger,
		VulnerabilityScanner: scanners.NewPipAuditScanner(shellExecutor),
		SupplementalScanner:  scanners.NewSafetyScanner(shellExecutor),
		DependencyEnumerator: scanners.NewPipLicensesScanner(shellExecutor),
		OutdatedLister:       scanners.NewPipOutdatedScanner(shellExecutor),
		ReportSink:           report.NewWriter(fileSystem, outputDirectory),
		Output:               utils.NewFlushingWriter(command.OutOrStdout()),
	})
	if serviceError != nil {
		return serviceError
	}

	return service.Run(command.Context(), RunOptions{
		RequirementsFile: requirementsFile,
		FailMode:         failMode,
		OutputDirectory:  outputDirectory,
	})
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveStringFlag(command *cobra.Command, flagName string, configuredValue string) string {
	if command.Flags().Changed(flagName) {
		flagValue, _ := command.Flags().GetString(flagName)
		return strings.TrimSpace(flagValue)
	}
	return configuredValue
}
