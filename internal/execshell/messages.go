package execshell

import (
	"fmt"
	"strings"
)

const (
	pipAuditStartMessageConstant          = "Auditing dependencies with pip-audit"
	pipAuditSuccessMessageConstant        = "pip-audit scan completed"
	pipAuditSubjectLabelConstant          = "pip-audit scan"
	safetyStartMessageConstant            = "Scanning dependencies with safety"
	safetySuccessMessageConstant          = "safety scan completed"
	safetySubjectLabelConstant            = "safety scan"
	pipLicensesStartMessageConstant       = "Enumerating dependency licenses with pip-licenses"
	pipLicensesSuccessMessageConstant     = "License enumeration completed"
	pipLicensesSubjectLabelConstant       = "license enumeration"
	pipStartMessageConstant               = "Listing outdated packages with pip"
	pipSuccessMessageConstant             = "Outdated package listing completed"
	pipSubjectLabelConstant               = "outdated package listing"
	genericStartTemplateConstant          = "Running %s"
	genericSuccessTemplateConstant        = "Completed %s"
	failureTemplateConstant               = "%s failed with exit code %d%s"
	executionFailureTemplateConstant      = "%s failed: %s"
	workingDirectorySuffixTemplate        = " (in %s)"
	standardErrorSuffixTemplateConstant   = ": %s"
	commandArgumentsJoinSeparatorConstant = " "
	unknownFailureMessageConstant         = "unknown error"
	emptyStringConstant                   = ""
)

type toolMessageTemplates struct {
	startMessage   string
	successMessage string
	subjectLabel   string
}

var toolMessageMapping = map[CommandName]toolMessageTemplates{
	CommandPipAudit: {
		startMessage:   pipAuditStartMessageConstant,
		successMessage: pipAuditSuccessMessageConstant,
		subjectLabel:   pipAuditSubjectLabelConstant,
	},
	CommandSafety: {
		startMessage:   safetyStartMessageConstant,
		successMessage: safetySuccessMessageConstant,
		subjectLabel:   safetySubjectLabelConstant,
	},
	CommandPipLicenses: {
		startMessage:   pipLicensesStartMessageConstant,
		successMessage: pipLicensesSuccessMessageConstant,
		subjectLabel:   pipLicensesSubjectLabelConstant,
	},
	CommandPip: {
		startMessage:   pipStartMessageConstant,
		successMessage: pipSuccessMessageConstant,
		subjectLabel:   pipSubjectLabelConstant,
	},
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	if templates, known := toolMessageMapping[command.Name]; known {
		return templates.startMessage + formatter.formatWorkingDirectorySuffix(command)
	}
	return fmt.Sprintf(genericStartTemplateConstant, formatter.formatCommandLabel(command))
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	if templates, known := toolMessageMapping[command.Name]; known {
		return templates.successMessage
	}
	return fmt.Sprintf(genericSuccessTemplateConstant, formatter.formatCommandLabel(command))
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return fmt.Sprintf(failureTemplateConstant, formatter.describeSubject(command), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	failureMessage := unknownFailureMessageConstant
	if failure != nil {
		failureMessage = failure.Error()
	}
	return fmt.Sprintf(executionFailureTemplateConstant, formatter.describeSubject(command), failureMessage)
}

func (formatter CommandMessageFormatter) describeSubject(command ShellCommand) string {
	if templates, known := toolMessageMapping[command.Name]; known {
		return templates.subjectLabel
	}
	return formatter.formatCommandLabel(command)
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = commandLabel + commandArgumentsJoinSeparatorConstant + strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant)
	}
	return commandLabel + formatter.formatWorkingDirectorySuffix(command)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplate, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}
