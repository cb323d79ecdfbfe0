package audit

import (
	"fmt"
	"strings"
)

const (
	defaultOutputDirectoryConstant      = "."
	defaultRequirementsFileConstant     = "requirements.txt"
	failModeOpenStringConstant          = "open"
	failModeClosedStringConstant        = "closed"
	unsupportedFailModeTemplateConstant = "unsupported fail mode: %s"
)

// FailMode selects how the pipeline reacts to collector failures.
type FailMode string

// Supported fail modes. Open degrades failed collectors to empty results and
// still writes reports; closed aborts on the first collector failure.
const (
	FailModeOpen   FailMode = FailMode(failModeOpenStringConstant)
	FailModeClosed FailMode = FailMode(failModeClosedStringConstant)
)

// FailModeChoices lists the accepted fail mode values for flag usage strings.
func FailModeChoices() []string {
	return []string{failModeOpenStringConstant, failModeClosedStringConstant}
}

// ParseFailMode validates a textual fail mode value.
func ParseFailMode(raw string) (FailMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case failModeOpenStringConstant:
		return FailModeOpen, nil
	case failModeClosedStringConstant:
		return FailModeClosed, nil
	default:
		return "", fmt.Errorf(unsupportedFailModeTemplateConstant, raw)
	}
}

const (
	outputDirectoryConfigurationKeyConstant  = "output_directory"
	failModeConfigurationKeyConstant         = "fail_mode"
	requirementsFileConfigurationKeyConstant = "requirements_file"
	configurationKeySeparatorConstant        = "."
)

// DefaultConfigurationValues exposes baseline configuration entries keyed under the provided prefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationPrefix + configurationKeySeparatorConstant + outputDirectoryConfigurationKeyConstant:  defaults.OutputDirectory,
		configurationPrefix + configurationKeySeparatorConstant + failModeConfigurationKeyConstant:         defaults.FailMode,
		configurationPrefix + configurationKeySeparatorConstant + requirementsFileConfigurationKeyConstant: defaults.RequirementsFile,
	}
}

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	OutputDirectory  string `mapstructure:"output_directory"`
	FailMode         string `mapstructure:"fail_mode"`
	RequirementsFile string `mapstructure:"requirements_file"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		OutputDirectory:  defaultOutputDirectoryConstant,
		FailMode:         failModeOpenStringConstant,
		RequirementsFile: defaultRequirementsFileConstant,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.OutputDirectory = strings.TrimSpace(configuration.OutputDirectory)
	if len(sanitized.OutputDirectory) == 0 {
		sanitized.OutputDirectory = defaultOutputDirectoryConstant
	}

	sanitized.FailMode = strings.ToLower(strings.TrimSpace(configuration.FailMode))
	if len(sanitized.FailMode) == 0 {
		sanitized.FailMode = failModeOpenStringConstant
	}

	sanitized.RequirementsFile = strings.TrimSpace(configuration.RequirementsFile)
	if len(sanitized.RequirementsFile) == 0 {
		sanitized.RequirementsFile = defaultRequirementsFileConstant
	}

	return sanitized
}
