package cli_test

import (
	"bytes"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/depaudit/depaudit/cmd/cli"
	"github.com/depaudit/depaudit/internal/audit"
)

const (
	embeddedConfigurationTypeConstant    = "yaml"
	embeddedToolsConfigurationKey        = "tools"
	embeddedAuditConfigurationKey        = "audit"
	expectedDefaultOutputDirectory       = "."
	expectedDefaultFailModeConstant      = "open"
	expectedDefaultRequirementsConstant  = "requirements.txt"
	expectedDefaultLogLevelConstant      = "info"
	expectedDefaultLogFormatConstant     = "console"
)

func decodeEmbeddedApplicationConfiguration(testingInstance testing.TB) (cli.ApplicationConfiguration, map[string]any) {
	testingInstance.Helper()

	viperInstance := viper.New()
	viperInstance.SetConfigType(embeddedConfigurationTypeConstant)

	readError := viperInstance.ReadConfig(bytes.NewReader(cli.EmbeddedDefaultConfiguration()))
	require.NoError(testingInstance, readError)

	var configuration cli.ApplicationConfiguration
	unmarshalError := viperInstance.Unmarshal(&configuration)
	require.NoError(testingInstance, unmarshalError)

	return configuration, viperInstance.GetStringMap(embeddedToolsConfigurationKey)
}

func TestEmbeddedDefaultConfigurationProvidesAuditDefaults(testInstance *testing.T) {
	configuration, toolsSection := decodeEmbeddedApplicationConfiguration(testInstance)

	require.Equal(testInstance, expectedDefaultLogLevelConstant, configuration.Common.LogLevel)
	require.Equal(testInstance, expectedDefaultLogFormatConstant, configuration.Common.LogFormat)

	auditSection, sectionPresent := toolsSection[embeddedAuditConfigurationKey].(map[string]any)
	require.True(testInstance, sectionPresent)

	var auditConfiguration audit.CommandConfiguration
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "mapstructure", Result: &auditConfiguration})
	require.NoError(testInstance, decoderError)
	require.NoError(testInstance, decoder.Decode(auditSection))

	require.Equal(testInstance, expectedDefaultOutputDirectory, auditConfiguration.OutputDirectory)
	require.Equal(testInstance, expectedDefaultFailModeConstant, auditConfiguration.FailMode)
	require.Equal(testInstance, expectedDefaultRequirementsConstant, auditConfiguration.RequirementsFile)
}

func TestDefaultConfigurationValuesCoverEveryAuditKey(testInstance *testing.T) {
	defaultValues := audit.DefaultConfigurationValues("tools.audit")

	require.Equal(testInstance, expectedDefaultOutputDirectory, defaultValues["tools.audit.output_directory"])
	require.Equal(testInstance, expectedDefaultFailModeConstant, defaultValues["tools.audit.fail_mode"])
	require.Equal(testInstance, expectedDefaultRequirementsConstant, defaultValues["tools.audit.requirements_file"])
}
