package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

const (
	versionCommandUseConstant         = "version"
	versionCommandShortDescription    = "Print the depaudit build version"
	versionOutputTemplateConstant     = "depaudit version: %s\n"
	developmentVersionFallbackLiteral = "(devel)"
)

func (application *Application) buildVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   versionCommandUseConstant,
		Short: versionCommandShortDescription,
		RunE: func(command *cobra.Command, arguments []string) error {
			_, writeError := fmt.Fprintf(command.OutOrStdout(), versionOutputTemplateConstant, application.resolveVersion())
			return writeError
		},
	}
}

func (application *Application) resolveVersion() string {
	if application.versionResolver == nil {
		return developmentVersionFallbackLiteral
	}
	return application.versionResolver()
}

func resolveBuildVersion() string {
	buildInformation, available := debug.ReadBuildInfo()
	if !available || len(buildInformation.Main.Version) == 0 {
		return developmentVersionFallbackLiteral
	}
	return buildInformation.Main.Version
}
