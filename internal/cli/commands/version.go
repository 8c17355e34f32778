package commands

import (
	"runtime"

	"github.com/leapstack-labs/leapaudit/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display leapaudit version and build information.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := NewCommandContext(cmd).Renderer
			info := output.VersionInfo{
				Version:   version,
				GoVersion: runtime.Version(),
				OS:        runtime.GOOS,
				Arch:      runtime.GOARCH,
			}

			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(info)
			}
			r.Printf("leapaudit v%s\n", info.Version)
			r.Println("Naming-convention auditor for database objects")
			r.Printf("%s %s/%s\n", info.GoVersion, info.OS, info.Arch)
			return nil
		},
	}
}
