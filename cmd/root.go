package cmd

import (
	"fmt"
	"os"

	"github.com/philipparndt/gopoly/internal/app"
	"github.com/philipparndt/gopoly/internal/config"
	"github.com/philipparndt/gopoly/version"
	"github.com/spf13/cobra"
)

var flags config.Flags

var rootCmd = &cobra.Command{
	Use:   "gopoly",
	Short: "Draw flat polygons on a 3D ground plane",
	Long: `gopoly opens a 3D viewport with a ground plane. Click the ground to place
vertices, press Complete to fill the polygon, Copy to drag a duplicate around
and click again to drop it. Reset clears the scene.`,
	Version:      version.GetFullVersion(),
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := flags.Load(cmd.Flags())
		if err != nil {
			return err
		}
		logger := config.NewLogger(cfg.Log.Level)

		watchPath := ""
		if _, err := os.Stat(flags.Path); err == nil {
			watchPath = flags.Path
		}

		return app.Run(app.Options{
			Config:     cfg,
			ConfigPath: watchPath,
			Reload:     flags.Loader(cmd.Flags()),
			Logger:     logger,
		})
	},
}

func init() {
	flags.Register(rootCmd.Flags())
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
