package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	debug bool

	// logger is built from the global flags before any command runs
	logger = zap.NewNop().Sugar()
)

// rootCmd is the root command for pathplanner.
var rootCmd = &cobra.Command{
	Use:     "pathplanner",
	Version: "dev",
	Short:   "Kinodynamic RRT path planner for car-like robots",
	Long: `pathplanner finds collision-free paths for a rectangular, car-like robot
inside a polygonal workspace with polygonal obstacles.

Paths are grown as a rapidly-exploring random tree whose edges are
Dubins curves respecting the robot's minimum turning radius.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(debug)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.Execute()
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		l, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stderr"}
		l, err = cfg.Build()
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}
	return l.Sugar(), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "planning",
		Title: "Planning:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "geometry",
		Title: "Geometry:",
	})

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the pathplanner CLI version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(os.Stdout, rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)
}
