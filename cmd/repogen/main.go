package main

import (
	"fmt"
	"os"

	"emperror.dev/errors"
	"github.com/erikgeiser/promptkit"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/weehong/github-repository-metadata-generator/internal/config"
	"github.com/weehong/github-repository-metadata-generator/internal/ui"
	"github.com/weehong/github-repository-metadata-generator/internal/utils/stringutils"
)

var rootFlags struct {
	Debug bool
}

// rootCfg is built once in PersistentPreRunE and passed into run.
var rootCfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "repogen",
	Short: "Generate missing GitHub repository metadata with an LLM",

	// Don't automatically print errors or usage information (we handle that ourselves).
	SilenceErrors: true,
	SilenceUsage:  true,

	// Don't show "completion" command in help menu
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},

	Args: cobra.NoArgs,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if rootFlags.Debug {
			logrus.SetLevel(logrus.DebugLevel)
			logrus.WithField("repogen_version", config.Version).Debug("enabled debug logging")
		}

		// A local .env is a convenience for development; absence is fine.
		if err := godotenv.Load(); err == nil {
			logrus.Debug("loaded .env file")
		}

		// Note: this only returns an error if config exists and it can't be
		// read/parsed. It doesn't return an error if no config file exists.
		cfg, didLoadConfig, err := config.Load(nil)
		if err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}
		if didLoadConfig {
			logrus.Debug("loaded configuration")
		} else {
			logrus.Debug("no configuration found")
		}
		rootCfg = cfg

		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), rootCfg)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(
		&rootFlags.Debug, "debug", false,
		"enable verbose debug logging",
	)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Ctrl-C in a prompt is a normal way to leave the program.
		if errors.Is(err, promptkit.ErrAborted) {
			fmt.Println("Cancelled.")
			os.Exit(0)
		}

		var exitSilently ui.ErrExitSilently
		if errors.As(err, &exitSilently) {
			os.Exit(exitSilently.ExitCode)
		}

		// In debug mode, show more detailed information about the error
		// (including the stack trace if available).
		if rootFlags.Debug {
			stackTrace := fmt.Sprintf("%+v", err)
			_, _ = fmt.Fprintf(os.Stderr, "error: %s\n%s\n", err, stringutils.Indent(stackTrace, "\t"))
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "error: %s\n", err)
		}

		os.Exit(1)
	}
}
