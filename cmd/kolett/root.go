package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/kolett/kolett/cmd/kolett/commands"
	"github.com/kolett/kolett/cmd/kolett/opts"
	"github.com/kolett/kolett/pkg/config"
	"github.com/kolett/kolett/pkg/status"
)

const defaultSettingsFile = ".kolett.yaml"

var (
	// Flags
	settingsFile string
	debug        bool
)

// newRootOpts creates a new RootOpts with initialized dependencies
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	cfg, err := loadSettings(ctx)
	if err != nil {
		return nil, errors.Errorf("loading settings: %w", err)
	}

	return &opts.RootOpts{
		Config:     cfg,
		UserLogger: status.NewUserLogger(ctx),
	}, nil
}

// loadSettings loads the settings file. A missing file is only an error
// when the user pointed at one explicitly; the built-in defaults cover the
// common case.
func loadSettings(ctx context.Context) (*config.Config, error) {
	if settingsFile == defaultSettingsFile {
		if _, err := os.Stat(settingsFile); os.IsNotExist(err) {
			return config.Default(), nil
		}
	}
	return config.Load(ctx, settingsFile)
}

// setupLogging configures zerolog based on flags
func setupLogging() zerolog.Logger {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
	return log
}

func newRootCmd() *cobra.Command {
	shared := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:           "kolett",
		Short:         "Deliver a batch of files described by a declarative manifest",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log := setupLogging()
			ctx := log.WithContext(cmd.Context())
			cmd.SetContext(ctx)

			built, err := newRootOpts(ctx)
			if err != nil {
				return err
			}
			*shared = *built
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&settingsFile, "settings", "s", defaultSettingsFile, "settings file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(commands.NewDeliverCmd(shared))
	cmd.AddCommand(commands.NewValidateCmd(shared))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(FormatVersion())
		},
	}
}
