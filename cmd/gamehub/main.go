package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chenwei791129/gamehub/internal/config"
	"github.com/chenwei791129/gamehub/internal/gui"
	"github.com/chenwei791129/gamehub/internal/hub"
	"github.com/chenwei791129/gamehub/internal/icon"
)

var (
	verbose bool
	dataDir string
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gamehub",
	Short: "Game library launcher",
	Long: `Gamehub keeps a library of game executables, extracts their icons as cover art
and launches them. Without a subcommand it opens the library window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger based on verbose flag
		var err error
		if verbose {
			// Development mode with console encoder for better readability
			config := zap.NewDevelopmentConfig()
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
			logger, err = config.Build()
		} else {
			// Production mode with custom config for cleaner output
			config := zap.NewProductionConfig()

			config.DisableCaller = true
			config.DisableStacktrace = true
			config.Encoding = "console"
			config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
			logger, err = config.Build()
		}
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runGUI,
}

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the library window",
	Args:  cobra.NoArgs,
	RunE:  runGUI,
}

func init() {
	// Disable Cobra's mousetrap feature on Windows
	// By default, Cobra shows a warning when launched from File Explorer instead of cmd.exe
	// Setting this to empty string allows the program to run normally from File Explorer
	// See: https://github.com/spf13/cobra/issues/844
	cobra.MousetrapHelpText = ""
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the library, icon cache and settings (default: the per-user application data directory, not the program directory)")

	rootCmd.AddCommand(guiCmd)
	addLibraryCommands(rootCmd)
	addProcessCommands(rootCmd)
}

// runGUI opens the desktop window and blocks until it is closed
func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return err
	}

	a, err := gui.NewApp(cfg, logger)
	if err != nil {
		return err
	}
	a.Run()
	return nil
}

// session is a hub opened by a CLI command
type session struct {
	*hub.Hub
	saveErr error
}

// openHub loads the settings and the library for a CLI command.
// The caller must close the session so pending changes reach disk.
func openHub() (*session, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}

	s := &session{}
	s.Hub, err = hub.New(cfg, icon.NewSystemSource(), logger, func(err error) {
		s.saveErr = err
	})
	if err != nil {
		return nil, err
	}
	if err := s.Load(); err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}
	return s, nil
}

// close writes pending changes and reports a failed save
func (s *session) close() error {
	s.Close()
	if s.saveErr != nil {
		return fmt.Errorf("failed to save library: %w", s.saveErr)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
