package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chenwei791129/gamehub/internal/config"
	"github.com/chenwei791129/gamehub/internal/library"
	"github.com/chenwei791129/gamehub/internal/process"
)

// addProcessCommands registers the commands that inspect running games
func addProcessCommands(root *cobra.Command) {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show which games are running",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}

	stopCmd := &cobra.Command{
		Use:   "stop <title>",
		Short: "Terminate every process of a game",
		Args:  cobra.ExactArgs(1),
		RunE:  runStop,
	}

	root.AddCommand(statusCmd, stopCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return err
	}
	games, err := library.Load(cfg.LibraryPath())
	if err != nil {
		return fmt.Errorf("failed to load library: %w", err)
	}

	rows := make([][]string, 0, len(games))
	for _, g := range library.Filter(games, "", "") {
		status, err := process.GameStatus(g.ExecutablePath)
		if errors.Is(err, process.ErrUnsupported) {
			return err
		}
		if err != nil {
			logger.Debug("Error checking game", zap.String("title", g.Title), zap.Error(err))
			continue
		}
		rows = append(rows, []string{g.Title, describeStatus(status)})
	}

	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No games found")
		return nil
	}
	printTable(cmd.OutOrStdout(), []string{"TITLE", "STATUS"}, rows)
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return err
	}
	games, err := library.Load(cfg.LibraryPath())
	if err != nil {
		return fmt.Errorf("failed to load library: %w", err)
	}

	store := library.NewStore(nil)
	store.Replace(games)
	g, err := findGame(store, args[0])
	if err != nil {
		return err
	}

	killed, err := process.StopGame(g.ExecutablePath)
	if err != nil {
		return err
	}
	if killed == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%q is not running\n", g.Title)
		return nil
	}

	logger.Info("Terminated game processes", zap.String("title", g.Title), zap.Int("count", killed))
	return nil
}

// describeStatus formats a running state the way the library window shows it
func describeStatus(status process.Status) string {
	if !status.Running {
		return "Not running"
	}
	return fmt.Sprintf("Running (%s, %d process(es))", status.Uptime.Truncate(time.Second), len(status.Processes))
}
