package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chenwei791129/gamehub/internal/config"
	"github.com/chenwei791129/gamehub/internal/icon"
	"github.com/chenwei791129/gamehub/internal/library"
	"github.com/chenwei791129/gamehub/pkg/catalog"
)

var (
	listCategory string
	listSearch   string

	addTitle    string
	addCategory string
	addCover    string

	removeYes bool

	editTitle    string
	editCategory string
	editExe      string
	editCover    string

	iconSource string
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// addLibraryCommands registers the commands that read or change the library
func addLibraryCommands(root *cobra.Command) {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List games sorted by title",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	listCmd.Flags().StringVarP(&listCategory, "category", "c", catalog.AllCategories, "Only show games in this category")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only show games whose title contains this text")

	addCmd := &cobra.Command{
		Use:   "add <executable>",
		Short: "Register an executable as a game",
		Args:  cobra.ExactArgs(1),
		RunE:  runAdd,
	}
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Title (defaults to the file name)")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category (defaults to the configured default)")
	addCmd.Flags().StringVar(&addCover, "cover", "", "Image to use as cover art instead of the executable's icon")

	removeCmd := &cobra.Command{
		Use:   "remove <title>",
		Short: "Remove a game from the library",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Remove without asking for confirmation")

	editCmd := &cobra.Command{
		Use:   "edit <title>",
		Short: "Change a game's title, category, executable or cover art",
		Args:  cobra.ExactArgs(1),
		RunE:  runEdit,
	}
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "New category")
	editCmd.Flags().StringVar(&editExe, "exe", "", "New executable; resets the title and extracts a new icon")
	editCmd.Flags().StringVar(&editCover, "cover", "", "Image to use as cover art")

	launchCmd := &cobra.Command{
		Use:   "launch <title>",
		Short: "Launch a game",
		Args:  cobra.ExactArgs(1),
		RunE:  runLaunch,
	}

	iconCmd := &cobra.Command{
		Use:   "icon <executable>",
		Short: "Extract the largest icon of an executable into the icon cache",
		Args:  cobra.ExactArgs(1),
		RunE:  runIcon,
	}
	iconCmd.Flags().StringVar(&iconSource, "source", "system", "Icon source: system or pe")

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "List the available categories",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range catalog.Categories {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
		},
	}

	root.AddCommand(listCmd, addCmd, removeCmd, editCmd, launchCmd, iconCmd, categoriesCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listCategory != "" && listCategory != catalog.AllCategories && !catalog.IsCategory(listCategory) {
		return fmt.Errorf("unknown category %q", listCategory)
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		return err
	}
	games, err := library.Load(cfg.LibraryPath())
	if err != nil {
		return fmt.Errorf("failed to load library: %w", err)
	}

	view := library.Filter(games, listCategory, listSearch)
	if len(view) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No games found")
		return nil
	}

	rows := make([][]string, 0, len(view))
	for _, g := range view {
		rows = append(rows, []string{g.Title, g.Category, g.ExecutablePath})
	}
	printTable(cmd.OutOrStdout(), []string{"TITLE", "CATEGORY", "EXECUTABLE"}, rows)
	return nil
}

func runAdd(cmd *cobra.Command, args []string) (err error) {
	s, err := openHub()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.close(); err == nil {
			err = closeErr
		}
	}()

	g, err := s.AddExecutable(args[0], addTitle, addCategory)
	if err != nil {
		return err
	}
	if addCover != "" {
		if err := s.SetCover(g, addCover); err != nil {
			return fmt.Errorf("added %q but kept the extracted cover: %w", g.Title, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", g.Title, g.Category)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) (err error) {
	s, err := openHub()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.close(); err == nil {
			err = closeErr
		}
	}()

	g, err := findGame(s.Store(), args[0])
	if err != nil {
		return err
	}
	if !removeYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Remove %q?", g.Title)) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
		return nil
	}
	if err := s.Remove(g); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", g.Title)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) (err error) {
	if editTitle == "" && editCategory == "" && editExe == "" && editCover == "" {
		return errors.New("nothing to change: pass --title, --category, --exe or --cover")
	}

	s, err := openHub()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.close(); err == nil {
			err = closeErr
		}
	}()

	g, err := findGame(s.Store(), args[0])
	if err != nil {
		return err
	}

	if editExe != "" {
		if err := s.Repoint(g, editExe); err != nil {
			return err
		}
	}
	if editTitle != "" || editCategory != "" {
		title, category := g.Title, g.Category
		if editTitle != "" {
			title = editTitle
		}
		if editCategory != "" {
			category = editCategory
		}
		if err := s.Edit(g, title, category); err != nil {
			return err
		}
	}
	if editCover != "" {
		if err := s.SetCover(g, editCover); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %q\n", g.Title)
	return nil
}

func runLaunch(cmd *cobra.Command, args []string) (err error) {
	s, err := openHub()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.close(); err == nil {
			err = closeErr
		}
	}()

	g, err := findGame(s.Store(), args[0])
	if err != nil {
		return err
	}
	return s.Launch(g)
}

func runIcon(cmd *cobra.Command, args []string) error {
	var source icon.Source
	switch strings.ToLower(iconSource) {
	case "system":
		source = icon.NewSystemSource()
	case "pe":
		source = icon.PESource{}
	default:
		return fmt.Errorf("unknown icon source %q", iconSource)
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		return err
	}

	extractor := icon.NewExtractor(source, cfg.IconCacheDir(), logger)
	path, ok := extractor.Extract(args[0])
	if !ok {
		return fmt.Errorf("no usable icon in %s", args[0])
	}

	logger.Debug("Extracted icon", zap.String("executable", args[0]), zap.String("icon", path))
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// confirm asks a yes/no question; anything but y or yes, including no input, is a no
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// findGame resolves a title to exactly one game
func findGame(store *library.Store, title string) (*library.Game, error) {
	matches := store.Find(title)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", library.ErrGameNotFound, title)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%d games are titled %q; rename one in the library window first", len(matches), title)
	}
}

// printTable renders rows with a bold header row
func printTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}
