// Package catalog holds the names and fixed values shared by the launcher.
package catalog

const (
	// AppName is the application data directory name
	AppName = "gamehub"

	// AppID is the fyne application identifier
	AppID = "com.github.chenwei791129.gamehub"

	// AllCategories is the category filter sentinel that disables category filtering
	AllCategories = "All"

	// DefaultCategory is the category preselected for newly added games
	DefaultCategory = "Action"

	// GamesFile is the library file name inside the data directory
	GamesFile = "games.json"

	// ConfigFile is the settings file name inside the data directory
	ConfigFile = "config.yaml"

	// IconCacheDir holds PNG files extracted from executables
	IconCacheDir = "Icons"

	// CoverDir holds user supplied cover art after resizing
	CoverDir = "Covers"

	// PlaceholderCover is the generated cover used when no icon could be extracted
	PlaceholderCover = "default_cover.png"

	// IconRequestSize is the edge length requested when extracting icons.
	// The OS may hand back smaller bitmaps.
	IconRequestSize = 256

	// CoverWidth and CoverHeight are the dimensions of imported cover art
	CoverWidth  = 600
	CoverHeight = 900
)

// Categories lists the genres a game can be tagged with, in display order.
var Categories = []string{
	"Action",
	"Adventure",
	"RPG",
	"Strategy",
	"Sports",
	"Simulation",
	"Puzzle",
}

// FilterChoices returns the category filter options, starting with AllCategories.
func FilterChoices() []string {
	return append([]string{AllCategories}, Categories...)
}

// IsCategory reports whether name is one of the known categories.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
