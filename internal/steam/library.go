// Package steam reads the local Steam install: library folders, app
// manifests, per-user playtime and achievements, and non-Steam shortcuts.
//
// Every accessor is tolerant of a missing or damaged install. Absent files
// resolve to zero values and are logged at debug level.
package steam

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/asteroid-belt/gametracker/internal/config"
	"github.com/asteroid-belt/gametracker/internal/log"
	"github.com/asteroid-belt/gametracker/internal/models"
	"github.com/asteroid-belt/gametracker/internal/vdf"
)

// DiscoverRoot returns the Steam root to use. A non-empty override wins;
// otherwise the first existing candidate under home is returned, or "".
func DiscoverRoot(override, home string) string {
	if override != "" {
		return override
	}
	for _, candidate := range config.SteamRootCandidates(home) {
		if isDir(candidate) {
			return candidate
		}
	}
	return ""
}

// Library is a read-only view of one Steam install.
type Library struct {
	root string

	userOnce sync.Once
	userID   string
}

// NewLibrary creates a Library rooted at root. An empty root yields a
// library with no games.
func NewLibrary(root string) *Library {
	return &Library{root: root}
}

// Root returns the Steam root directory.
func (l *Library) Root() string {
	return l.root
}

// UserID returns the numeric userdata directory that was modified most
// recently, or "" when there is none.
func (l *Library) UserID() string {
	l.userOnce.Do(func() {
		l.userID = l.findUserID()
	})
	return l.userID
}

func (l *Library) findUserID() string {
	if l.root == "" {
		return ""
	}
	entries, err := os.ReadDir(filepath.Join(l.root, "userdata"))
	if err != nil {
		log.Debugf("steam: no userdata directory: %v", err)
		return ""
	}

	var best string
	var bestMod int64
	for _, e := range entries {
		if !e.IsDir() || !isNumeric(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); best == "" || mod > bestMod {
			best, bestMod = e.Name(), mod
		}
	}
	return best
}

// LibraryFolders returns the Steam root followed by every additional
// library listed in libraryfolders.vdf that exists on disk.
func (l *Library) LibraryFolders() []string {
	if l.root == "" {
		return nil
	}
	folders := []string{l.root}

	doc, ok := readText(filepath.Join(l.root, "steamapps", "libraryfolders.vdf"))
	if !ok {
		return folders
	}

	entries := doc.Map("libraryfolders")
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path, ok := entries.Map(k).String("path")
		if !ok || path == "" || filepath.Clean(path) == filepath.Clean(l.root) {
			continue
		}
		if isDir(path) {
			folders = append(folders, path)
		}
	}
	return folders
}

// GameName returns the name for appID from its app manifest, or from
// shortcuts.vdf for non-Steam ids. ok is false when neither has it.
func (l *Library) GameName(appID string) (string, bool) {
	if models.IsNonSteamID(appID) {
		for _, g := range l.NonSteamGames() {
			if g.AppID == appID {
				return g.Name, true
			}
		}
		return "", false
	}

	for _, folder := range l.LibraryFolders() {
		doc, ok := readText(filepath.Join(folder, "steamapps", "appmanifest_"+appID+".acf"))
		if !ok {
			continue
		}
		if name, ok := doc.Map("AppState").String("name"); ok && name != "" {
			return name, true
		}
	}
	return "", false
}

// InstalledGames lists every app manifest across all library folders with
// its playtime.
func (l *Library) InstalledGames() []models.GameSummary {
	apps := l.localApps()
	seen := make(map[string]bool)
	var games []models.GameSummary

	for _, folder := range l.LibraryFolders() {
		matches, _ := filepath.Glob(filepath.Join(folder, "steamapps", "appmanifest_*.acf"))
		sort.Strings(matches)
		for _, path := range matches {
			appID := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(path), "appmanifest_"), ".acf")
			if appID == "" || seen[appID] {
				continue
			}
			doc, ok := readText(path)
			if !ok {
				continue
			}
			name, _ := doc.Map("AppState").String("name")
			if name == "" {
				name = models.PlaceholderName(appID)
			}
			seen[appID] = true
			games = append(games, models.GameSummary{
				AppID:           appID,
				Name:            name,
				PlaytimeMinutes: playtimeFrom(apps.Map(appID)).Minutes,
			})
		}
	}

	log.Debugf("steam: found %d installed games", len(games))
	return games
}

// NonSteamGames lists the current user's shortcuts. Playtime is not
// recorded for shortcuts and is always 0.
func (l *Library) NonSteamGames() []models.GameSummary {
	user := l.UserID()
	if user == "" {
		return nil
	}
	buf, err := os.ReadFile(filepath.Join(l.root, "userdata", user, "config", "shortcuts.vdf"))
	if err != nil {
		log.Debugf("steam: no shortcuts.vdf: %v", err)
		return nil
	}

	shortcuts := vdf.ParseShortcuts(buf)
	games := make([]models.GameSummary, 0, len(shortcuts))
	for _, s := range shortcuts {
		games = append(games, models.GameSummary{
			AppID:      strconv.FormatUint(uint64(s.AppID), 10),
			Name:       s.Name,
			IsExternal: true,
		})
	}
	return games
}

func readText(path string) (vdf.Map, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return vdf.Parse(string(data)), true
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
