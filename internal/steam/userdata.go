package steam

import (
	"path/filepath"
	"sort"
	"strconv"

	"github.com/asteroid-belt/gametracker/internal/log"
	"github.com/asteroid-belt/gametracker/internal/models"
	"github.com/asteroid-belt/gametracker/internal/vdf"
)

// Playtime is what localconfig.vdf records for one app.
type Playtime struct {
	Minutes    int
	LastPlayed int64 // unix seconds, 0 when unknown
}

// LocalStats is everything the local install knows about one game.
type LocalStats struct {
	AppID        string
	Name         string
	Playtime     Playtime
	Achievements models.Achievements
}

// Playtime reads playtime and last-played time for appID.
func (l *Library) Playtime(appID string) Playtime {
	return playtimeFrom(l.localApps().Map(appID))
}

// Stats gathers name, playtime and achievements for appID. Missing data
// resolves to a placeholder name and zero counts.
func (l *Library) Stats(appID string) LocalStats {
	name, ok := l.GameName(appID)
	if !ok {
		name = models.PlaceholderName(appID)
	}
	return LocalStats{
		AppID:        appID,
		Name:         name,
		Playtime:     l.Playtime(appID),
		Achievements: l.Achievements(appID),
	}
}

// Achievements counts unlocked achievements from the first stats file under
// userdata/<user>/<appid>/stats.
func (l *Library) Achievements(appID string) models.Achievements {
	user := l.UserID()
	if user == "" {
		return models.Achievements{}
	}

	files, _ := filepath.Glob(filepath.Join(l.root, "userdata", user, appID, "stats", "*.vdf"))
	if len(files) == 0 {
		return models.Achievements{}
	}
	sort.Strings(files)

	doc, ok := readText(files[0])
	if !ok {
		return models.Achievements{}
	}

	achievements := doc.Path("stats", "achievements")
	a := models.Achievements{Total: len(achievements)}
	for k := range achievements {
		if v, ok := achievements.Map(k).String("achieved"); ok && v == "1" {
			a.Unlocked++
		}
	}
	return a
}

// localApps returns the per-app section of the current user's
// localconfig.vdf.
func (l *Library) localApps() vdf.Map {
	user := l.UserID()
	if user == "" {
		return nil
	}
	doc, ok := readText(filepath.Join(l.root, "userdata", user, "localconfig.vdf"))
	if !ok {
		log.Debugf("steam: localconfig.vdf not found for user %s", user)
		return nil
	}
	return doc.Path("UserLocalConfigStore", "Software", "Valve", "Steam", "Apps")
}

// playtimeFrom prefers the Playtime field (minutes) and falls back to
// TotalPlayTime (seconds).
func playtimeFrom(app vdf.Map) Playtime {
	var p Playtime
	if app == nil {
		return p
	}
	if v, ok := app.String("Playtime"); ok {
		p.Minutes = atoi(v)
	}
	if p.Minutes == 0 {
		if v, ok := app.String("TotalPlayTime"); ok {
			p.Minutes = atoi(v) / 60
		}
	}
	if v, ok := app.String("LastPlayed"); ok {
		p.LastPlayed, _ = strconv.ParseInt(v, 10, 64)
	}
	return p
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
