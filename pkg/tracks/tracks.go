package tracks

import (
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownTrack = errors.New("unknown grand prix")

// Track is a Grand Prix of the upcoming season. Circuit is the short circuit
// name OpenF1 uses to identify its sessions.
type Track struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Circuit string `json:"circuit"`
}

// String renders the event with its circuit, e.g. "Japan (Suzuka)".
func (t Track) String() string {
	return t.Name + " (" + t.Circuit + ")"
}

type Tracks []Track

// Saudi Arabia is not part of the list.
var season = Tracks{
	newTrack("Australia", "Melbourne"),
	newTrack("China", "Shanghai"),
	newTrack("Japan", "Suzuka"),
	newTrack("Bahrain", "Sakhir"),
	newTrack("Miami", "Miami"),
	newTrack("Emilia Romagna", "Imola"),
	newTrack("Monaco", "Monte Carlo"),
	newTrack("Spain", "Catalunya"),
	newTrack("Canada", "Montreal"),
	newTrack("Austria", "Spielberg"),
	newTrack("United Kingdom", "Silverstone"),
	newTrack("Belgium", "Spa-Francorchamps"),
	newTrack("Hungary", "Hungaroring"),
	newTrack("Netherlands", "Zandvoort"),
	newTrack("Italy", "Monza"),
	newTrack("Azerbaijan", "Baku"),
	newTrack("Singapore", "Singapore"),
	newTrack("United States", "Austin"),
	newTrack("Mexico", "Mexico City"),
	newTrack("Brazil", "Interlagos"),
	newTrack("Las Vegas", "Las Vegas"),
	newTrack("Qatar", "Lusail"),
	newTrack("Abu Dhabi", "Yas Marina Circuit"),
}

func newTrack(name, circuit string) Track {
	return Track{
		ID:      toID(name),
		Name:    name,
		Circuit: circuit,
	}
}

// All returns the season calendar in race order.
func All() Tracks {
	ts := make(Tracks, len(season))
	copy(ts, season)
	return ts
}

func (ts Tracks) Len() int {
	return len(ts)
}

func (ts Tracks) Names() []string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name
	}
	return names
}

func (ts Tracks) GetTrackByID(id string) (Track, bool) {
	for _, t := range ts {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

// GetTrackByName matches the trimmed input exactly against the calendar.
func GetTrackByName(name string) (Track, error) {
	name = strings.TrimSpace(name)
	for _, t := range season {
		if t.Name == name {
			return t, nil
		}
	}
	return Track{}, errors.Wrapf(ErrUnknownTrack, "%q", name)
}

// GetTrack accepts either a calendar name or its id, e.g. "emilia_romagna".
func GetTrack(nameOrID string) (Track, error) {
	if t, found := season.GetTrackByID(strings.TrimSpace(nameOrID)); found {
		return t, nil
	}
	return GetTrackByName(nameOrID)
}

func toID(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}
