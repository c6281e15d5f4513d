package coursedomain

import (
	"strings"

	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
)

// Coordinate is a WGS84 position.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Loop is a playable sequence of holes on a course. A full loop (IsFull) is a
// combination of two nine-hole loops and is named "<first> + <second>".
type Loop struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Holes   []int  `json:"holes" yaml:"holes"`
	IsFull  bool   `json:"is_full" yaml:"is_full"`
	ComboID string `json:"combo_id,omitempty" yaml:"combo_id"`
}

// IsCombo reports whether holes must be mapped back to sub-loops.
func (l Loop) IsCombo() bool { return l.IsFull }

// Key is the lookup key for hole rows of this loop.
func (l Loop) Key() string {
	if l.ID != "" {
		return strings.ToLower(l.ID)
	}
	return LoopKey(l.Name)
}

// FirstHole returns the first hole of the loop.
func (l Loop) FirstHole() (int, bool) {
	if len(l.Holes) == 0 {
		return 0, false
	}
	return l.Holes[0], true
}

// NextHole returns the hole after current in play order.
func (l Loop) NextHole(current int) (int, bool) {
	for i, h := range l.Holes {
		if h == current && i+1 < len(l.Holes) {
			return l.Holes[i+1], true
		}
	}
	return 0, false
}

// Course is a golf facility with one or more loops.
type Course struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	City      string     `json:"city" yaml:"city"`
	Location  Coordinate `json:"location" yaml:"location"`
	Loops     []Loop     `json:"loops" yaml:"loops"`
	TeeColors []string   `json:"tee_colors" yaml:"tee_colors"`
}

// Loop finds a loop by id or, failing that, by name.
func (c Course) Loop(idOrName string) (Loop, bool) {
	key := strings.ToLower(strings.TrimSpace(idOrName))
	for _, l := range c.Loops {
		if strings.ToLower(l.ID) == key {
			return l, true
		}
	}
	for _, l := range c.Loops {
		if strings.ToLower(l.Name) == key {
			return l, true
		}
	}
	return Loop{}, false
}

// Hazard is a feature of a hole worth knowing before the tee shot.
type Hazard struct {
	Type     string `json:"type" yaml:"type"`
	Name     string `json:"name,omitempty" yaml:"name"`
	Side     string `json:"side,omitempty" yaml:"side"`
	Distance int    `json:"distance,omitempty" yaml:"distance"`
}

// Green holds the green's centre and edge points. Any of them may be unknown.
type Green struct {
	Center *Coordinate `json:"center,omitempty" yaml:"center"`
	Front  *Coordinate `json:"front,omitempty" yaml:"front"`
	Back   *Coordinate `json:"back,omitempty" yaml:"back"`
	Left   *Coordinate `json:"left,omitempty" yaml:"left"`
	Right  *Coordinate `json:"right,omitempty" yaml:"right"`
}

// HoleRecord is a hole as stored by the data provider.
type HoleRecord struct {
	CourseID              string         `yaml:"course_id"`
	LoopID                string         `yaml:"loop_id"`
	HoleNumber            int            `yaml:"hole_number"`
	Par                   int            `yaml:"par"`
	StrokeIndexMen        int            `yaml:"stroke_index_men"`
	StrokeIndexLadies     int            `yaml:"stroke_index_ladies"`
	Distances             map[string]int `yaml:"distances"`
	Hazards               []Hazard       `yaml:"hazards"`
	Green                 Green          `yaml:"green"`
	PhotoURL              *string        `yaml:"photo_url"`
	Strategy              *string        `yaml:"strategy"`
	StrategyIsAIGenerated bool           `yaml:"strategy_is_ai_generated"`
}

// ComboHole maps a hole of a combination loop onto its source loop.
type ComboHole struct {
	ComboID           string `yaml:"combo_id"`
	HoleNumber        int    `yaml:"hole_number"`
	SourceLoop        string `yaml:"source_loop"`
	Par               int    `yaml:"par"`
	StrokeIndexMen    int    `yaml:"stroke_index_men"`
	StrokeIndexLadies int    `yaml:"stroke_index_ladies"`
}

// CourseRating is the rating row for a loop or combination.
type CourseRating struct {
	CourseID     string               `yaml:"course_id"`
	LoopID       string               `yaml:"loop_id"`
	ComboID      string               `yaml:"combo_id"`
	TeeColor     string               `yaml:"tee_color"`
	Gender       scoringdomain.Gender `yaml:"gender"`
	CourseRating float64              `yaml:"course_rating"`
	SlopeRating  int                  `yaml:"slope_rating"`
	Par          int                  `yaml:"par"`
	Holes        int                  `yaml:"holes"`
}

// Rating returns the subset the Stableford engine needs.
func (r CourseRating) Rating() scoringdomain.Rating {
	return scoringdomain.Rating{
		CourseRating: r.CourseRating,
		SlopeRating:  r.SlopeRating,
		Par:          r.Par,
		Holes:        r.Holes,
	}
}

// RatingKey selects a rating row. ComboID wins over CourseName and LoopID when set.
type RatingKey struct {
	CourseName string
	LoopID     string
	ComboID    string
	TeeColor   string
	Gender     scoringdomain.Gender
}

// HoleKey selects a stored hole.
type HoleKey struct {
	CourseName string
	LoopID     string
	HoleNumber int
}

// HoleInfo is a hole ready for play.
type HoleInfo struct {
	Number                int            `json:"number"`
	Par                   int            `json:"par"`
	TotalDistance         int            `json:"total_distance"`
	Distances             map[string]int `json:"distances"`
	Hazards               []Hazard       `json:"hazards"`
	PhotoURL              *string        `json:"photo_url"`
	Strategy              *string        `json:"strategy"`
	StrategyIsAIGenerated bool           `json:"strategy_is_ai_generated"`
	Green                 Green          `json:"green"`
	// Synthetic is set when the hole came from fallback data.
	Synthetic bool `json:"synthetic"`
}

// CourseSummary is a search or nearby-listing result.
type CourseSummary struct {
	Course
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// LoopKey normalises a loop name into the id used for hole rows.
func LoopKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
