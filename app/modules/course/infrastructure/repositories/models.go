package coursedb

import (
	"strings"
	"time"

	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
	"github.com/uptrace/bun"
)

// Course is a row of golf_courses.
type Course struct {
	bun.BaseModel `bun:"table:golf_courses,alias:gc"`

	ID        string              `bun:"id,pk"`
	Name      string              `bun:"name,notnull"`
	City      string              `bun:"city"`
	Latitude  float64             `bun:"latitude"`
	Longitude float64             `bun:"longitude"`
	Loops     []coursedomain.Loop `bun:"loops,type:jsonb"`
	TeeColors []string            `bun:"tee_colors,type:jsonb"`
	CreatedAt time.Time           `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time           `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Hole is a row of golf_holes. Its course_id is the loop-specific id built by
// coursedomain.HoleCourseID; latitude/longitude are the green centre.
type Hole struct {
	bun.BaseModel `bun:"table:golf_holes,alias:gh"`

	ID                    int64                 `bun:"id,pk,autoincrement"`
	CourseID              string                `bun:"course_id,notnull"`
	LoopID                string                `bun:"loop_id,notnull"`
	HoleNumber            int                   `bun:"hole_number,notnull"`
	Par                   int                   `bun:"par"`
	StrokeIndexMen        int                   `bun:"stroke_index_men"`
	StrokeIndexLadies     int                   `bun:"stroke_index_ladies"`
	Distances             map[string]int        `bun:"distances,type:jsonb"`
	Hazards               []coursedomain.Hazard `bun:"hazards,type:jsonb"`
	Latitude              *float64              `bun:"latitude"`
	Longitude             *float64              `bun:"longitude"`
	GreenFrontLat         *float64              `bun:"green_front_lat"`
	GreenFrontLng         *float64              `bun:"green_front_lng"`
	GreenBackLat          *float64              `bun:"green_back_lat"`
	GreenBackLng          *float64              `bun:"green_back_lng"`
	GreenLeftLat          *float64              `bun:"green_left_lat"`
	GreenLeftLng          *float64              `bun:"green_left_lng"`
	GreenRightLat         *float64              `bun:"green_right_lat"`
	GreenRightLng         *float64              `bun:"green_right_lng"`
	PhotoURL              *string               `bun:"photo_url"`
	HoleStrategy          *string               `bun:"hole_strategy"`
	StrategyIsAIGenerated bool                  `bun:"strategy_is_ai_generated,notnull,default:false"`
}

// CourseRating is a row of course_ratings. ComboID is NULL for single-loop ratings.
type CourseRating struct {
	bun.BaseModel `bun:"table:course_ratings,alias:cr"`

	ID           int64   `bun:"id,pk,autoincrement"`
	CourseID     string  `bun:"course_id,notnull"`
	LoopID       *string `bun:"loop_id"`
	ComboID      *string `bun:"combo_id"`
	Gender       string  `bun:"gender,notnull"`
	TeeColor     string  `bun:"tee_color,notnull"`
	CourseRating float64 `bun:"course_rating,notnull"`
	SlopeRating  int     `bun:"slope_rating,notnull"`
	Par          int     `bun:"par,notnull"`
	Holes        int     `bun:"holes,notnull"`
}

// ComboStrokeIndex is a row of combo_stroke_index.
type ComboStrokeIndex struct {
	bun.BaseModel `bun:"table:combo_stroke_index,alias:csi"`

	ID                int64  `bun:"id,pk,autoincrement"`
	ComboID           string `bun:"combo_id,notnull"`
	HoleNumber        int    `bun:"hole_number,notnull"`
	StrokeIndexMen    int    `bun:"stroke_index_men"`
	StrokeIndexLadies int    `bun:"stroke_index_ladies"`
	SourceLoop        string `bun:"source_loop"`
}

func point(lat, lng *float64) *coursedomain.Coordinate {
	if lat == nil || lng == nil {
		return nil
	}
	return &coursedomain.Coordinate{Lat: *lat, Lng: *lng}
}

func splitCoordinate(c *coursedomain.Coordinate) (*float64, *float64) {
	if c == nil {
		return nil, nil
	}
	lat, lng := c.Lat, c.Lng
	return &lat, &lng
}

// ToDomain converts the row.
func (c *Course) ToDomain() coursedomain.Course {
	return coursedomain.Course{
		ID:        c.ID,
		Name:      c.Name,
		City:      c.City,
		Location:  coursedomain.Coordinate{Lat: c.Latitude, Lng: c.Longitude},
		Loops:     c.Loops,
		TeeColors: c.TeeColors,
	}
}

// CourseFromDomain builds a row from a domain course.
func CourseFromDomain(c coursedomain.Course) *Course {
	return &Course{
		ID:        c.ID,
		Name:      c.Name,
		City:      c.City,
		Latitude:  c.Location.Lat,
		Longitude: c.Location.Lng,
		Loops:     c.Loops,
		TeeColors: c.TeeColors,
	}
}

// ToDomain converts the row.
func (h *Hole) ToDomain() coursedomain.HoleRecord {
	return coursedomain.HoleRecord{
		CourseID:          h.CourseID,
		LoopID:            h.LoopID,
		HoleNumber:        h.HoleNumber,
		Par:               h.Par,
		StrokeIndexMen:    h.StrokeIndexMen,
		StrokeIndexLadies: h.StrokeIndexLadies,
		Distances:         h.Distances,
		Hazards:           h.Hazards,
		Green: coursedomain.Green{
			Center: point(h.Latitude, h.Longitude),
			Front:  point(h.GreenFrontLat, h.GreenFrontLng),
			Back:   point(h.GreenBackLat, h.GreenBackLng),
			Left:   point(h.GreenLeftLat, h.GreenLeftLng),
			Right:  point(h.GreenRightLat, h.GreenRightLng),
		},
		PhotoURL:              h.PhotoURL,
		Strategy:              h.HoleStrategy,
		StrategyIsAIGenerated: h.StrategyIsAIGenerated,
	}
}

// HoleFromDomain builds a row from a domain hole.
func HoleFromDomain(r coursedomain.HoleRecord) *Hole {
	h := &Hole{
		CourseID:              r.CourseID,
		LoopID:                coursedomain.LoopKey(r.LoopID),
		HoleNumber:            r.HoleNumber,
		Par:                   r.Par,
		StrokeIndexMen:        r.StrokeIndexMen,
		StrokeIndexLadies:     r.StrokeIndexLadies,
		Distances:             r.Distances,
		Hazards:               r.Hazards,
		PhotoURL:              r.PhotoURL,
		HoleStrategy:          r.Strategy,
		StrategyIsAIGenerated: r.StrategyIsAIGenerated,
	}
	h.Latitude, h.Longitude = splitCoordinate(r.Green.Center)
	h.GreenFrontLat, h.GreenFrontLng = splitCoordinate(r.Green.Front)
	h.GreenBackLat, h.GreenBackLng = splitCoordinate(r.Green.Back)
	h.GreenLeftLat, h.GreenLeftLng = splitCoordinate(r.Green.Left)
	h.GreenRightLat, h.GreenRightLng = splitCoordinate(r.Green.Right)
	return h
}

// ToDomain converts the row.
func (r *CourseRating) ToDomain() coursedomain.CourseRating {
	out := coursedomain.CourseRating{
		CourseID:     r.CourseID,
		TeeColor:     r.TeeColor,
		Gender:       scoringdomain.ParseGender(r.Gender),
		CourseRating: r.CourseRating,
		SlopeRating:  r.SlopeRating,
		Par:          r.Par,
		Holes:        r.Holes,
	}
	if r.LoopID != nil {
		out.LoopID = *r.LoopID
	}
	if r.ComboID != nil {
		out.ComboID = *r.ComboID
	}
	return out
}

// RatingFromDomain builds a row from a domain rating.
func RatingFromDomain(r coursedomain.CourseRating) *CourseRating {
	row := &CourseRating{
		CourseID:     r.CourseID,
		Gender:       string(r.Gender),
		TeeColor:     strings.ToLower(r.TeeColor),
		CourseRating: r.CourseRating,
		SlopeRating:  r.SlopeRating,
		Par:          r.Par,
		Holes:        r.Holes,
	}
	if r.LoopID != "" {
		loop := coursedomain.LoopKey(r.LoopID)
		row.LoopID = &loop
	}
	if r.ComboID != "" {
		combo := r.ComboID
		row.ComboID = &combo
	}
	return row
}

// ToDomain converts the row.
func (c *ComboStrokeIndex) ToDomain() coursedomain.ComboHole {
	return coursedomain.ComboHole{
		ComboID:           c.ComboID,
		HoleNumber:        c.HoleNumber,
		SourceLoop:        c.SourceLoop,
		StrokeIndexMen:    c.StrokeIndexMen,
		StrokeIndexLadies: c.StrokeIndexLadies,
	}
}

// ComboFromDomain builds a row from a domain combo hole.
func ComboFromDomain(c coursedomain.ComboHole) *ComboStrokeIndex {
	return &ComboStrokeIndex{
		ComboID:           c.ComboID,
		HoleNumber:        c.HoleNumber,
		StrokeIndexMen:    c.StrokeIndexMen,
		StrokeIndexLadies: c.StrokeIndexLadies,
		SourceLoop:        c.SourceLoop,
	}
}
