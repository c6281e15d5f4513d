package coursedomain

import (
	"regexp"
	"sort"
	"strings"
)

const (
	// DefaultPar is used when a stored hole has no par.
	DefaultPar = 4
	// DefaultDistance is used when a stored hole has no usable tee distance.
	DefaultDistance = 300
	// HolesPerLoop is the length of a sub-loop inside a combination.
	HolesPerLoop = 9
)

// FallbackPars is the synthetic par sequence used when no hole data exists.
var FallbackPars = [HolesPerLoop]int{4, 3, 5, 4, 4, 3, 5, 4, 4}

var comboSeparator = regexp.MustCompile(`\s*[+&]\s*`)

// HoleSource identifies the stored hole that backs a hole of play.
type HoleSource struct {
	LoopID     string
	HoleNumber int
}

// SplitComboName splits "A + B" or "A & B" into its sub-loop names.
func SplitComboName(name string) []string {
	var parts []string
	for _, p := range comboSeparator.Split(strings.TrimSpace(name), -1) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// PhysicalHole maps a combination hole number onto its sub-loop hole number.
func PhysicalHole(holeNumber int) int {
	if holeNumber <= HolesPerLoop {
		return holeNumber
	}
	return holeNumber - HolesPerLoop
}

// ResolveHoleSource decides which stored hole backs holeNumber of loop.
// Regular loops map to themselves. Combination loops use the combo table when
// it names a source loop and otherwise split the loop name: holes 1..9 come from
// the first name, later holes from the second (or the first when there is none).
func ResolveHoleSource(loop Loop, combo []ComboHole, holeNumber int) HoleSource {
	if !loop.IsCombo() {
		return HoleSource{LoopID: loop.Key(), HoleNumber: holeNumber}
	}

	physical := PhysicalHole(holeNumber)
	for _, c := range combo {
		if c.HoleNumber == holeNumber && strings.TrimSpace(c.SourceLoop) != "" {
			return HoleSource{LoopID: LoopKey(c.SourceLoop), HoleNumber: physical}
		}
	}

	names := SplitComboName(loop.Name)
	if len(names) == 0 {
		return HoleSource{LoopID: loop.Key(), HoleNumber: physical}
	}
	name := names[0]
	if holeNumber > HolesPerLoop && len(names) > 1 {
		name = names[1]
	}
	return HoleSource{LoopID: LoopKey(name), HoleNumber: physical}
}

// FirstSubLoop returns the loop key that holds hole 1 of loop.
func FirstSubLoop(loop Loop) string {
	if !loop.IsCombo() {
		return loop.Key()
	}
	if names := SplitComboName(loop.Name); len(names) > 0 {
		return LoopKey(names[0])
	}
	return loop.Key()
}

// BuildHoleInfo turns a stored hole into play data for holeNumber.
// A nil record yields the synthetic fallback hole.
func BuildHoleInfo(holeNumber int, record *HoleRecord, teeColor string) HoleInfo {
	if record == nil {
		return FallbackHoleInfo(holeNumber)
	}

	par := record.Par
	if par <= 0 {
		par = DefaultPar
	}

	distances := make(map[string]int, len(record.Distances))
	for k, v := range record.Distances {
		distances[strings.ToLower(k)] = v
	}

	hazards := record.Hazards
	if hazards == nil {
		hazards = []Hazard{}
	}

	return HoleInfo{
		Number:                holeNumber,
		Par:                   par,
		TotalDistance:         TeeDistance(distances, teeColor),
		Distances:             distances,
		Hazards:               hazards,
		PhotoURL:              record.PhotoURL,
		Strategy:              record.Strategy,
		StrategyIsAIGenerated: record.StrategyIsAIGenerated,
		Green:                 record.Green,
	}
}

// TeeDistance picks the distance for teeColor, else the first positive distance
// in tee order, else DefaultDistance.
func TeeDistance(distances map[string]int, teeColor string) int {
	if d := distances[strings.ToLower(strings.TrimSpace(teeColor))]; d > 0 {
		return d
	}
	for _, tee := range orderedTees(distances) {
		if d := distances[tee]; d > 0 {
			return d
		}
	}
	return DefaultDistance
}

// FallbackHoleInfo is the synthetic hole used when no data is available.
func FallbackHoleInfo(holeNumber int) HoleInfo {
	idx := ((holeNumber-1)%HolesPerLoop + HolesPerLoop) % HolesPerLoop
	par := FallbackPars[idx]
	return HoleInfo{
		Number:        holeNumber,
		Par:           par,
		TotalDistance: FallbackDistance(par),
		Distances:     map[string]int{},
		Hazards:       []Hazard{},
		Synthetic:     true,
	}
}

// FallbackDistance is the synthetic length of a hole of the given par.
func FallbackDistance(par int) int {
	switch par {
	case 3:
		return 150
	case 5:
		return 480
	default:
		return 350
	}
}

func orderedTees(distances map[string]int) []string {
	tees := make([]string, 0, len(distances))
	for k := range distances {
		tees = append(tees, k)
	}
	sort.Slice(tees, func(i, j int) bool { return teeLess(tees[i], tees[j]) })
	return tees
}

var whitespace = regexp.MustCompile(`\s+`)

// HoleCourseID is the course id under which a loop's hole rows are stored:
// the lower-cased course name with whitespace turned into dashes, then the loop key.
func HoleCourseID(courseName, loopID string) string {
	return CourseSlug(courseName) + "-" + LoopKey(loopID)
}

// CourseSlug is the course part of HoleCourseID.
func CourseSlug(courseName string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(courseName)), "-")
}

// OwnedByOtherCourse reports whether storedID carries the slug of one of
// courseNames other than courseName. Loose course-name matching skips such
// rows so courses sharing a first word never read each other's data.
func OwnedByOtherCourse(storedID, courseName string, courseNames []string) bool {
	stored := strings.ToLower(storedID)
	own := CourseSlug(courseName)
	if own != "" && strings.HasPrefix(stored, own) {
		return false
	}
	for _, name := range courseNames {
		slug := CourseSlug(name)
		if slug == "" || slug == own {
			continue
		}
		if stored == slug || strings.HasPrefix(stored, slug+"-") {
			return true
		}
	}
	return false
}

// CourseNameStem is the first word of the course name, used for loose matching.
func CourseNameStem(courseName string) string {
	fields := strings.Fields(strings.ToLower(courseName))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
