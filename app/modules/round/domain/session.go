package rounddomain

import (
	"slices"
	"strconv"
	"strings"
	"time"

	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	scoringdomain "github.com/Black-And-White-Club/golf-stats/app/modules/scoring/domain"
	"github.com/google/uuid"
)

// State is the lifecycle position of a session.
type State string

const (
	StateNoRound         State = "no_round"
	StateSelectingCourse State = "selecting_course"
	StateSelectingLoop   State = "selecting_loop"
	StateSelectingTee    State = "selecting_tee"
	StateConfiguring     State = "configuring"
	StateInProgress      State = "in_progress"
	StateCompleted       State = "completed"
)

// MaxPenaltyStrokes is the most strokes a single penalty entry can carry.
const MaxPenaltyStrokes = 2

// Settings are the per-round choices made before teeing off.
type Settings struct {
	PlayerID      string
	Date          string
	StartTime     string
	Temperature   *float64
	Gender        scoringdomain.Gender
	HandicapIndex *float64
}

// Scoring is the reference data Stableford needs. Either field may be empty,
// which disables Stableford without affecting play.
type Scoring struct {
	Rating        *scoringdomain.Rating
	StrokeIndexes []scoringdomain.StrokeIndexEntry
}

// HoleRequest identifies one hole-data fetch. Only the most recently issued
// request is accepted by ApplyHoleInfo.
type HoleRequest struct {
	Token      uint64 `json:"token"`
	HoleNumber int    `json:"hole_number"`
}

// HoleOutcome is what FinishHole produced.
type HoleOutcome struct {
	Result    HoleResult
	Next      *HoleRequest
	Completed bool
}

// View is the read model of a session.
type View struct {
	RoundID           uuid.UUID              `json:"round_id"`
	State             State                  `json:"state"`
	CurrentHole       int                    `json:"current_hole"`
	HoleInfo          *coursedomain.HoleInfo `json:"hole_info"`
	Loading           bool                   `json:"loading"`
	PendingHole       int                    `json:"pending_hole,omitempty"`
	RemainingDistance int                    `json:"remaining_distance"`
	SuggestedDistance int                    `json:"suggested_distance"`
	Shots             []Shot                 `json:"shots"`
	PlayingHandicap   *int                   `json:"playing_handicap,omitempty"`
	Round             Round                  `json:"round"`
}

// Session owns one round from course selection to completion. It is not safe
// for concurrent use; callers serialise access.
type Session struct {
	state         State
	course        coursedomain.Course
	round         Round
	strokeIndexes []scoringdomain.StrokeIndexEntry

	currentHole int
	holeInfo    *coursedomain.HoleInfo
	shots       []Shot
	remaining   int

	pending   *HoleRequest
	lastToken uint64

	now func() time.Time
}

// NewSession creates an idle session. A nil now uses time.Now.
func NewSession(id uuid.UUID, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		state: StateNoRound,
		round: Round{ID: id, Holes: []HoleResult{}},
		now:   now,
	}
}

// ID is the round id.
func (s *Session) ID() uuid.UUID { return s.round.ID }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// CurrentHole is the hole being played, or the hole just finished while the
// next one loads.
func (s *Session) CurrentHole() int { return s.currentHole }

// RemainingDistance is the distance left to the green on the current hole.
func (s *Session) RemainingDistance() int { return s.remaining }

// SuggestedDistance is the default played distance for the next shot.
func (s *Session) SuggestedDistance() int { return s.remaining }

// HoleInfo returns the loaded hole, or nil while none is loaded.
func (s *Session) HoleInfo() *coursedomain.HoleInfo {
	if s.holeInfo == nil {
		return nil
	}
	info := *s.holeInfo
	return &info
}

// Shots returns a copy of the current ledger.
func (s *Session) Shots() []Shot { return append([]Shot{}, s.shots...) }

// Round returns a copy of the round record.
func (s *Session) Round() Round {
	r := s.round
	r.Holes = append([]HoleResult{}, s.round.Holes...)
	return r
}

// Course is the selected course.
func (s *Session) Course() coursedomain.Course { return s.course }

// Pending returns the outstanding hole request, if any.
func (s *Session) Pending() (HoleRequest, bool) {
	if s.pending == nil {
		return HoleRequest{}, false
	}
	return *s.pending, true
}

// View snapshots the read model.
func (s *Session) View() View {
	v := View{
		RoundID:           s.round.ID,
		State:             s.state,
		CurrentHole:       s.currentHole,
		HoleInfo:          s.HoleInfo(),
		Loading:           s.pending != nil,
		RemainingDistance: s.remaining,
		SuggestedDistance: s.SuggestedDistance(),
		Shots:             s.Shots(),
		Round:             s.Round(),
	}
	if s.pending != nil {
		v.PendingHole = s.pending.HoleNumber
	}
	if ph, ok := scoringdomain.PlayingHandicap(s.round.HandicapIndex, s.round.Rating); ok {
		v.PlayingHandicap = &ph
	}
	return v
}

// CompletedView is the read model of a round that is no longer live, such as
// one served from history after it was saved.
func CompletedView(round Round) View {
	v := View{
		RoundID: round.ID,
		State:   StateCompleted,
		Shots:   []Shot{},
		Round:   round,
	}
	if n := len(round.Holes); n > 0 {
		v.CurrentHole = round.Holes[n-1].HoleNumber
	}
	if ph, ok := scoringdomain.PlayingHandicap(round.HandicapIndex, round.Rating); ok {
		v.PlayingHandicap = &ph
	}
	return v
}

// BeginCourseSelection opens course selection from an idle or finished session.
func (s *Session) BeginCourseSelection() error {
	if s.state != StateNoRound && s.state != StateCompleted {
		return ErrInvalidTransition
	}
	s.clear()
	s.state = StateSelectingCourse
	return nil
}

// SelectCourse picks the course. Earlier selection steps may be revisited.
func (s *Session) SelectCourse(course coursedomain.Course) error {
	switch s.state {
	case StateSelectingCourse, StateSelectingLoop, StateSelectingTee, StateConfiguring:
	default:
		return ErrInvalidTransition
	}
	s.course = course
	s.round.CourseID = course.ID
	s.round.CourseName = course.Name
	s.round.Loop = coursedomain.Loop{}
	s.round.TeeColor = ""
	s.state = StateSelectingLoop
	return nil
}

// SelectLoop picks a loop of the selected course by id or name.
func (s *Session) SelectLoop(idOrName string) error {
	switch s.state {
	case StateSelectingLoop, StateSelectingTee, StateConfiguring:
	default:
		return ErrInvalidTransition
	}
	loop, ok := s.course.Loop(idOrName)
	if !ok {
		return ErrLoopNotFound
	}
	if len(loop.Holes) == 0 {
		return ErrNoLoopData
	}
	s.round.Loop = loop
	s.round.TeeColor = ""
	s.state = StateSelectingTee
	return nil
}

// SelectTee picks the tee colour.
func (s *Session) SelectTee(teeColor string) error {
	switch s.state {
	case StateSelectingTee, StateConfiguring:
	default:
		return ErrInvalidTransition
	}
	s.round.TeeColor = strings.TrimSpace(teeColor)
	s.state = StateConfiguring
	return nil
}

// Configure records the pre-round settings.
func (s *Session) Configure(settings Settings) error {
	if s.state != StateConfiguring {
		return ErrInvalidTransition
	}
	s.round.PlayerID = settings.PlayerID
	s.round.Date = settings.Date
	s.round.StartTime = settings.StartTime
	s.round.Temperature = settings.Temperature
	s.round.Gender = settings.Gender
	if s.round.Gender == "" {
		s.round.Gender = scoringdomain.GenderMen
	}
	s.round.HandicapIndex = settings.HandicapIndex
	return nil
}

// Start tees off on the loop's first hole. The returned request must be
// answered with ApplyHoleInfo before shots can be recorded.
func (s *Session) Start(scoring Scoring) (HoleRequest, error) {
	if s.state != StateConfiguring {
		return HoleRequest{}, ErrInvalidTransition
	}
	first, ok := s.round.Loop.FirstHole()
	if !ok {
		return HoleRequest{}, ErrNoLoopData
	}

	s.round.Rating = scoring.Rating
	s.round.Holes = []HoleResult{}
	s.round.CompletedAt = nil
	s.strokeIndexes = append([]scoringdomain.StrokeIndexEntry{}, scoring.StrokeIndexes...)

	s.currentHole = first
	s.resetHole()
	s.state = StateInProgress
	return s.issue(first), nil
}

// StartRound runs the whole selection flow and tees off.
func (s *Session) StartRound(course coursedomain.Course, loopID, teeColor string, settings Settings, scoring Scoring) (HoleRequest, error) {
	if s.state == StateInProgress {
		return HoleRequest{}, ErrInvalidTransition
	}
	s.Reset()
	steps := []func() error{
		s.BeginCourseSelection,
		func() error { return s.SelectCourse(course) },
		func() error { return s.SelectLoop(loopID) },
		func() error { return s.SelectTee(teeColor) },
		func() error { return s.Configure(settings) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			s.Reset()
			return HoleRequest{}, err
		}
	}
	req, err := s.Start(scoring)
	if err != nil {
		s.Reset()
		return HoleRequest{}, err
	}
	return req, nil
}

// RequestHole reissues the fetch for the hole being loaded, or the current
// hole when none is loading. Earlier requests become stale.
func (s *Session) RequestHole() (HoleRequest, error) {
	if err := s.checkActive(); err != nil {
		return HoleRequest{}, err
	}
	target := s.currentHole
	if s.pending != nil {
		target = s.pending.HoleNumber
	}
	return s.issue(target), nil
}

// ApplyHoleInfo installs fetched hole data. Responses to anything but the
// latest request are rejected with ErrStaleHoleData.
func (s *Session) ApplyHoleInfo(req HoleRequest, info coursedomain.HoleInfo) error {
	if s.state != StateInProgress || s.pending == nil || *s.pending != req {
		return ErrStaleHoleData
	}
	info.Number = req.HoleNumber
	if info.Par <= 0 {
		info.Par = coursedomain.DefaultPar
	}
	if info.TotalDistance < 0 {
		info.TotalDistance = 0
	}

	s.pending = nil
	if s.holeInfo != nil && s.currentHole == req.HoleNumber {
		// Refreshed data for the hole in play keeps its ledger.
		s.holeInfo = &info
		s.recomputeRemaining()
		return nil
	}

	s.currentHole = req.HoleNumber
	s.resetHole()
	s.holeInfo = &info
	s.remaining = info.TotalDistance
	return nil
}

// AddShot appends a shot to the ledger. manual is free-text input: putts for
// the putter, penalty strokes for a penalty and the played distance otherwise.
// Unusable manual input falls back to 1 putt, 1 penalty stroke or the
// suggested distance respectively.
func (s *Session) AddShot(club, manual, lie string) (Shot, error) {
	if err := s.checkPlaying(); err != nil {
		return Shot{}, err
	}
	club = strings.TrimSpace(club)
	if club == "" {
		return Shot{}, ErrInvalidClub
	}

	shot := Shot{
		Number:          len(s.shots) + 1,
		Club:            club,
		DistanceToGreen: s.remaining,
	}
	n, hasManual := ParseManualInput(manual)

	switch {
	case IsPutter(club):
		shot.Club = ClubPutter
		shot.Putts = 1
		if hasManual && n >= 1 {
			shot.Putts = n
		}
		shot.Lie = LieGreen
		if l, ok := ParseLie(lie); ok {
			shot.Lie = l
		}
	case IsPenalty(club):
		shot.Club = ClubPenalty
		shot.PenaltyStrokes = 1
		if hasManual {
			shot.PenaltyStrokes = clamp(n, 1, MaxPenaltyStrokes)
		}
		shot.Lie = LiePenalty
	default:
		l, ok := ParseLie(lie)
		if !ok {
			return Shot{}, ErrInvalidLie
		}
		shot.Lie = l
		shot.DistancePlayed = s.SuggestedDistance()
		if hasManual && n >= 0 {
			shot.DistancePlayed = n
		}
		s.remaining = max(0, s.remaining-shot.DistancePlayed)
	}

	s.shots = append(s.shots, shot)
	return shot, nil
}

// AddPenalty records a penalty entry of 1 or 2 strokes; other values clamp.
func (s *Session) AddPenalty(strokes int) (Shot, error) {
	return s.AddShot(ClubPenalty, strconv.Itoa(clamp(strokes, 1, MaxPenaltyStrokes)), string(LiePenalty))
}

// UndoLastShot removes the last shot and restores the distance before it.
// It reports false when the ledger was empty.
func (s *Session) UndoLastShot() (bool, error) {
	if err := s.checkPlaying(); err != nil {
		return false, err
	}
	if len(s.shots) == 0 {
		return false, nil
	}
	last := s.shots[len(s.shots)-1]
	s.shots = s.shots[:len(s.shots)-1]
	s.remaining = last.DistanceToGreen
	return true, nil
}

// DeleteShot removes shot number n, renumbers the ledger from 1 and
// recomputes the distances from the hole length.
func (s *Session) DeleteShot(n int) error {
	if err := s.checkPlaying(); err != nil {
		return err
	}
	idx := slices.IndexFunc(s.shots, func(sh Shot) bool { return sh.Number == n })
	if idx < 0 {
		return ErrShotNotFound
	}

	shots := make([]Shot, 0, len(s.shots)-1)
	for i, sh := range s.shots {
		if i == idx {
			continue
		}
		sh.Number = len(shots) + 1
		shots = append(shots, sh)
	}
	s.shots = shots
	s.recomputeRemaining()
	return nil
}

// recomputeRemaining walks the ledger from the hole length, restoring each
// shot's distance to the green and the remaining distance.
func (s *Session) recomputeRemaining() {
	remaining := s.holeInfo.TotalDistance
	for i := range s.shots {
		s.shots[i].DistanceToGreen = remaining
		remaining = max(0, remaining-s.shots[i].DistancePlayed)
	}
	s.remaining = remaining
}

// FinishHole records the hole and moves on. A nil putts or score uses the
// ledger's automatic count; the score must end up positive. The next hole is
// not current until its data arrives through ApplyHoleInfo.
func (s *Session) FinishHole(putts, score *int) (HoleOutcome, error) {
	if err := s.checkPlaying(); err != nil {
		return HoleOutcome{}, err
	}
	if len(s.round.Loop.Holes) == 0 {
		return HoleOutcome{}, ErrNoLoopData
	}

	tally := TallyShots(s.shots)
	if putts != nil {
		if *putts < 0 {
			return HoleOutcome{}, ErrInvalidScore
		}
		tally.Putts = *putts
	}
	gross := tally.Score()
	if score != nil {
		gross = *score
	}
	if gross < 1 {
		return HoleOutcome{}, ErrInvalidScore
	}

	par := s.holeInfo.Par
	si := scoringdomain.StrokeIndex(s.strokeIndexes, s.currentHole, s.round.Gender)
	result := HoleResult{
		HoleNumber:  s.currentHole,
		Par:         par,
		StrokeIndex: si,
		Shots:       s.Shots(),
		Putts:       tally.Putts,
		Penalties:   tally.Penalties,
		Score:       gross,
		TotalShots:  tally.StrokesPlayed + tally.Putts,
	}
	if pts, ok := scoringdomain.StablefordForHole(gross, par, si, s.round.Rating, s.round.HandicapIndex); ok {
		result.StablefordPoints = &pts
	}
	s.round.Holes = append(s.round.Holes, result)
	s.resetHole()

	outcome := HoleOutcome{Result: result}
	if next, ok := s.round.Loop.NextHole(result.HoleNumber); ok {
		req := s.issue(next)
		outcome.Next = &req
		return outcome, nil
	}

	completedAt := s.now().UTC()
	s.round.CompletedAt = &completedAt
	s.state = StateCompleted
	s.pending = nil
	outcome.Completed = true
	return outcome, nil
}

// Reset returns to NoRound and drops all round, hole and shot state.
func (s *Session) Reset() {
	s.clear()
	s.state = StateNoRound
}

func (s *Session) clear() {
	s.course = coursedomain.Course{}
	s.round = Round{ID: s.round.ID, Holes: []HoleResult{}}
	s.strokeIndexes = nil
	s.currentHole = 0
	s.resetHole()
	s.pending = nil
}

func (s *Session) resetHole() {
	s.holeInfo = nil
	s.shots = []Shot{}
	s.remaining = 0
}

func (s *Session) issue(hole int) HoleRequest {
	s.lastToken++
	req := HoleRequest{Token: s.lastToken, HoleNumber: hole}
	s.pending = &req
	return req
}

func (s *Session) checkActive() error {
	switch s.state {
	case StateInProgress:
		return nil
	case StateCompleted:
		return ErrRoundCompleted
	default:
		return ErrNoActiveRound
	}
}

func (s *Session) checkPlaying() error {
	if err := s.checkActive(); err != nil {
		return err
	}
	if s.holeInfo == nil || s.pending != nil {
		return ErrHoleNotLoaded
	}
	return nil
}
