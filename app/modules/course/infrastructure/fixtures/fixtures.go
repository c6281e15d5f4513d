// Package coursefixtures provides an in-memory course data provider loaded from YAML.
package coursefixtures

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	coursedomain "github.com/Black-And-White-Club/golf-stats/app/modules/course/domain"
	coursedb "github.com/Black-And-White-Club/golf-stats/app/modules/course/infrastructure/repositories"
	"github.com/uptrace/bun"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML document layout.
type Fixture struct {
	Courses    []coursedomain.Course       `yaml:"courses"`
	Holes      []coursedomain.HoleRecord   `yaml:"holes"`
	Ratings    []coursedomain.CourseRating `yaml:"ratings"`
	ComboHoles []coursedomain.ComboHole    `yaml:"combo_holes"`
}

// Load reads a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read course fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal course fixture: %w", err)
	}
	return &f, nil
}

// Provider serves course data from memory. The db argument of every method is ignored.
type Provider struct {
	mu      sync.RWMutex
	courses map[string]coursedomain.Course
	holes   []coursedomain.HoleRecord
	ratings []coursedomain.CourseRating
	combos  map[string][]coursedomain.ComboHole
}

var _ coursedb.Repository = (*Provider)(nil)

// NewProvider builds a provider holding the fixture's data.
func NewProvider(f *Fixture) *Provider {
	p := &Provider{
		courses: map[string]coursedomain.Course{},
		combos:  map[string][]coursedomain.ComboHole{},
	}
	if f == nil {
		return p
	}
	ctx := context.Background()
	for _, c := range f.Courses {
		_ = p.UpsertCourse(ctx, nil, c)
	}
	for _, h := range f.Holes {
		_ = p.UpsertHole(ctx, nil, h)
	}
	for _, r := range f.Ratings {
		_ = p.SaveCourseRating(ctx, nil, r)
	}
	for _, c := range f.ComboHoles {
		p.combos[c.ComboID] = append(p.combos[c.ComboID], c)
	}
	return p
}

// LoadProvider reads path and builds a provider from it.
func LoadProvider(path string) (*Provider, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewProvider(f), nil
}

func (p *Provider) GetCourse(_ context.Context, _ bun.IDB, courseID string) (*coursedomain.Course, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c, ok := p.courses[courseID]
	if !ok {
		return nil, coursedb.ErrNotFound
	}
	return &c, nil
}

func (p *Provider) ListCourses(_ context.Context, _ bun.IDB) ([]coursedomain.Course, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sortedCourses(func(coursedomain.Course) bool { return true }, 0), nil
}

func (p *Provider) SearchCourses(_ context.Context, _ bun.IDB, query string, limit int) ([]coursedomain.Course, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sortedCourses(func(c coursedomain.Course) bool {
		return strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.City), q)
	}, limit), nil
}

func (p *Provider) sortedCourses(keep func(coursedomain.Course) bool, limit int) []coursedomain.Course {
	out := []coursedomain.Course{}
	for _, c := range p.courses {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// courseMatch ranks a stored course id against the course being looked up:
// 2 for the exact loop id, 1 for a course-name match no other course owns, 0
// otherwise. Callers hold p.mu.
func (p *Provider) courseMatch(storedID, exact, courseName string) int {
	if storedID == exact {
		return 2
	}
	stem := coursedomain.CourseNameStem(courseName)
	if stem == "" || !strings.Contains(strings.ToLower(storedID), stem) {
		return 0
	}
	names := make([]string, 0, len(p.courses))
	for _, c := range p.courses {
		names = append(names, c.Name)
	}
	if coursedomain.OwnedByOtherCourse(storedID, courseName, names) {
		return 0
	}
	return 1
}

func (p *Provider) GetHole(_ context.Context, _ bun.IDB, key coursedomain.HoleKey) (*coursedomain.HoleRecord, error) {
	loopID := coursedomain.LoopKey(key.LoopID)
	exact := coursedomain.HoleCourseID(key.CourseName, loopID)

	p.mu.RLock()
	defer p.mu.RUnlock()

	var loose *coursedomain.HoleRecord
	for i := range p.holes {
		h := p.holes[i]
		if h.LoopID != loopID || h.HoleNumber != key.HoleNumber {
			continue
		}
		switch p.courseMatch(h.CourseID, exact, key.CourseName) {
		case 2:
			return &h, nil
		case 1:
			if loose == nil {
				loose = &h
			}
		}
	}
	if loose == nil {
		return nil, coursedb.ErrNotFound
	}
	return loose, nil
}

func (p *Provider) ListLoopHoles(_ context.Context, _ bun.IDB, courseName, loopID string) ([]coursedomain.HoleRecord, error) {
	loopID = coursedomain.LoopKey(loopID)
	exact := coursedomain.HoleCourseID(courseName, loopID)

	p.mu.RLock()
	defer p.mu.RUnlock()

	var exactHoles, looseHoles []coursedomain.HoleRecord
	for _, h := range p.holes {
		if h.LoopID != loopID {
			continue
		}
		switch p.courseMatch(h.CourseID, exact, courseName) {
		case 2:
			exactHoles = append(exactHoles, h)
		case 1:
			looseHoles = append(looseHoles, h)
		}
	}

	picked := exactHoles
	if len(picked) == 0 {
		picked = looseHoles
	}
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].HoleNumber < picked[j].HoleNumber })

	out := []coursedomain.HoleRecord{}
	for _, h := range picked {
		if n := len(out); n > 0 && out[n-1].HoleNumber == h.HoleNumber {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (p *Provider) GetCourseRating(_ context.Context, _ bun.IDB, key coursedomain.RatingKey) (*coursedomain.CourseRating, error) {
	tee := strings.ToLower(key.TeeColor)
	loopID := coursedomain.LoopKey(key.LoopID)
	exact := coursedomain.HoleCourseID(key.CourseName, loopID)

	p.mu.RLock()
	defer p.mu.RUnlock()

	var loose *coursedomain.CourseRating
	for i := range p.ratings {
		r := p.ratings[i]
		if r.Gender != key.Gender || strings.ToLower(r.TeeColor) != tee {
			continue
		}
		if key.ComboID != "" {
			if r.ComboID == key.ComboID {
				return &r, nil
			}
			continue
		}
		if r.ComboID != "" || coursedomain.LoopKey(r.LoopID) != loopID {
			continue
		}
		switch p.courseMatch(r.CourseID, exact, key.CourseName) {
		case 2:
			return &r, nil
		case 1:
			if loose == nil {
				loose = &r
			}
		}
	}
	if loose == nil {
		return nil, coursedb.ErrNotFound
	}
	return loose, nil
}

func (p *Provider) GetComboStrokeIndex(_ context.Context, _ bun.IDB, comboID string) ([]coursedomain.ComboHole, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := append([]coursedomain.ComboHole{}, p.combos[comboID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].HoleNumber < out[j].HoleNumber })
	return out, nil
}

func (p *Provider) UpsertCourse(_ context.Context, _ bun.IDB, course coursedomain.Course) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.courses[course.ID] = course
	return nil
}

func (p *Provider) UpsertHole(_ context.Context, _ bun.IDB, hole coursedomain.HoleRecord) error {
	hole.LoopID = coursedomain.LoopKey(hole.LoopID)

	p.mu.Lock()
	defer p.mu.Unlock()
	for i, h := range p.holes {
		if h.CourseID == hole.CourseID && h.LoopID == hole.LoopID && h.HoleNumber == hole.HoleNumber {
			p.holes[i] = hole
			return nil
		}
	}
	p.holes = append(p.holes, hole)
	return nil
}

func (p *Provider) SaveCourseRating(_ context.Context, _ bun.IDB, rating coursedomain.CourseRating) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ratings = append(p.ratings, rating)
	return nil
}

func (p *Provider) ReplaceComboStrokeIndex(_ context.Context, _ bun.IDB, comboID string, holes []coursedomain.ComboHole) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]coursedomain.ComboHole, 0, len(holes))
	for _, h := range holes {
		h.ComboID = comboID
		out = append(out, h)
	}
	p.combos[comboID] = out
	return nil
}

// Seed copies every fixture row into repo, for loading fixtures into Postgres.
func Seed(ctx context.Context, repo coursedb.Repository, db bun.IDB, f *Fixture) error {
	for _, c := range f.Courses {
		if err := repo.UpsertCourse(ctx, db, c); err != nil {
			return err
		}
	}
	for _, h := range f.Holes {
		if err := repo.UpsertHole(ctx, db, h); err != nil {
			return err
		}
	}
	for _, r := range f.Ratings {
		if err := repo.SaveCourseRating(ctx, db, r); err != nil {
			return err
		}
	}

	byCombo := map[string][]coursedomain.ComboHole{}
	for _, c := range f.ComboHoles {
		byCombo[c.ComboID] = append(byCombo[c.ComboID], c)
	}
	for id, holes := range byCombo {
		if err := repo.ReplaceComboStrokeIndex(ctx, db, id, holes); err != nil {
			return err
		}
	}
	return nil
}
