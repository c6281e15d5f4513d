package roundservice

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/Black-And-White-Club/golf-stats/app/shared/attr"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var compactTime = regexp.MustCompile(`\b(\d{1,2})(\d{2})(am|pm)\b`)

// TeeTimeParser turns free-text date and start time input into a tee time.
type TeeTimeParser struct {
	w      *when.Parser
	logger *slog.Logger
}

// NewTeeTimeParser creates a parser with the English and common rule sets.
func NewTeeTimeParser(logger *slog.Logger) *TeeTimeParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &TeeTimeParser{w: w, logger: logger}
}

// Parse resolves dateInput and timeInput against now. An ISO date
// (2006-01-02) and a 24-hour time (15:04) are read directly; anything else
// goes through natural language parsing ("today 9:30am", "tomorrow 2pm").
// Empty or unrecognised input keeps the corresponding part of now.
func (p *TeeTimeParser) Parse(dateInput, timeInput string, now time.Time) time.Time {
	dateInput = strings.TrimSpace(dateInput)
	timeInput = strings.TrimSpace(timeInput)
	base := now.Truncate(time.Minute)

	if d, err := time.ParseInLocation(dateLayout, dateInput, now.Location()); err == nil {
		base = time.Date(d.Year(), d.Month(), d.Day(), base.Hour(), base.Minute(), 0, 0, now.Location())
		dateInput = ""
	}
	if t, err := time.Parse(timeLayout, timeInput); err == nil {
		base = time.Date(base.Year(), base.Month(), base.Day(), t.Hour(), t.Minute(), 0, 0, base.Location())
		timeInput = ""
	}

	text := normalizeTeeTime(strings.TrimSpace(dateInput + " " + timeInput))
	if text == "" {
		return base
	}

	r, err := p.w.Parse(text, base)
	if err != nil || r == nil {
		p.logger.Warn("Could not parse tee time, using current time",
			attr.String("input", text),
			attr.Error(err),
		)
		return base
	}
	return r.Time.Truncate(time.Minute)
}

func normalizeTeeTime(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "today ", "today at ")
	s = strings.ReplaceAll(s, "tomorrow ", "tomorrow at ")
	s = strings.ReplaceAll(s, "at at ", "at ")
	return compactTime.ReplaceAllString(s, "$1:$2 $3")
}
