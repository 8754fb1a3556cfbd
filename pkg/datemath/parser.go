package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser resolves preferred-date strings (absolute "2025-10-21" or relative
// "today", "tomorrow", "in 3 days", "next monday") to the start of that day
// in a fixed location.
type Parser struct {
	location *time.Location
}

// NewParser creates a date parser anchored to the given location. Deployments
// run with a single fixed offset, e.g. time.FixedZone("+07:00", 7*3600).
func NewParser(location *time.Location) (*Parser, error) {
	if location == nil {
		return nil, fmt.Errorf("location is required")
	}
	return &Parser{location: location}, nil
}

// Parse resolves a date string to the start of the named day. The baseTime
// is the reference point for relative forms (usually time.Now()).
// Unrecognized input is an error, never silently coerced to today.
func (p *Parser) Parse(date string, baseTime time.Time) (time.Time, error) {
	date = strings.ToLower(strings.TrimSpace(date))
	if date == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}

	if d, err := time.ParseInLocation("2006-01-02", date, p.location); err == nil {
		return d, nil
	}

	switch date {
	case "today":
		return p.startOfDay(baseTime), nil
	case "tomorrow":
		return p.startOfDay(baseTime.AddDate(0, 0, 1)), nil
	}

	if strings.HasPrefix(date, "in ") {
		return p.parseInDuration(date, baseTime)
	}

	if strings.HasPrefix(date, "next ") {
		return p.parseNextWeekday(date, baseTime)
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q: use YYYY-MM-DD or a relative form", date)
}

var inDurationRe = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)

// parseInDuration handles patterns like "in 3 days", "in 2 weeks", "in 1 month".
func (p *Parser) parseInDuration(date string, baseTime time.Time) (time.Time, error) {
	matches := inDurationRe.FindStringSubmatch(date)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid duration format: %q", date)
	}

	amount, _ := strconv.Atoi(matches[1])

	switch {
	case strings.HasPrefix(matches[2], "day"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(matches[2], "week"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount*7)), nil
	default:
		return p.startOfDay(baseTime.AddDate(0, amount, 0)), nil
	}
}

// parseNextWeekday handles patterns like "next monday", "next friday".
func (p *Parser) parseNextWeekday(date string, baseTime time.Time) (time.Time, error) {
	weekdays := map[string]time.Weekday{
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
		"sunday":    time.Sunday,
	}

	dayName := strings.TrimPrefix(date, "next ")
	targetWeekday, ok := weekdays[dayName]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown weekday: %q", dayName)
	}

	daysUntil := int(targetWeekday - baseTime.In(p.location).Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}

	return p.startOfDay(baseTime.AddDate(0, 0, daysUntil)), nil
}

// startOfDay returns midnight at the start of the given day in the parser's location.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns the exclusive end (next midnight) of the day containing t.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.AddDate(0, 0, 1)
}
