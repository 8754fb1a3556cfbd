package productivity

import (
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	minScore = 1
	maxScore = 10

	// maximum bonus for a slot starting exactly at a window's midpoint
	centerBonus = 3

	memoSize = 512
)

// Scorer assigns desirability scores to candidate slots. It is a pure
// function of (slot start wall clock, weekday, activity type), which makes
// the internal memoization cache observationally transparent.
type Scorer struct {
	profiles map[string]Profile
	fallback Profile
	memo     *lru.Cache[string, Result]
}

// NewScorer builds a Scorer from the given profiles. Profiles are copied;
// the Scorer never mutates them.
func NewScorer(profiles []Profile) *Scorer {
	byType := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		byType[normalize(p.Type)] = p
	}

	memo, _ := lru.New[string, Result](memoSize)

	return &Scorer{
		profiles: byType,
		fallback: neutralProfile(),
		memo:     memo,
	}
}

// Score rates a slot start for the given activity type. Unknown activity
// types never fail: they get the neutral default score with a generic
// rationale.
func (s *Scorer) Score(start time.Time, activityType string) Result {
	profile, known := s.profiles[normalize(activityType)]
	if !known {
		return Result{
			Score:     s.fallback.BaseScore,
			Rationale: "No specific productivity profile for this activity - any reasonable working hour works",
		}
	}

	minute := start.Hour()*minutesPerHour + start.Minute()
	weekday := start.Weekday()

	key := fmt.Sprintf("%s|%d|%d", profile.Type, weekday, minute)
	if cached, ok := s.memo.Get(key); ok {
		return cached
	}

	score := profile.BaseScore
	rationale := profile.OffRationale

	if w, ok := findWindow(profile.Windows, minute); ok {
		score += centeringBonus(w, minute)
		rationale = w.Rationale
	} else {
		score -= 2
	}

	if weekday >= time.Monday && weekday <= time.Friday {
		score++
	}

	res := Result{Score: clamp(score), Rationale: rationale}
	s.memo.Add(key, res)
	return res
}

// Windows returns the preferred windows for an activity type, falling back
// to the neutral profile's windows for unknown types. Used by the optimal
// time search to bound candidate generation.
func (s *Scorer) Windows(activityType string) []Window {
	if p, ok := s.profiles[normalize(activityType)]; ok {
		return p.Windows
	}
	return s.fallback.Windows
}

func findWindow(windows []Window, minute int) (Window, bool) {
	for _, w := range windows {
		if minute >= w.StartMinute && minute < w.EndMinute {
			return w, true
		}
	}
	return Window{}, false
}

// centeringBonus rewards slots starting near the window midpoint: full bonus
// at the center, tapering to zero at the edges. Integer math keeps the
// result exactly reproducible.
func centeringBonus(w Window, minute int) int {
	length := w.EndMinute - w.StartMinute
	if length <= 0 {
		return 0
	}
	mid := w.StartMinute + length/2
	dist := minute - mid
	if dist < 0 {
		dist = -dist
	}
	return centerBonus - (2*centerBonus*dist)/length
}

func clamp(score int) int {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

func normalize(activityType string) string {
	return strings.ToLower(strings.TrimSpace(activityType))
}
