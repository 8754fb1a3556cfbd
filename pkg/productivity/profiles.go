package productivity

// Activity-type tags recognized out of the box. Keyword-to-tag normalization
// (including non-English keywords) is the caller's concern.
const (
	ActivityMeeting  = "meeting"
	ActivityFocus    = "focus-work"
	ActivityCreative = "creative-work"
	ActivityAdmin    = "admin"
)

const minutesPerHour = 60

func hm(hour, min int) int { return hour*minutesPerHour + min }

// DefaultProfiles returns the built-in activity profiles. Window choices
// follow common productivity research: meetings mid-morning or early
// afternoon, deep work during the morning cognitive peak, creative work in
// the late-morning and mid-afternoon, admin at the edges of the day.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Type:      ActivityMeeting,
			BaseScore: 6,
			Windows: []Window{
				{StartMinute: hm(10, 0), EndMinute: hm(11, 30), Rationale: "Peak meeting time - everyone is alert and focused"},
				{StartMinute: hm(13, 30), EndMinute: hm(15, 0), Rationale: "Good afternoon meeting time - after lunch energy boost"},
			},
			OffRationale: "Decent time for meetings, though not optimal",
		},
		{
			Type:      ActivityFocus,
			BaseScore: 7,
			Windows: []Window{
				{StartMinute: hm(9, 0), EndMinute: hm(11, 0), Rationale: "Peak cognitive performance - ideal for deep work"},
				{StartMinute: hm(14, 0), EndMinute: hm(16, 0), Rationale: "Good focus time - afternoon productivity peak"},
			},
			OffRationale: "Decent time for focused work",
		},
		{
			Type:      ActivityCreative,
			BaseScore: 6,
			Windows: []Window{
				{StartMinute: hm(10, 0), EndMinute: hm(12, 0), Rationale: "Creative peak time - when imagination is most active"},
				{StartMinute: hm(15, 0), EndMinute: hm(17, 0), Rationale: "Good creative time - afternoon inspiration"},
			},
			OffRationale: "Decent time for creative work",
		},
		{
			Type:      ActivityAdmin,
			BaseScore: 5,
			Windows: []Window{
				{StartMinute: hm(9, 0), EndMinute: hm(10, 0), Rationale: "Fresh start of the day - good for clearing routine work"},
				{StartMinute: hm(16, 0), EndMinute: hm(17, 0), Rationale: "End-of-day wind-down - good for administrative tasks"},
			},
			OffRationale: "Decent time for administrative tasks",
		},
	}
}

// neutralProfile is the fallback for unknown activity types. Scoring with it
// never fails; it yields the neutral score with a generic rationale.
func neutralProfile() Profile {
	return Profile{
		Type:      "default",
		BaseScore: 5,
		Windows: []Window{
			{StartMinute: hm(10, 0), EndMinute: hm(11, 30), Rationale: "Peak productivity hours - optimal for most tasks"},
			{StartMinute: hm(13, 30), EndMinute: hm(15, 0), Rationale: "Good productivity time - afternoon energy"},
		},
		OffRationale: "Decent time for work tasks",
	}
}
