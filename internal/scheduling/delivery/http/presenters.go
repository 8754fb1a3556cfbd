package http

import (
	"time"

	"github.com/lyanh238/VNASelf/internal/model"
	"github.com/lyanh238/VNASelf/internal/scheduling"
)

// --- Request DTOs ---
//
// All timestamps must be RFC3339 with an explicit UTC offset. Offset-less
// strings are rejected rather than guessed at; a wrong implicit timezone
// would silently book the wrong hour.

type timeRangeReq struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end"   binding:"required"`
}

func (r timeRangeReq) toRange(prefix string) (model.TimeRange, error) {
	start, err := parseOffsetTime(prefix+".start", r.Start)
	if err != nil {
		return model.TimeRange{}, err
	}
	end, err := parseOffsetTime(prefix+".end", r.End)
	if err != nil {
		return model.TimeRange{}, err
	}
	return model.TimeRange{Start: start, End: end}, nil
}

// parseOffsetTime parses an RFC3339 timestamp. RFC3339 requires the offset,
// so "2025-10-21T14:00:00" fails here by design of the format.
func parseOffsetTime(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, scheduling.NewValidationError(field, "is required")
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, scheduling.NewValidationError(field, "must be an RFC3339 timestamp with an explicit UTC offset")
	}
	return t, nil
}

// ---

type checkConflictsReq struct {
	Start          string `json:"start" binding:"required"`
	End            string `json:"end"   binding:"required"`
	ExcludeEventID string `json:"exclude_event_id"`
}

func (r checkConflictsReq) toInput() (scheduling.CheckConflictsInput, error) {
	rng, err := timeRangeReq{Start: r.Start, End: r.End}.toRange("range")
	if err != nil {
		return scheduling.CheckConflictsInput{}, err
	}
	return scheduling.CheckConflictsInput{
		Range:          rng,
		ExcludeEventID: r.ExcludeEventID,
	}, nil
}

// ---

type createEventReq struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=4000"`
	Location    string `json:"location"    binding:"max=1000"`
	Start       string `json:"start" binding:"required"`
	End         string `json:"end"   binding:"required"`
	ForceCreate bool   `json:"force_create"`
}

func (r createEventReq) toInput() (scheduling.CreateEventInput, error) {
	rng, err := timeRangeReq{Start: r.Start, End: r.End}.toRange("range")
	if err != nil {
		return scheduling.CreateEventInput{}, err
	}
	return scheduling.CreateEventInput{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Range:       rng,
		ForceCreate: r.ForceCreate,
	}, nil
}

// ---

type suggestAlternativesReq struct {
	Original        timeRangeReq `json:"original" binding:"required"`
	DurationMinutes int          `json:"duration_minutes" binding:"omitempty,min=1,max=1440"`
	HorizonDays     int          `json:"horizon_days"     binding:"omitempty,min=1,max=60"`
	MaxResults      int          `json:"max_results"      binding:"omitempty,min=1,max=50"`
}

func (r suggestAlternativesReq) toInput() (scheduling.SuggestAlternativesInput, error) {
	rng, err := r.Original.toRange("original")
	if err != nil {
		return scheduling.SuggestAlternativesInput{}, err
	}
	return scheduling.SuggestAlternativesInput{
		Original:        rng,
		DurationMinutes: r.DurationMinutes,
		HorizonDays:     r.HorizonDays,
		MaxResults:      r.MaxResults,
	}, nil
}

// ---

type suggestOptimalReq struct {
	ActivityType    string `json:"activity_type" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=1440"`
	PreferredDate   string `json:"preferred_date"`
	HorizonDays     int    `json:"horizon_days"    binding:"omitempty,min=1,max=60"`
	MaxSuggestions  int    `json:"max_suggestions" binding:"omitempty,min=1,max=50"`
}

func (r suggestOptimalReq) toInput() scheduling.SuggestOptimalInput {
	return scheduling.SuggestOptimalInput{
		ActivityType:    r.ActivityType,
		DurationMinutes: r.DurationMinutes,
		PreferredDate:   r.PreferredDate,
		HorizonDays:     r.HorizonDays,
		MaxSuggestions:  r.MaxSuggestions,
	}
}

// ---

type relocateNewReq struct {
	Pending  createEventReq `json:"pending"   binding:"required"`
	NewRange timeRangeReq   `json:"new_range" binding:"required"`
}

func (r relocateNewReq) toInput() (scheduling.RelocateNewInput, error) {
	pending, err := r.Pending.toInput()
	if err != nil {
		return scheduling.RelocateNewInput{}, err
	}
	rng, err := r.NewRange.toRange("new_range")
	if err != nil {
		return scheduling.RelocateNewInput{}, err
	}
	return scheduling.RelocateNewInput{Pending: pending, NewRange: rng}, nil
}

// ---

type relocateExistingReq struct {
	Pending  createEventReq `json:"pending"   binding:"required"`
	EventID  string         `json:"event_id"  binding:"required"`
	NewRange timeRangeReq   `json:"new_range" binding:"required"`
}

func (r relocateExistingReq) toInput() (scheduling.RelocateExistingInput, error) {
	pending, err := r.Pending.toInput()
	if err != nil {
		return scheduling.RelocateExistingInput{}, err
	}
	rng, err := r.NewRange.toRange("new_range")
	if err != nil {
		return scheduling.RelocateExistingInput{}, err
	}
	return scheduling.RelocateExistingInput{Pending: pending, EventID: r.EventID, NewRange: rng}, nil
}

// ---

type deleteExistingReq struct {
	Pending createEventReq `json:"pending"  binding:"required"`
	EventID string         `json:"event_id" binding:"required"`
}

func (r deleteExistingReq) toInput() (scheduling.DeleteExistingInput, error) {
	pending, err := r.Pending.toInput()
	if err != nil {
		return scheduling.DeleteExistingInput{}, err
	}
	return scheduling.DeleteExistingInput{Pending: pending, EventID: r.EventID}, nil
}

// ---

type listEventsReq struct {
	Date  string `form:"date" binding:"required"`
	Query string `form:"q"`
}

type availabilityReq struct {
	Date  string `form:"date" binding:"required"`
	Start string `form:"start"`
	End   string `form:"end"`
}

// --- Response DTOs ---

type timeRangeResp struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func newTimeRangeResp(r model.TimeRange) timeRangeResp {
	return timeRangeResp{Start: r.Start, End: r.End}
}

type eventResp struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	HTMLLink    string    `json:"html_link,omitempty"`
}

func newEventResp(ev model.Event) eventResp {
	return eventResp{
		ID:          ev.ID,
		Title:       ev.Title,
		Start:       ev.Range.Start,
		End:         ev.Range.End,
		Description: ev.Description,
		Location:    ev.Location,
		HTMLLink:    ev.HTMLLink,
	}
}

func newEventResps(events []model.Event) []eventResp {
	out := make([]eventResp, 0, len(events))
	for _, ev := range events {
		out = append(out, newEventResp(ev))
	}
	return out
}

type conflictReportResp struct {
	Requested    timeRangeResp `json:"requested"`
	HasConflicts bool          `json:"has_conflicts"`
	Conflicts    []eventResp   `json:"conflicts"`
}

func newConflictReportResp(r model.ConflictReport) conflictReportResp {
	return conflictReportResp{
		Requested:    newTimeRangeResp(r.Requested),
		HasConflicts: r.HasConflicts(),
		Conflicts:    newEventResps(r.Conflicts),
	}
}

type createEventResp struct {
	State   string              `json:"state"`
	Created *eventResp          `json:"created,omitempty"`
	Report  *conflictReportResp `json:"report,omitempty"`
}

func (h *handler) newCreateEventResp(out scheduling.CreateEventOutput) createEventResp {
	resp := createEventResp{State: string(out.State)}
	if out.Created != nil {
		ev := newEventResp(*out.Created)
		resp.Created = &ev
	}
	if out.Report != nil {
		report := newConflictReportResp(*out.Report)
		resp.Report = &report
	}
	return resp
}

type suggestAlternativesResp struct {
	Slots           []timeRangeResp `json:"slots"`
	DurationMinutes int             `json:"duration_minutes"`
	HorizonDays     int             `json:"horizon_days"`
}

func (h *handler) newSuggestAlternativesResp(out scheduling.SuggestAlternativesOutput) suggestAlternativesResp {
	slots := make([]timeRangeResp, 0, len(out.Slots))
	for _, s := range out.Slots {
		slots = append(slots, newTimeRangeResp(s))
	}
	return suggestAlternativesResp{
		Slots:           slots,
		DurationMinutes: out.DurationMinutes,
		HorizonDays:     out.HorizonDays,
	}
}

type slotCandidateResp struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Score     int       `json:"score"`
	Rationale string    `json:"rationale"`
}

type suggestOptimalResp struct {
	Candidates      []slotCandidateResp `json:"candidates"`
	DurationMinutes int                 `json:"duration_minutes"`
	HorizonDays     int                 `json:"horizon_days"`
}

func (h *handler) newSuggestOptimalResp(out scheduling.SuggestOptimalOutput) suggestOptimalResp {
	candidates := make([]slotCandidateResp, 0, len(out.Candidates))
	for _, c := range out.Candidates {
		candidates = append(candidates, slotCandidateResp{
			Start:     c.Range.Start,
			End:       c.Range.End,
			Score:     c.Score,
			Rationale: c.Rationale,
		})
	}
	return suggestOptimalResp{
		Candidates:      candidates,
		DurationMinutes: out.DurationMinutes,
		HorizonDays:     out.HorizonDays,
	}
}

type resolveResp struct {
	State          string              `json:"state"`
	Report         *conflictReportResp `json:"report,omitempty"`
	Moved          *eventResp          `json:"moved,omitempty"`
	DeletedEventID string              `json:"deleted_event_id,omitempty"`
	Created        *eventResp          `json:"created,omitempty"`
}

func (h *handler) newResolveResp(out scheduling.ResolveOutput) resolveResp {
	resp := resolveResp{
		State:          string(out.State),
		DeletedEventID: out.DeletedEventID,
	}
	if out.Report != nil {
		report := newConflictReportResp(*out.Report)
		resp.Report = &report
	}
	if out.Moved != nil {
		ev := newEventResp(*out.Moved)
		resp.Moved = &ev
	}
	if out.Created != nil {
		ev := newEventResp(*out.Created)
		resp.Created = &ev
	}
	return resp
}

type listEventsResp struct {
	Date   string      `json:"date"`
	Events []eventResp `json:"events"`
}

func (h *handler) newListEventsResp(out scheduling.ListEventsOutput) listEventsResp {
	return listEventsResp{
		Date:   out.Date,
		Events: newEventResps(out.Events),
	}
}

type busyPeriodResp struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Title string    `json:"title"`
}

type availabilityResp struct {
	Date string           `json:"date"`
	Busy []busyPeriodResp `json:"busy"`
	Free []timeRangeResp  `json:"free"`
}

func (h *handler) newAvailabilityResp(out scheduling.AvailabilityOutput) availabilityResp {
	busy := make([]busyPeriodResp, 0, len(out.Busy))
	for _, b := range out.Busy {
		busy = append(busy, busyPeriodResp{Start: b.Range.Start, End: b.Range.End, Title: b.Title})
	}
	free := make([]timeRangeResp, 0, len(out.Free))
	for _, f := range out.Free {
		free = append(free, newTimeRangeResp(f))
	}
	return availabilityResp{Date: out.Date, Busy: busy, Free: free}
}
