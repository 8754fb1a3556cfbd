package http

import (
	"github.com/gin-gonic/gin"

	"github.com/lyanh238/VNASelf/pkg/response"
)

// CheckConflicts godoc
// @Summary     Check a time range for conflicts
// @Description Returns the existing events that overlap the candidate range. Touching ranges do not conflict.
// @Tags        Scheduling
// @Accept      json
// @Produce     json
// @Param       body body checkConflictsReq true "Candidate range"
// @Success     200 {object} conflictReportResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "Calendar backend unavailable"
// @Router      /api/v1/schedule/conflicts/check [POST]
func (h *handler) CheckConflicts(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processCheckConflictsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	report, err := h.uc.CheckConflicts(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.CheckConflicts: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newConflictReportResp(report))
}

// CreateEvent godoc
// @Summary     Create an event with conflict checking
// @Description Creates the event if its slot is free. On conflict nothing is written; the response carries a conflict report and the caller picks a resolution.
// @Tags        Scheduling
// @Accept      json
// @Produce     json
// @Param       body body createEventReq true "Event to create"
// @Success     200 {object} createEventResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "Calendar backend unavailable"
// @Router      /api/v1/schedule/events [POST]
func (h *handler) CreateEvent(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processCreateEventReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.CreateWithConflictCheck(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.CreateWithConflictCheck: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newCreateEventResp(output))
}

// SuggestAlternatives godoc
// @Summary     Suggest alternative times
// @Description Finds open slots of the requested duration near the original range, earliest first.
// @Tags        Scheduling
// @Accept      json
// @Produce     json
// @Param       body body suggestAlternativesReq true "Original range and search bounds"
// @Success     200 {object} suggestAlternativesResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "Calendar backend unavailable"
// @Router      /api/v1/schedule/suggestions/alternatives [POST]
func (h *handler) SuggestAlternatives(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processSuggestAlternativesReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.SuggestAlternativeTimes(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.SuggestAlternativeTimes: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSuggestAlternativesResp(output))
}

// SuggestOptimal godoc
// @Summary     Suggest productivity-ranked times
// @Description Ranks open slots by productivity score for the activity type, best first.
// @Tags        Scheduling
// @Accept      json
// @Produce     json
// @Param       body body suggestOptimalReq true "Activity and search bounds"
// @Success     200 {object} suggestOptimalResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "Calendar backend unavailable"
// @Router      /api/v1/schedule/suggestions/optimal [POST]
func (h *handler) SuggestOptimal(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processSuggestOptimalReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.SuggestOptimalTime(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.SuggestOptimalTime: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSuggestOptimalResp(output))
}

// RelocateNew godoc
// @Summary     Resolve a conflict by relocating the new event
// @Description Retries the pending create at a new range. If the new range is also taken the response carries a fresh conflict report.
// @Tags        Scheduling
// @Accept      json
// @Produce     json
// @Param       body body relocateNewReq true "Pending event and new range"
// @Success     200 {object} resolveResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "Calendar backend unavailable"
// @Router      /api/v1/schedule/resolutions/relocate-new [POST]
func (h *handler) RelocateNew(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processRelocateNewReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ResolveByRelocatingNew(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.ResolveByRelocatingNew: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newResolveResp(output))
}

// RelocateExisting godoc
// @Summary     Resolve a conflict by moving the existing event
// @Description Moves the blocking event to a new range, then creates the pending event at its original range. A create failure after a successful move is reported as a partial resolution.
// @Tags        Scheduling
// @Accept      json
// @Produce     json
// @Param       body body relocateExistingReq true "Pending event, blocking event ID and new range"
// @Success     200 {object} resolveResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Event not found"
// @Failure     502 {object} response.Resp "Partial resolution"
// @Failure     503 {object} response.Resp "Calendar backend unavailable"
// @Router      /api/v1/schedule/resolutions/relocate-existing [POST]
func (h *handler) RelocateExisting(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processRelocateExistingReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ResolveByRelocatingExisting(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.ResolveByRelocatingExisting: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newResolveResp(output))
}

// DeleteExisting godoc
// @Summary     Resolve a conflict by deleting the existing event
// @Description Deletes the blocking event, then creates the pending event at its original range. A create failure after a successful delete is reported as a partial resolution.
// @Tags        Scheduling
// @Accept      json
// @Produce     json
// @Param       body body deleteExistingReq true "Pending event and blocking event ID"
// @Success     200 {object} resolveResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Event not found"
// @Failure     502 {object} response.Resp "Partial resolution"
// @Failure     503 {object} response.Resp "Calendar backend unavailable"
// @Router      /api/v1/schedule/resolutions/delete-existing [POST]
func (h *handler) DeleteExisting(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processDeleteExistingReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ResolveByDeletingExisting(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.ResolveByDeletingExisting: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newResolveResp(output))
}

// ListEvents godoc
// @Summary     List a day's events
// @Description Returns the events for the given date in start-time order. The date may be absolute (2025-10-21) or relative (today, tomorrow, next monday).
// @Tags        Scheduling
// @Accept      json
// @Produce     json
// @Param       date query string true  "Date, absolute or relative"
// @Param       q    query string false "Case-insensitive text filter on title and description"
// @Success     200 {object} listEventsResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "Calendar backend unavailable"
// @Router      /api/v1/schedule/events [GET]
func (h *handler) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processListEventsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ListEventsForDate(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.ListEventsForDate: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListEventsResp(output))
}

// Availability godoc
// @Summary     Report busy and free periods for a day
// @Description Lists busy periods and the free gaps between them for part of a day. Clock bounds default to the whole day.
// @Tags        Scheduling
// @Accept      json
// @Produce     json
// @Param       date  query string true  "Date, absolute or relative"
// @Param       start query string false "Start clock HH:MM (default 00:00)"
// @Param       end   query string false "End clock HH:MM (default 24:00)"
// @Success     200 {object} availabilityResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "Calendar backend unavailable"
// @Router      /api/v1/schedule/availability [GET]
func (h *handler) Availability(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processAvailabilityReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Availability(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.Availability: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newAvailabilityResp(output))
}
