package http

import (
	"github.com/gin-gonic/gin"

	"github.com/lyanh238/VNASelf/internal/scheduling"
)

// processCheckConflictsReq binds and validates the conflict check body.
func (h *handler) processCheckConflictsReq(c *gin.Context) (scheduling.CheckConflictsInput, error) {
	var req checkConflictsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return scheduling.CheckConflictsInput{}, err
	}
	return req.toInput()
}

// processCreateEventReq binds and validates the create event body.
func (h *handler) processCreateEventReq(c *gin.Context) (scheduling.CreateEventInput, error) {
	var req createEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return scheduling.CreateEventInput{}, err
	}
	return req.toInput()
}

// processSuggestAlternativesReq binds and validates the alternatives search body.
func (h *handler) processSuggestAlternativesReq(c *gin.Context) (scheduling.SuggestAlternativesInput, error) {
	var req suggestAlternativesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return scheduling.SuggestAlternativesInput{}, err
	}
	return req.toInput()
}

// processSuggestOptimalReq binds and validates the optimal time search body.
func (h *handler) processSuggestOptimalReq(c *gin.Context) (scheduling.SuggestOptimalInput, error) {
	var req suggestOptimalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return scheduling.SuggestOptimalInput{}, err
	}
	return req.toInput(), nil
}

// processRelocateNewReq binds and validates the relocate-new resolution body.
func (h *handler) processRelocateNewReq(c *gin.Context) (scheduling.RelocateNewInput, error) {
	var req relocateNewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return scheduling.RelocateNewInput{}, err
	}
	return req.toInput()
}

// processRelocateExistingReq binds and validates the relocate-existing resolution body.
func (h *handler) processRelocateExistingReq(c *gin.Context) (scheduling.RelocateExistingInput, error) {
	var req relocateExistingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return scheduling.RelocateExistingInput{}, err
	}
	return req.toInput()
}

// processDeleteExistingReq binds and validates the delete-existing resolution body.
func (h *handler) processDeleteExistingReq(c *gin.Context) (scheduling.DeleteExistingInput, error) {
	var req deleteExistingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return scheduling.DeleteExistingInput{}, err
	}
	return req.toInput()
}

// processListEventsReq binds the list events query parameters.
func (h *handler) processListEventsReq(c *gin.Context) (scheduling.ListEventsInput, error) {
	var req listEventsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return scheduling.ListEventsInput{}, err
	}
	return scheduling.ListEventsInput{Date: req.Date, Query: req.Query}, nil
}

// processAvailabilityReq binds the availability query parameters.
func (h *handler) processAvailabilityReq(c *gin.Context) (scheduling.AvailabilityInput, error) {
	var req availabilityReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return scheduling.AvailabilityInput{}, err
	}
	return scheduling.AvailabilityInput{
		Date:       req.Date,
		StartClock: req.Start,
		EndClock:   req.End,
	}, nil
}
