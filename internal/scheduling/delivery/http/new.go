package http

import (
	"github.com/gin-gonic/gin"

	"github.com/lyanh238/VNASelf/internal/scheduling"
	"github.com/lyanh238/VNASelf/pkg/log"
)

// Handler is the public interface for the scheduling HTTP delivery layer.
type Handler interface {
	CheckConflicts(c *gin.Context)
	CreateEvent(c *gin.Context)
	SuggestAlternatives(c *gin.Context)
	SuggestOptimal(c *gin.Context)
	RelocateNew(c *gin.Context)
	RelocateExisting(c *gin.Context)
	DeleteExisting(c *gin.Context)
	ListEvents(c *gin.Context)
	Availability(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc scheduling.UseCase
}

// New creates a new HTTP handler for the scheduling domain.
func New(l log.Logger, uc scheduling.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
