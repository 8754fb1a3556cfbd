package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	schedule := rg.Group("/schedule")
	{
		schedule.POST("/conflicts/check", h.CheckConflicts)

		schedule.POST("/events", h.CreateEvent)
		schedule.GET("/events", h.ListEvents)
		schedule.GET("/availability", h.Availability)

		schedule.POST("/suggestions/alternatives", h.SuggestAlternatives)
		schedule.POST("/suggestions/optimal", h.SuggestOptimal)

		schedule.POST("/resolutions/relocate-new", h.RelocateNew)
		schedule.POST("/resolutions/relocate-existing", h.RelocateExisting)
		schedule.POST("/resolutions/delete-existing", h.DeleteExisting)
	}
}
