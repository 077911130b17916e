package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TronTram/TimeTracker-sub003/internal/middleware"
	"github.com/TronTram/TimeTracker-sub003/internal/model"
	"github.com/TronTram/TimeTracker-sub003/internal/service"
)

type PreferencesHandler struct {
	prefsService *service.PreferencesService
}

func NewPreferencesHandler(prefsService *service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{prefsService: prefsService}
}

func (h *PreferencesHandler) Get(c *gin.Context) {
	prefs, apiErr := h.prefsService.Get(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// Update commits a full preferences document. The client's draft store calls
// MarkChangesSaved only after this succeeds.
func (h *PreferencesHandler) Update(c *gin.Context) {
	var prefs model.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		writeInvalidJSON(c)
		return
	}

	updated, apiErr := h.prefsService.Update(c.Request.Context(), middleware.UserID(c), prefs)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": updated})
}
