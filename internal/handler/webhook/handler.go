package webhook

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadmessenger/outreach-api/internal/handler"
	"github.com/leadmessenger/outreach-api/internal/model"
	"github.com/leadmessenger/outreach-api/internal/service/event"
)

type Handler struct {
	svc *event.Service
}

func NewHandler(svc *event.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	webhooks := r.Group("/webhooks")
	{
		webhooks.POST("/resend", h.handleProvider("resend"))
		webhooks.POST("/twilio", h.handleProvider("twilio"))
	}
}

func (h *Handler) handleProvider(provider string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.ProviderEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}

		evt, err := h.svc.RecordProviderEvent(c.Request.Context(), provider, &req)
		if err != nil {
			handler.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, handler.NewSuccessResponse(evt))
	}
}
