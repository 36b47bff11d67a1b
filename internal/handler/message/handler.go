package message

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/leadmessenger/outreach-api/internal/handler"
	"github.com/leadmessenger/outreach-api/internal/model"
	"github.com/leadmessenger/outreach-api/internal/service/event"
	"github.com/leadmessenger/outreach-api/internal/service/message"
)

type Handler struct {
	service *message.Service
	events  *event.Service
}

func NewHandler(service *message.Service, events *event.Service) *Handler {
	return &Handler{service: service, events: events}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	messages := r.Group("/messages")
	{
		messages.GET("", h.ListMessages)
		messages.POST("", h.CreateMessage)
		messages.POST("/bulk", h.CreateBulkMessages)
		messages.GET("/preview/:contactId", h.GetMessagePreview)
		messages.GET("/:id", h.GetMessage)
		messages.GET("/:id/events", h.ListMessageEvents)
		messages.DELETE("/:id", h.DeleteMessage)
	}
}

func (h *Handler) ListMessages(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	var filters model.MessageFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	msgs, err := h.service.List(c.Request.Context(), ownerID, &filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(msgs))
}

func (h *Handler) CreateMessage(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	var req model.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.Create(c.Request.Context(), ownerID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(created))
}

func (h *Handler) CreateBulkMessages(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	var reqs []*model.CreateMessageRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreateBulk(c.Request.Context(), ownerID, reqs)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(created))
}

func (h *Handler) GetMessagePreview(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	contactID, err := uuid.Parse(c.Param("contactId"))
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("contact not found"))
		return
	}

	preview, err := h.service.Preview(c.Request.Context(), ownerID, contactID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(preview))
}

func (h *Handler) GetMessage(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("message not found"))
		return
	}

	found, err := h.service.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) ListMessageEvents(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("message not found"))
		return
	}

	events, err := h.events.ListForMessage(c.Request.Context(), ownerID, id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(events))
}

func (h *Handler) DeleteMessage(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("message not found"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "message deleted successfully"})
}
