package contact

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/leadmessenger/outreach-api/internal/handler"
	"github.com/leadmessenger/outreach-api/internal/model"
	"github.com/leadmessenger/outreach-api/internal/service/contact"
)

type Handler struct {
	service *contact.Service
}

func NewHandler(service *contact.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	contacts := r.Group("/contacts")
	{
		contacts.GET("", h.ListContacts)
		contacts.POST("", h.CreateContact)
		contacts.POST("/import", h.ImportContacts)
		contacts.GET("/:id", h.GetContact)
		contacts.PUT("/:id", h.UpdateContact)
		contacts.DELETE("/:id", h.DeleteContact)
	}
}

func (h *Handler) ListContacts(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	var filters model.ContactFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	list, err := h.service.List(c.Request.Context(), ownerID, &filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

func (h *Handler) CreateContact(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	var req model.CreateContactRequest
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

func (h *Handler) GetContact(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("contact not found"))
		return
	}

	found, err := h.service.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) UpdateContact(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("contact not found"))
		return
	}

	var req model.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), ownerID, id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) DeleteContact(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("contact not found"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "contact deleted"})
}

func (h *Handler) ImportContacts(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to open uploaded file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to read uploaded file"))
		return
	}

	imported, err := h.service.ImportCSV(c.Request.Context(), ownerID, fileHeader.Filename, data)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(imported))
}
