package task

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/leadmessenger/outreach-api/internal/handler"
	"github.com/leadmessenger/outreach-api/internal/model"
	"github.com/leadmessenger/outreach-api/internal/service/task"
)

type Handler struct {
	service *task.Service
}

func NewHandler(service *task.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	tasks := r.Group("/tasks")
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", h.CreateTask)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.PATCH("/:id/status", h.UpdateTaskStatus)
		tasks.DELETE("/:id", h.DeleteTask)
	}
}

func (h *Handler) ListTasks(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	var filters model.TaskFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tasks, err := h.service.List(c.Request.Context(), ownerID, &filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tasks))
}

func (h *Handler) CreateTask(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	var req model.CreateTaskRequest
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

func (h *Handler) GetTask(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("task not found"))
		return
	}

	found, err := h.service.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) UpdateTask(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("task not found"))
		return
	}

	var req model.UpdateTaskRequest
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

func (h *Handler) UpdateTaskStatus(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("task not found"))
		return
	}

	var req model.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.SetStatus(c.Request.Context(), ownerID, id, model.TaskStatus(req.Status))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) DeleteTask(c *gin.Context) {
	ownerID, _ := handler.OwnerID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("task not found"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted successfully"})
}
