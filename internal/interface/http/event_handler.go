package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventfeed/eventfeed-api/internal/application"
	"github.com/eventfeed/eventfeed-api/internal/assets"
	"github.com/eventfeed/eventfeed-api/internal/interface/middleware"
	"github.com/eventfeed/eventfeed-api/pkg/response"
	"github.com/eventfeed/eventfeed-api/pkg/validation"
)

type EventHandler struct {
	Svc    *application.EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc *application.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

type createEventRequest struct {
	Title   string `json:"title" binding:"required"`
	Caption string `json:"caption" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Image   string `json:"image" binding:"required"`
}

// Create POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "please provide all the fields", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	e, err := h.Svc.Create(c.Request.Context(), uid, application.CreateEventInput{
		Title:   req.Title,
		Caption: req.Caption,
		Rating:  req.Rating,
		Image:   req.Image,
	})
	if err != nil {
		if errors.Is(err, assets.ErrInvalidPayload) {
			response.Error[any](c, http.StatusBadRequest, "image must be a base64 data URI", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("create event failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	response.Success(c, http.StatusCreated, e, "event created", nil)
}

// List GET /api/events?page=&limit=
func (h *EventHandler) List(c *gin.Context) {
	page := queryInt(c, "page", application.DefaultPage)
	limit := queryInt(c, "limit", application.DefaultLimit)

	feed, err := h.Svc.List(c.Request.Context(), page, limit)
	if err != nil {
		h.Logger.WithError(err).Error("list events failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, feed, "events", nil)
}

// ListOwn GET /api/events/user
func (h *EventHandler) ListOwn(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	items, err := h.Svc.ListByOwner(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("list own events failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, items, "events", nil)
}

// Delete DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	err := h.Svc.Delete(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEventNotFound):
			response.Error[any](c, http.StatusNotFound, "event not found", nil)
		case errors.Is(err, application.ErrNotOwner):
			response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		default:
			h.Logger.WithError(err).WithField("event_id", c.Param("id")).Error("delete event failed")
			response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		}
		return
	}

	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "event deleted successfully", nil)
}

// Search GET /api/events/search?q=
func (h *EventHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size := queryInt(c, "size", 10)

	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("event search failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, hits, "search results", nil)
}

func queryInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 1 {
		return def
	}
	return i
}
