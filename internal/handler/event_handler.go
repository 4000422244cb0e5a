package handler

import (
	"net/http"
	"time"

	"event-gallery-api/internal/model"
	"event-gallery-api/internal/service"
	apperrors "event-gallery-api/pkg/app_errors"
	"event-gallery-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine, auth *AuthMiddleware) {
	router := r.Group("/api/v1")
	{
		router.GET("events", auth.Optional(), h.List)
		router.GET("events/:uuid", auth.Optional(), h.GetByEventID)
		router.POST("events", auth.Required(), h.Create)
		router.PUT("events/:uuid", auth.Required(), h.UpdateByEventID)
		router.DELETE("events/:uuid", auth.Required(), h.DeleteByEventID)

		router.POST("events/:uuid/join", auth.Required(), h.Join)
		router.POST("events/join", auth.Required(), h.JoinByCode)
		router.DELETE("events/:uuid/leave", auth.Required(), h.Leave)
		router.GET("events/:uuid/participants", auth.Optional(), h.Participants)
		router.GET("events/:uuid/stats", auth.Optional(), h.Stats)

		router.GET("invite-codes/:code", h.ValidateInviteCode)
	}
}

// CreateEventRequest 建立活動請求
type CreateEventRequest struct {
	Name            string    `json:"name" binding:"required"`
	Description     *string   `json:"description"`
	Location        *string   `json:"location"`
	Date            time.Time `json:"date" binding:"required"`
	IsPrivate       bool      `json:"is_private"`
	MaxParticipants *int      `json:"max_participants"`
}

// UpdateEventRequest 更新活動請求
type UpdateEventRequest struct {
	Name            *string    `json:"name"`
	Description     *string    `json:"description"`
	Location        *string    `json:"location"`
	Date            *time.Time `json:"date"`
	IsPrivate       *bool      `json:"is_private"`
	MaxParticipants *int       `json:"max_participants"`
}

// JoinByCodeRequest 以邀請碼加入活動
type JoinByCodeRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

// EventListQuery 活動列表與搜尋條件
type EventListQuery struct {
	Search    *string    `form:"search"`
	IsPrivate *bool      `form:"is_private"`
	CreatedBy *int       `form:"created_by"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

func (h *EventHandler) List(c *gin.Context) {
	var query EventListQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}
	filters := model.EventFilters{
		Search:    query.Search,
		IsPrivate: query.IsPrivate,
		CreatedBy: query.CreatedBy,
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
	}
	events, err := h.service.List(c, SubjectFrom(c), filters)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetByEventID(c *gin.Context) {
	eventID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	event, err := h.service.GetByEventID(c, SubjectFrom(c), eventID)
	if err != nil {
		h.handleError(c, err, "GetByEventID")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	params := model.CreateEventParams{
		Name:            req.Name,
		Description:     req.Description,
		Location:        req.Location,
		Date:            req.Date,
		IsPrivate:       req.IsPrivate,
		MaxParticipants: req.MaxParticipants,
	}
	created, err := h.service.Create(c, params, SubjectFrom(c).UserID())
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) UpdateByEventID(c *gin.Context) {
	eventID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	params := model.UpdateEventParams{
		Name:            req.Name,
		Description:     req.Description,
		Location:        req.Location,
		Date:            req.Date,
		IsPrivate:       req.IsPrivate,
		MaxParticipants: req.MaxParticipants,
	}
	updated, err := h.service.Update(c, SubjectFrom(c), eventID, params)
	if err != nil {
		h.handleError(c, err, "UpdateByEventID")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) DeleteByEventID(c *gin.Context) {
	eventID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	if err := h.service.Delete(c, SubjectFrom(c), eventID); err != nil {
		h.handleError(c, err, "DeleteByEventID")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EventHandler) Join(c *gin.Context) {
	eventID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	event, err := h.service.Join(c, eventID, SubjectFrom(c).UserID())
	if err != nil {
		h.handleError(c, err, "Join")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) JoinByCode(c *gin.Context) {
	var req JoinByCodeRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	event, err := h.service.JoinByCode(c, req.InviteCode, SubjectFrom(c).UserID())
	if err != nil {
		h.handleError(c, err, "JoinByCode")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Leave(c *gin.Context) {
	eventID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	if err := h.service.Leave(c, eventID, SubjectFrom(c).UserID()); err != nil {
		h.handleError(c, err, "Leave")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EventHandler) Participants(c *gin.Context) {
	eventID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	participants, err := h.service.Participants(c, SubjectFrom(c), eventID)
	if err != nil {
		h.handleError(c, err, "Participants")
		return
	}
	c.JSON(http.StatusOK, participants)
}

func (h *EventHandler) Stats(c *gin.Context) {
	eventID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	stats, err := h.service.Stats(c, SubjectFrom(c), eventID)
	if err != nil {
		h.handleError(c, err, "Stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *EventHandler) ValidateInviteCode(c *gin.Context) {
	result, err := h.service.ValidateInviteCode(c, c.Param("code"))
	if err != nil {
		h.handleError(c, err, "ValidateInviteCode")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == apperrors.ErrEventNotFound:
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case err == apperrors.ErrInvalidInviteCode:
		log.Warn("Invalid invite code")
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid invite code"})
	case err == apperrors.ErrAccessDenied:
		log.Warn("Access denied")
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this event"})
	case err == apperrors.ErrCreatorCannotLeave:
		log.Warn("Creator cannot leave")
		c.JSON(http.StatusForbidden, gin.H{"error": "Event creator cannot leave the event"})
	case err == apperrors.ErrAlreadyParticipant:
		log.Warn("Already participant")
		c.JSON(http.StatusConflict, gin.H{"error": "You are already a participant of this event"})
	case err == apperrors.ErrEventFull:
		log.Warn("Event full")
		c.JSON(http.StatusConflict, gin.H{"error": "Event has reached maximum participants"})
	case err == apperrors.ErrNotParticipant:
		log.Warn("Not participant")
		c.JSON(http.StatusBadRequest, gin.H{"error": "You are not a participant of this event"})
	case err == apperrors.ErrInvalidInput:
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
