package review

import (
	"net/http"

	"reviewdesk/internal/domain"
	"reviewdesk/internal/pkg/response"
	"reviewdesk/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the participant endpoints. authed must already carry
// JWTAuth; clients and workers are told apart by the caller.
func (h *Handler) RegisterRoutes(authed *gin.RouterGroup, clients, participants gin.HandlerFunc) {
	authed.GET("/reviews/:source/:id/thread", h.GetThread)
	authed.POST("/reviews", clients, h.Create)
	authed.POST("/reviews/:source/:id/replies", participants, h.AddReply)
}

// GetThread returns the discussion of one review.
// @Summary		Review thread
// @Tags		Reviews
// @Security	BearerAuth
// @Param		source	path	string	true	"platform_review | worker_client_review | legacy_worker_review"
// @Param		id		path	string	true	"Review ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/reviews/{source}/{id}/thread [GET]
func (h *Handler) GetThread(c *gin.Context) {
	kind, ok := ParseSource(c)
	if !ok {
		return
	}

	items, err := h.svc.GetThread(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// Create stores a new pending review written by the calling client.
// @Summary		Write a review
// @Tags		Reviews
// @Security	BearerAuth
// @Param		request	body	CreateReviewRequest	true	"Review"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Router		/reviews [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	kind, ok := domain.ParseSourceKind(req.Source)
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown review source")
		return
	}

	rv, err := h.svc.Create(c.Request.Context(), CreateReviewInput{
		Source:           kind,
		ClientRef:        c.GetString("user_id"),
		WorkerRef:        req.WorkerRef,
		ContactRef:       req.ContactRef,
		ServiceRequestID: req.ServiceRequestID,
		Rating:           req.Rating,
		Title:            req.Title,
		Content:          req.Content,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, rv)
}

// AddReply appends the caller's message to a review thread.
// @Summary		Reply to a review
// @Tags		Reviews
// @Security	BearerAuth
// @Param		source	path	string			true	"Review source"
// @Param		id		path	string			true	"Review ID"
// @Param		request	body	AddReplyRequest	true	"Message"
// @Success		201	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}	"source is read-only"
// @Router		/reviews/{source}/{id}/replies [POST]
func (h *Handler) AddReply(c *gin.Context) {
	kind, ok := ParseSource(c)
	if !ok {
		return
	}

	var req AddReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	role, _ := domain.ParseSenderRole(c.GetString("role"))
	reply, err := h.svc.AddReply(c.Request.Context(), AddReplyInput{
		Source:     kind,
		ReviewID:   c.Param("id"),
		SenderRole: role,
		SenderRef:  c.GetString("user_id"),
		Content:    req.Content,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, reply)
}

// ParseSource reads the :source path parameter, answering 400 when it is
// not a known review source.
func ParseSource(c *gin.Context) (domain.SourceKind, bool) {
	kind, ok := domain.ParseSourceKind(c.Param("source"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown review source")
		return "", false
	}
	return kind, true
}

