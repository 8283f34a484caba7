package admin

import (
	"net/http"

	"reviewdesk/internal/domain"
	"reviewdesk/internal/modules/review"
	"reviewdesk/internal/pkg/response"
	"reviewdesk/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the moderation endpoints on a group already guarded
// by JWTAuth and AdminOnly.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/reviews", h.GetReviews)
	admin.GET("/reviews/stats", h.GetReviewStats)
	admin.GET("/reviews/:source/:id/thread", h.GetReviewThread)
	admin.POST("/reviews/:source/:id/moderate", h.ModerateReview)
}

// -------------------- Reviews --------------------

// GetReviews lists reviews from every source as one result set.
// @Summary		List reviews
// @Description	Merges all review sources, filters by status and free text, newest first. A query shaped like a UUID matches ids exactly.
// @Tags		Admin - Review moderation
// @Security	BearerAuth
// @Param		q			query	string	false	"Free text or exact id"
// @Param		status		query	string	false	"pending | published | hidden | rejected | flagged | all"
// @Param		page		query	int		false	"Page number"	default(1)
// @Param		per_page	query	int		false	"Rows per page (1-100)"	default(20)
// @Success		200	{object}	review.ListResult
// @Failure		400	{object}	map[string]interface{}	"Invalid filter"
// @Failure		403	{object}	map[string]interface{}	"Admin access required"
// @Failure		503	{object}	map[string]interface{}	"A review source is unavailable; retry"
// @Router		/admin/reviews [GET]
func (h *Handler) GetReviews(c *gin.Context) {
	var q ReviewListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	res, err := h.service.ListReviews(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// GetReviewStats counts reviews per status.
// @Summary		Review counters
// @Tags		Admin - Review moderation
// @Security	BearerAuth
// @Success		200	{object}	review.StatsResult
// @Failure		503	{object}	map[string]interface{}
// @Router		/admin/reviews/stats [GET]
func (h *Handler) GetReviewStats(c *gin.Context) {
	stats, err := h.service.ReviewStats(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// GetReviewThread returns a review with its discussion.
// @Summary		Review thread (moderator view)
// @Tags		Admin - Review moderation
// @Security	BearerAuth
// @Param		source	path	string	true	"Review source"
// @Param		id		path	string	true	"Review ID"
// @Success		200	{object}	ThreadResponse
// @Failure		404	{object}	map[string]interface{}
// @Router		/admin/reviews/{source}/{id}/thread [GET]
func (h *Handler) GetReviewThread(c *gin.Context) {
	kind, ok := review.ParseSource(c)
	if !ok {
		return
	}

	thread, err := h.service.ReviewThread(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, thread)
}

// ModerateReview publishes, hides or rejects a review.
// @Summary		Moderate a review
// @Description	Legacy reviews are read-only and answer 409 CAPABILITY_ERROR. Omitting note keeps the current note; an empty note clears it.
// @Tags		Admin - Review moderation
// @Security	BearerAuth
// @Param		source	path	string			true	"Review source"
// @Param		id		path	string			true	"Review ID"
// @Param		request	body	ModerateRequest	true	"Action and optional note"
// @Success		200	{object}	domain.Review
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}	"Source cannot be moderated"
// @Router		/admin/reviews/{source}/{id}/moderate [POST]
func (h *Handler) ModerateReview(c *gin.Context) {
	kind, ok := review.ParseSource(c)
	if !ok {
		return
	}

	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	adminID := c.GetString("user_id")
	rv, err := h.service.ModerateReview(c.Request.Context(), ModerateInput{
		Source:   kind,
		ReviewID: c.Param("id"),
		Action:   domain.ModerationAction(req.Action),
		Note:     req.Note,
		AdminID:  adminID,
	})
	if err != nil {
		log.Warn().
			Err(err).
			Str("admin_id", adminID).
			Str("source", string(kind)).
			Str("review_id", c.Param("id")).
			Str("action", req.Action).
			Msg("admin action failed: moderate review")
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, rv)
}
