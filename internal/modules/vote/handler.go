package vote

import (
	"net/http"
	"strings"

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

func (h *Handler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.POST("/replies/:id/votes", h.Toggle)
	authed.GET("/replies/votes/counts", h.GetCounts)
	authed.GET("/replies/votes/mine", h.GetMyVotes)
}

// Toggle records a vote click for the caller.
// @Summary		Vote on a reply
// @Description	Sending the kind you already hold removes the vote; another kind replaces it.
// @Tags		Votes
// @Security	BearerAuth
// @Param		id		path	string			true	"Reply ID"
// @Param		request	body	ToggleRequest	true	"like | useful | not_useful"
// @Success		200	{object}	ToggleResult
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/replies/{id}/votes [POST]
func (h *Handler) Toggle(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	kind, ok := domain.ParseVoteKind(req.VoteKind)
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown vote kind")
		return
	}

	res, err := h.svc.Toggle(c.Request.Context(), ToggleInput{
		ReplyID: c.Param("id"),
		VoterID: c.GetString("user_id"),
		Kind:    kind,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// GetCounts returns vote counts for several replies.
// @Summary		Vote counts
// @Tags		Votes
// @Security	BearerAuth
// @Param		reply_ids	query	string	true	"Comma separated reply ids (max 200)"
// @Success		200	{object}	map[string]interface{}
// @Router		/replies/votes/counts [GET]
func (h *Handler) GetCounts(c *gin.Context) {
	counts, err := h.svc.GetCounts(c.Request.Context(), splitIDs(c))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"counts": counts})
}

// GetMyVotes returns the caller's vote for several replies.
// @Summary		My votes
// @Tags		Votes
// @Security	BearerAuth
// @Param		reply_ids	query	string	true	"Comma separated reply ids (max 200)"
// @Success		200	{object}	map[string]interface{}
// @Router		/replies/votes/mine [GET]
func (h *Handler) GetMyVotes(c *gin.Context) {
	mine, err := h.svc.GetMyVotes(c.Request.Context(), splitIDs(c), c.GetString("user_id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"my_votes": mine})
}

// splitIDs accepts both reply_ids=a,b and repeated reply_ids parameters.
func splitIDs(c *gin.Context) []string {
	var ids []string
	for _, v := range c.QueryArray("reply_ids") {
		ids = append(ids, strings.Split(v, ",")...)
	}
	return ids
}
