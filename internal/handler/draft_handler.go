package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lequiz/lequiz-backend/internal/middleware"
	"github.com/lequiz/lequiz-backend/internal/model"
	"github.com/lequiz/lequiz-backend/internal/response"
	"github.com/lequiz/lequiz-backend/internal/service"
	"github.com/lequiz/lequiz-backend/internal/validator"
)

// DraftHandler exposes the authoring workspace: one draft per admin,
// mutated question by question, then published as a whole document.
type DraftHandler struct {
	draftService *service.DraftService
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// Get godoc
// GET /api/v1/admin/draft
func (h *DraftHandler) Get(c *gin.Context) {
	adminID, ok := requireAdminID(c)
	if !ok {
		return
	}

	draft, err := h.draftService.Get(c.Request.Context(), adminID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	respondDraft(c, draft)
}

// SetMeta godoc
// PUT /api/v1/admin/draft
func (h *DraftHandler) SetMeta(c *gin.Context) {
	adminID, ok := requireAdminID(c)
	if !ok {
		return
	}

	var req model.DraftMetaRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	draft, err := h.draftService.SetMeta(c.Request.Context(), adminID, &req)
	if err != nil {
		failDraft(c, err)
		return
	}
	respondDraft(c, draft)
}

// AddQuestion godoc
// POST /api/v1/admin/draft/questions
func (h *DraftHandler) AddQuestion(c *gin.Context) {
	adminID, ok := requireAdminID(c)
	if !ok {
		return
	}

	var req model.QuestionPayload
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	draft, err := h.draftService.AddQuestion(c.Request.Context(), adminID, req.ToQuestion())
	if err != nil {
		failDraft(c, err)
		return
	}
	respondDraft(c, draft)
}

// UpdateQuestion godoc
// PUT /api/v1/admin/draft/questions/:index
func (h *DraftHandler) UpdateQuestion(c *gin.Context) {
	adminID, ok := requireAdminID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.QuestionPayload
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	draft, err := h.draftService.UpdateQuestion(c.Request.Context(), adminID, index, req.ToQuestion())
	if err != nil {
		failDraft(c, err)
		return
	}
	respondDraft(c, draft)
}

// RemoveQuestion godoc
// DELETE /api/v1/admin/draft/questions/:index
func (h *DraftHandler) RemoveQuestion(c *gin.Context) {
	adminID, ok := requireAdminID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	draft, err := h.draftService.RemoveQuestion(c.Request.Context(), adminID, index)
	if err != nil {
		failDraft(c, err)
		return
	}
	respondDraft(c, draft)
}

// LoadQuiz godoc
// POST /api/v1/admin/draft/load/:quiz_id
// Replaces the draft with a copy of a stored quiz for editing.
func (h *DraftHandler) LoadQuiz(c *gin.Context) {
	adminID, ok := requireAdminID(c)
	if !ok {
		return
	}

	draft, err := h.draftService.LoadQuiz(c.Request.Context(), adminID, c.Param("quiz_id"))
	if err != nil {
		failDraft(c, err)
		return
	}
	respondDraft(c, draft)
}

// Publish godoc
// POST /api/v1/admin/draft/publish
// Stores the draft as a quiz and clears the workspace on success.
func (h *DraftHandler) Publish(c *gin.Context) {
	adminID, ok := requireAdminID(c)
	if !ok {
		return
	}

	quiz, err := h.draftService.Publish(c.Request.Context(), adminID)
	if err != nil {
		failDraft(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}

// Discard godoc
// DELETE /api/v1/admin/draft
func (h *DraftHandler) Discard(c *gin.Context) {
	adminID, ok := requireAdminID(c)
	if !ok {
		return
	}

	if err := h.draftService.Discard(c.Request.Context(), adminID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

func respondDraft(c *gin.Context, draft *model.QuizDraft) {
	response.Success(c, http.StatusOK, gin.H{
		"draft":        draft,
		"total_points": draft.TotalPoints(),
	})
}

func requireAdminID(c *gin.Context) (int, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return 0, false
	}
	return claims.AdminID, true
}

// failDraft maps draft workflow errors onto the response envelope.
func failDraft(c *gin.Context, err error) {
	var vErr *model.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{vErr.Field: vErr.Reason})
	case errors.Is(err, service.ErrDraftIndexOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
	case errors.Is(err, service.ErrQuizNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrQuizExists):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
