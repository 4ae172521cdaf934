package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lequiz/lequiz-backend/internal/model"
	"github.com/lequiz/lequiz-backend/internal/response"
	"github.com/lequiz/lequiz-backend/internal/service"
	"github.com/lequiz/lequiz-backend/internal/validator"
)

// ResultHandler accepts externally graded results and serves the admin
// review listing. The attempt flow submits results on its own; the public
// endpoint exists for clients that run a quiz offline and report afterwards.
type ResultHandler struct {
	resultService *service.ResultService
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(resultService *service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// Submit godoc
// POST /api/v1/results
func (h *ResultHandler) Submit(c *gin.Context) {
	var req model.SubmitResultRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result := &model.Result{
		ParticipantID: req.ParticipantID,
		QuizID:        req.QuizID,
		Score:         req.Score,
		Correct:       req.Correct,
		Total:         req.Total,
		SubmittedAt:   time.Now().UTC(),
	}
	if err := h.resultService.Submit(c.Request.Context(), result); err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{vErr.Field: vErr.Reason})
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"result": result})
}

// List godoc
// GET /api/v1/admin/results?page=&per_page=&quiz_id=
// Stored results newest first, optionally filtered by quiz.
func (h *ResultHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	results, pagination, err := h.resultService.List(c.Request.Context(), page, perPage, c.Query("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"results": results}, pagination)
}
