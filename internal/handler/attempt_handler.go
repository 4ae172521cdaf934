package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lequiz/lequiz-backend/internal/model"
	"github.com/lequiz/lequiz-backend/internal/response"
	"github.com/lequiz/lequiz-backend/internal/service"
	"github.com/lequiz/lequiz-backend/internal/validator"
)

// AttemptHandler drives the quiz-taking flow. Each call returns the view of
// the question the participant lands on; answers ride along with the
// navigation action that leaves the question.
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// Start godoc
// POST /api/v1/quizzes/:id/attempts
func (h *AttemptHandler) Start(c *gin.Context) {
	var req model.StartAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.attemptService.Start(c.Request.Context(), c.Param("id"), req.ParticipantID)
	if err != nil {
		failAttempt(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"question": view})
}

// Get godoc
// GET /api/v1/attempts/:attempt_id
func (h *AttemptHandler) Get(c *gin.Context) {
	attemptID, ok := parseAttemptID(c)
	if !ok {
		return
	}

	view, err := h.attemptService.Get(c.Request.Context(), attemptID)
	if err != nil {
		failAttempt(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question": view})
}

// Next godoc
// POST /api/v1/attempts/:attempt_id/next
// Commits the in-flight answer, then advances one question.
func (h *AttemptHandler) Next(c *gin.Context) {
	h.navigate(c, h.attemptService.Next)
}

// Prev godoc
// POST /api/v1/attempts/:attempt_id/prev
// Commits the in-flight answer, then steps back one question.
func (h *AttemptHandler) Prev(c *gin.Context) {
	h.navigate(c, h.attemptService.Prev)
}

// Finish godoc
// POST /api/v1/attempts/:attempt_id/finish
// Only valid on the last question. Returns the score summary, or an empty
// body when the quiz ends on an unscored case block.
func (h *AttemptHandler) Finish(c *gin.Context) {
	attemptID, ok := parseAttemptID(c)
	if !ok {
		return
	}

	var req model.AttemptAnswerRequest
	if fields := validator.BindOptional(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	summary, err := h.attemptService.Finish(c.Request.Context(), attemptID, req.Answer)
	if err != nil {
		failAttempt(c, err)
		return
	}

	if summary == nil {
		response.Success(c, http.StatusOK, gin.H{})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

func (h *AttemptHandler) navigate(
	c *gin.Context,
	move func(ctx context.Context, id uuid.UUID, ans *model.AnswerValue) (*service.QuestionView, error),
) {
	attemptID, ok := parseAttemptID(c)
	if !ok {
		return
	}

	var req model.AttemptAnswerRequest
	if fields := validator.BindOptional(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := move(c.Request.Context(), attemptID, req.Answer)
	if err != nil {
		failAttempt(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question": view})
}

func parseAttemptID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("attempt_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// failAttempt maps attempt flow errors onto the response envelope.
func failAttempt(c *gin.Context, err error) {
	var vErr *model.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{vErr.Field: vErr.Reason})
	case errors.Is(err, service.ErrQuizNotFound), errors.Is(err, service.ErrAttemptNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrNoQuestions):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrNoQuestions)
	case errors.Is(err, service.ErrAttemptFinished):
		response.Fail(c, http.StatusConflict, response.ErrAttemptFinished)
	case errors.Is(err, service.ErrFirstQuestion),
		errors.Is(err, service.ErrLastQuestion),
		errors.Is(err, service.ErrNotLastQuestion):
		response.Fail(c, http.StatusConflict, response.ErrNavigationDenied)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
