package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lequiz/lequiz-backend/internal/model"
	"github.com/lequiz/lequiz-backend/internal/response"
	"github.com/lequiz/lequiz-backend/internal/service"
	"github.com/lequiz/lequiz-backend/internal/validator"
)

// QuizAdminHandler exposes quiz CRUD for authenticated admins. Responses
// carry the full documents including reference answers.
type QuizAdminHandler struct {
	quizService *service.QuizService
}

// NewQuizAdminHandler creates a new QuizAdminHandler.
func NewQuizAdminHandler(quizService *service.QuizService) *QuizAdminHandler {
	return &QuizAdminHandler{quizService: quizService}
}

// List godoc
// GET /api/v1/admin/quizzes
func (h *QuizAdminHandler) List(c *gin.Context) {
	quizzes, err := h.quizService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quizzes": quizzes})
}

// Get godoc
// GET /api/v1/admin/quizzes/:id
func (h *QuizAdminHandler) Get(c *gin.Context) {
	quiz, err := h.quizService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}

// Create godoc
// POST /api/v1/admin/quizzes
// The document id must be unique; an existing id is rejected, never overwritten.
func (h *QuizAdminHandler) Create(c *gin.Context) {
	var req model.QuizPayload
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz := req.ToQuiz()
	if err := h.quizService.Create(c.Request.Context(), quiz); err != nil {
		failQuizWrite(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"quiz": quiz})
}

// Replace godoc
// PUT /api/v1/admin/quizzes/:id
// Full-document replace; the path id wins over any id in the body.
func (h *QuizAdminHandler) Replace(c *gin.Context) {
	var req model.QuizPayload
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz := req.ToQuiz()
	quiz.ID = c.Param("id")
	if err := h.quizService.Replace(c.Request.Context(), quiz); err != nil {
		failQuizWrite(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}

// Delete godoc
// DELETE /api/v1/admin/quizzes/:id
func (h *QuizAdminHandler) Delete(c *gin.Context) {
	if err := h.quizService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// failQuizWrite maps quiz write errors onto the response envelope.
func failQuizWrite(c *gin.Context, err error) {
	var vErr *model.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{vErr.Field: vErr.Reason})
	case errors.Is(err, service.ErrQuizExists):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrQuizNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
