package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lequiz/lequiz-backend/internal/response"
	"github.com/lequiz/lequiz-backend/internal/service"
)

// QuizPublicHandler serves the participant-facing quiz catalog. Every
// document it returns is sanitized: no reference answers leave the server.
type QuizPublicHandler struct {
	quizService *service.QuizService
}

// NewQuizPublicHandler creates a new QuizPublicHandler.
func NewQuizPublicHandler(quizService *service.QuizService) *QuizPublicHandler {
	return &QuizPublicHandler{quizService: quizService}
}

// List godoc
// GET /api/v1/quizzes
func (h *QuizPublicHandler) List(c *gin.Context) {
	quizzes, err := h.quizService.ListPublic(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quizzes": quizzes})
}

// Get godoc
// GET /api/v1/quizzes/:id
func (h *QuizPublicHandler) Get(c *gin.Context) {
	quiz, err := h.quizService.GetPublic(c.Request.Context(), c.Param("id"))
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
