package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/drsavage0/Twitter-Answer-me-bot/internal/models"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
	quizGen     *services.QuizGenService
}

func NewQuizHandler(quizService *services.QuizService, quizGen *services.QuizGenService) *QuizHandler {
	return &QuizHandler{quizService: quizService, quizGen: quizGen}
}

type CreateQuizRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
	IsPublic    *bool  `json:"isPublic"`
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	quiz, err := h.quizService.CreateQuiz(userID, req.Title, req.Description, isPublic)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	quizzes, err := h.quizService.GetQuizzes(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

func (h *QuizHandler) MyQuizzes(c *gin.Context) {
	userID := c.GetUint("user_id")

	quizzes, err := h.quizService.GetQuizzesByCreator(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	quiz, err := h.quizService.GetQuiz(uint(quizID))
	if err != nil {
		c.JSON(errorStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

type AddQuestionsRequest struct {
	Generate  bool                     `json:"generate"`
	Count     int                      `json:"count"`
	Questions []services.QuestionInput `json:"questions"`
}

// AddQuestions appends questions to a quiz the caller owns. With
// generate=true the questions come from the AI generator, where malformed
// entries are skipped; manual bodies are validated strictly and any invalid
// question rejects the request.
func (h *QuizHandler) AddQuestions(c *gin.Context) {
	userID := c.GetUint("user_id")
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	var req AddQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if req.Generate {
		quiz, err := h.quizService.GetQuiz(uint(quizID))
		if err != nil {
			c.JSON(errorStatus(err), ErrorResponse{Error: err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), externalCallTimeout)
		defer cancel()
		inputs, err := h.quizGen.Generate(ctx, quiz.Title, quiz.Description, req.Count)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}

		questions, err := h.quizService.AddQuestions(uint(quizID), userID, inputs)
		if err != nil {
			c.JSON(errorStatus(err), ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusCreated, questions)
		return
	}

	if len(req.Questions) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no questions to add"})
		return
	}

	created := make([]models.Question, 0, len(req.Questions))
	for _, input := range req.Questions {
		q, err := h.quizService.AddQuestion(uint(quizID), userID, input)
		if err != nil {
			c.JSON(errorStatus(err), ErrorResponse{Error: err.Error()})
			return
		}
		created = append(created, *q)
	}

	c.JSON(http.StatusCreated, created)
}
