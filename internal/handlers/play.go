package handlers

import (
	"net/http"
	"strconv"

	"github.com/drsavage0/Twitter-Answer-me-bot/internal/services"

	"github.com/gin-gonic/gin"
)

type PlayHandler struct {
	playService *services.PlayService
}

func NewPlayHandler(playService *services.PlayService) *PlayHandler {
	return &PlayHandler{playService: playService}
}

type JoinRequest struct {
	QuizID      uint   `json:"quizId" binding:"required"`
	Code        string `json:"code" binding:"required"`
	DisplayName string `json:"displayName" binding:"required,min=1,max=100"`
}

// Join registers a participant for a quiz. Logged-in users rejoin their
// existing participant; guests always get a fresh one.
func (h *PlayHandler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var userID *uint
	if id, ok := c.Get("user_id"); ok {
		if uid, ok := id.(uint); ok {
			userID = &uid
		}
	}

	participant, err := h.playService.Join(req.QuizID, req.Code, req.DisplayName, userID)
	if err != nil {
		c.JSON(errorStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, participant)
}

type AnswerRequest struct {
	ParticipantID    uint `json:"participantId" binding:"required"`
	QuestionID       uint `json:"questionId" binding:"required"`
	SelectedOptionID uint `json:"selectedOptionId" binding:"required"`
}

func (h *PlayHandler) Answer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.playService.SubmitAnswer(req.ParticipantID, req.QuestionID, req.SelectedOptionID)
	if err != nil {
		c.JSON(errorStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PlayHandler) GetParticipant(c *gin.Context) {
	participantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid participant id"})
		return
	}

	state, err := h.playService.ParticipantState(uint(participantID))
	if err != nil {
		c.JSON(errorStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}
