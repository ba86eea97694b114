package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/drsavage0/Twitter-Answer-me-bot/internal/bot"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/models"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/services"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/twitter"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/ws"

	"github.com/gin-gonic/gin"
)

// BotHandler exposes the operator dashboard: connection setup, bot status,
// ingested mentions and the manual generate/respond actions.
type BotHandler struct {
	mentions *services.MentionService
	stats    *services.StatsService
	settings *services.SettingsService
	quizGen  *services.QuizGenService
	manager  *bot.Manager
	hub      *ws.Hub
}

func NewBotHandler(
	mentions *services.MentionService,
	stats *services.StatsService,
	settings *services.SettingsService,
	quizGen *services.QuizGenService,
	manager *bot.Manager,
	hub *ws.Hub,
) *BotHandler {
	return &BotHandler{
		mentions: mentions,
		stats:    stats,
		settings: settings,
		quizGen:  quizGen,
		manager:  manager,
		hub:      hub,
	}
}

const externalCallTimeout = 30 * time.Second

type StatusResponse struct {
	Active      bool   `json:"active"`
	Connected   bool   `json:"connected"`
	Username    string `json:"username"`
	Description string `json:"description"`
}

func (h *BotHandler) Status(c *gin.Context) {
	settings, err := h.settings.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get bot status"})
		return
	}

	connected := h.manager.TwitterConfigured()
	username := ""
	if connected {
		username = settings.TwitterUsername
	}

	c.JSON(http.StatusOK, StatusResponse{
		Active:      settings.BotActive,
		Connected:   connected,
		Username:    username,
		Description: "Ready to respond with wit & roasts",
	})
}

func (h *BotHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *BotHandler) ListMentions(c *gin.Context) {
	count := 20
	if raw := c.Query("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			count = n
		}
	}

	mentions, err := h.mentions.GetRecent(count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch mentions"})
		return
	}
	c.JSON(http.StatusOK, mentions)
}

type Command struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

func (h *BotHandler) ListCommands(c *gin.Context) {
	c.JSON(http.StatusOK, []Command{
		{
			Name:        "Roast Mode",
			Icon:        "fire",
			Description: "Generate a humorous roast reply for someone in the thread.",
			Example:     "@answerthembot roast this person",
		},
		{
			Name:        "Witty Mode",
			Icon:        "smile-wink",
			Description: "Generate a clever, witty response to the conversation.",
			Example:     "@answerthembot give a witty reply",
		},
		{
			Name:        "Debate Mode",
			Icon:        "quote-right",
			Description: "Generate a logical counter-argument to continue a debate.",
			Example:     "@answerthembot debate this point",
		},
		{
			Name:        "Peace Mode",
			Icon:        "peace",
			Description: "Generate a calm, de-escalating response to cool down heated arguments.",
			Example:     "@answerthembot make peace here",
		},
	})
}

type ConnectRequest struct {
	APIKey       string `json:"apiKey" binding:"required"`
	APISecret    string `json:"apiSecret" binding:"required"`
	AccessToken  string `json:"accessToken" binding:"required"`
	AccessSecret string `json:"accessSecret" binding:"required"`
}

type ConnectResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Connect verifies the supplied Twitter credentials against the API before
// storing them and handing the client to the poller.
func (h *BotHandler) Connect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ConnectResponse{Success: false, Error: err.Error()})
		return
	}

	client := twitter.NewClient(req.APIKey, req.APISecret, req.AccessToken, req.AccessSecret)

	ctx, cancel := context.WithTimeout(c.Request.Context(), externalCallTimeout)
	defer cancel()
	username, err := client.Verify(ctx)
	if err != nil {
		c.JSON(http.StatusBadRequest, ConnectResponse{Success: false, Error: "invalid twitter credentials"})
		return
	}

	if _, err := h.settings.UpdateTwitterCredentials(req.APIKey, req.APISecret, req.AccessToken, req.AccessSecret, username); err != nil {
		c.JSON(http.StatusInternalServerError, ConnectResponse{Success: false, Error: "failed to save credentials"})
		return
	}

	h.manager.ConfigureTwitter(client)
	c.JSON(http.StatusOK, ConnectResponse{Success: true, Username: username})
}

type OpenAIRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

// ConfigureOpenAI stores the key only after a live test generation proves
// it works.
func (h *BotHandler) ConfigureOpenAI(c *gin.Context) {
	var req OpenAIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	responder := services.NewResponderService(req.APIKey)

	ctx, cancel := context.WithTimeout(c.Request.Context(), externalCallTimeout)
	defer cancel()
	if _, err := responder.GenerateReply(ctx, "Test message", "testuser", models.ModeWitty); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid openai api key"})
		return
	}

	if _, err := h.settings.UpdateOpenAIKey(req.APIKey); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save api key"})
		return
	}

	h.manager.ConfigureResponder(responder)
	h.quizGen.Configure(req.APIKey)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type ToggleResponse struct {
	Active bool `json:"active"`
}

func (h *BotHandler) Toggle(c *gin.Context) {
	active, err := h.settings.ToggleActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to toggle bot status"})
		return
	}
	c.JSON(http.StatusOK, ToggleResponse{Active: active})
}

type GenerateRequest struct {
	TweetID string `json:"tweetId" binding:"required"`
	Mode    string `json:"mode"`
}

// Generate drafts (or re-drafts) a reply for a stored mention without
// posting it. When no mode is given the classifier picks one.
func (h *BotHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	mode := models.ResponseMode(req.Mode)
	if req.Mode != "" && !mode.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid response mode"})
		return
	}

	mention, err := h.mentions.GetByTweetID(req.TweetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load mention"})
		return
	}
	if mention == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "mention not found"})
		return
	}

	gen := h.manager.Responder()
	if gen == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "openai api key not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), externalCallTimeout)
	defer cancel()

	if req.Mode == "" {
		mode, _ = gen.DetectMode(ctx, mention.Content)
	}

	reply, err := gen.GenerateReply(ctx, mention.Content, mention.AuthorUsername, mode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to generate response"})
		return
	}

	mention, err = h.mentions.UpdateDraft(req.TweetID, reply, mode)
	if err != nil {
		c.JSON(errorStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(ws.Message{Type: "mention_updated", Data: mention})
	c.JSON(http.StatusOK, mention)
}

type RespondRequest struct {
	TweetID string `json:"tweetId" binding:"required"`
}

// Respond posts a mention's drafted reply to Twitter and moves the mention
// to sent (or failed, when posting errors).
func (h *BotHandler) Respond(c *gin.Context) {
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	mention, err := h.mentions.GetByTweetID(req.TweetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load mention"})
		return
	}
	if mention == nil || mention.ResponseContent == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "mention or response not found"})
		return
	}
	if mention.ResponseStatus == models.StatusSent {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "response already sent"})
		return
	}

	src := h.manager.Twitter()
	if src == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "twitter not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), externalCallTimeout)
	defer cancel()

	replyID, err := src.PostReply(ctx, req.TweetID, *mention.ResponseContent)
	if err != nil {
		mention, markErr := h.mentions.MarkFailed(req.TweetID)
		if markErr == nil {
			h.hub.Broadcast(ws.Message{Type: "mention_updated", Data: mention})
		}
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "failed to post response to twitter"})
		return
	}

	mention, err = h.mentions.MarkSent(req.TweetID, replyID)
	if err != nil {
		c.JSON(errorStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	stats, err := h.stats.Increment(*mention.ResponseMode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update stats"})
		return
	}

	h.hub.Broadcast(ws.Message{Type: "mention_updated", Data: mention})
	h.hub.Broadcast(ws.Message{Type: "stats_updated", Data: stats})
	c.JSON(http.StatusOK, mention)
}
