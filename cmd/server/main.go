package main

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/drsavage0/Twitter-Answer-me-bot/internal/bot"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/config"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/database"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/handlers"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/middleware"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/services"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/twitter"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()

	authService := services.NewAuthService(db, cfg.JWTSecret)
	mentionService := services.NewMentionService(db)
	statsService := services.NewStatsService(db)
	settingsService := services.NewSettingsService(db)
	quizService := services.NewQuizService(db)
	playService := services.NewPlayService(db)
	quizGenService := services.NewQuizGenService(cfg.OpenAIAPIKey)

	pollSec, _ := strconv.Atoi(cfg.PollInterval)
	if pollSec <= 0 {
		pollSec = 60
	}
	manager := bot.NewManager(
		mentionService, statsService, settingsService, hub,
		time.Duration(pollSec)*time.Second,
	)

	if cfg.OpenAIAPIKey != "" {
		manager.ConfigureResponder(services.NewResponderService(cfg.OpenAIAPIKey))
	}
	seedTwitter(cfg, settingsService, manager)

	manager.Start()
	defer manager.Stop()

	authHandler := handlers.NewAuthHandler(authService)
	botHandler := handlers.NewBotHandler(mentionService, statsService, settingsService, quizGenService, manager, hub)
	quizHandler := handlers.NewQuizHandler(quizService, quizGenService)
	playHandler := handlers.NewPlayHandler(playService)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/ws", wsHandler.HandleWebSocket)

	api := r.Group("/api")
	{
		api.GET("/status", botHandler.Status)
		api.GET("/stats", botHandler.GetStats)
		api.GET("/mentions", botHandler.ListMentions)
		api.GET("/commands", botHandler.ListCommands)
		api.POST("/connect", botHandler.Connect)
		api.POST("/openai", botHandler.ConfigureOpenAI)
		api.POST("/toggle", botHandler.Toggle)
		api.POST("/generate", botHandler.Generate)
		api.POST("/respond", botHandler.Respond)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.GET("/:id", quizHandler.GetQuiz)
			quizzes.POST("/join", middleware.OptionalAuth(authService), playHandler.Join)
			quizzes.POST("/answer", playHandler.Answer)

			quizzes.POST("", middleware.JWTAuth(authService), quizHandler.CreateQuiz)
			quizzes.GET("/mine", middleware.JWTAuth(authService), quizHandler.MyQuizzes)
			quizzes.POST("/:id/questions", middleware.JWTAuth(authService), quizHandler.AddQuestions)
		}

		api.GET("/participants/:id", playHandler.GetParticipant)
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// seedTwitter connects the bot from environment credentials so a restart
// does not require re-entering keys in the dashboard.
func seedTwitter(cfg *config.Config, settings *services.SettingsService, manager *bot.Manager) {
	if cfg.TwitterAPIKey == "" || cfg.TwitterAPISecret == "" ||
		cfg.TwitterAccessToken == "" || cfg.TwitterAccessSecret == "" {
		return
	}

	client := twitter.NewClient(cfg.TwitterAPIKey, cfg.TwitterAPISecret, cfg.TwitterAccessToken, cfg.TwitterAccessSecret)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	username, err := client.Verify(ctx)
	if err != nil {
		log.Printf("twitter credentials from environment rejected: %v", err)
		return
	}

	if _, err := settings.UpdateTwitterCredentials(cfg.TwitterAPIKey, cfg.TwitterAPISecret, cfg.TwitterAccessToken, cfg.TwitterAccessSecret, username); err != nil {
		log.Printf("failed to save twitter credentials: %v", err)
		return
	}

	manager.ConfigureTwitter(client)
	log.Printf("twitter connected as @%s", username)
}
