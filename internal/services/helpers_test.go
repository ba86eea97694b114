package services

import (
	"testing"

	"github.com/drsavage0/Twitter-Answer-me-bot/internal/database"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory database. Each call gets its own
// connection and therefore its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	database.AutoMigrate(db)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// createTestQuiz builds a quiz with one two-option question where the second
// option is correct.
func createTestQuiz(t *testing.T, db *gorm.DB, creatorID uint) *models.Quiz {
	t.Helper()

	svc := NewQuizService(db)
	quiz, err := svc.CreateQuiz(creatorID, "How well do you know me?", "Couples edition", true)
	require.NoError(t, err)

	_, err = svc.AddQuestion(quiz.ID, creatorID, QuestionInput{
		Text: "What is my favorite color?",
		Options: []OptionInput{
			{Text: "Red"},
			{Text: "Blue", IsCorrect: true},
		},
		Explanation: "It has always been blue.",
	})
	require.NoError(t, err)

	quiz, err = svc.GetQuiz(quiz.ID)
	require.NoError(t, err)
	return quiz
}
