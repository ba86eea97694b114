package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/drsavage0/Twitter-Answer-me-bot/internal/database"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/models"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/services"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/twitter"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTwitter struct {
	mentions []twitter.Mention
	fetchErr error
	postErr  error
	posted   []string
	replyID  string
}

func (f *fakeTwitter) RecentMentions(ctx context.Context, count int) ([]twitter.Mention, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.mentions, nil
}

func (f *fakeTwitter) PostReply(ctx context.Context, inReplyTo, text string) (string, error) {
	if f.postErr != nil {
		return "", f.postErr
	}
	f.posted = append(f.posted, inReplyTo)
	if f.replyID != "" {
		return f.replyID, nil
	}
	return "reply-" + inReplyTo, nil
}

type fakeResponder struct {
	mode   models.ResponseMode
	reply  string
	genErr map[string]error // keyed by mention content
}

func (f *fakeResponder) DetectMode(ctx context.Context, content string) (models.ResponseMode, float64) {
	if f.mode == "" {
		return models.ModeWitty, 0.5
	}
	return f.mode, 0.9
}

func (f *fakeResponder) GenerateReply(ctx context.Context, content, author string, mode models.ResponseMode) (string, error) {
	if err := f.genErr[content]; err != nil {
		return "", err
	}
	if f.reply != "" {
		return f.reply, nil
	}
	return "witty reply to " + author, nil
}

type managerFixture struct {
	manager  *Manager
	mentions *services.MentionService
	stats    *services.StatsService
	settings *services.SettingsService
}

func newManagerFixture(t *testing.T) *managerFixture {
	t.Helper()

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	database.AutoMigrate(db)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	mentions := services.NewMentionService(db)
	stats := services.NewStatsService(db)
	settings := services.NewSettingsService(db)
	manager := NewManager(mentions, stats, settings, ws.NewHub(), time.Minute)

	return &managerFixture{
		manager:  manager,
		mentions: mentions,
		stats:    stats,
		settings: settings,
	}
}

func (f *managerFixture) activate(t *testing.T) {
	t.Helper()
	active, err := f.settings.ToggleActive()
	require.NoError(t, err)
	require.True(t, active)
}

func tweet(id, text string) twitter.Mention {
	return twitter.Mention{
		TweetID:        id,
		Text:           text,
		CreatedAt:      time.Now(),
		AuthorUsername: "someuser",
		AuthorName:     "Some User",
	}
}

func TestPollSkipsWhenInactive(t *testing.T) {
	f := newManagerFixture(t)
	src := &fakeTwitter{mentions: []twitter.Mention{tweet("t1", "hello")}}
	f.manager.ConfigureTwitter(src)

	f.manager.pollOnce(context.Background())

	stored, err := f.mentions.GetRecent(0)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestPollSkipsWithoutTwitter(t *testing.T) {
	f := newManagerFixture(t)
	f.activate(t)

	// No client configured; must be a no-op rather than a panic.
	f.manager.pollOnce(context.Background())
	assert.False(t, f.manager.TwitterConfigured())
}

func TestPollFetchFailureLeavesStoreUntouched(t *testing.T) {
	f := newManagerFixture(t)
	f.activate(t)

	src := &fakeTwitter{fetchErr: errors.New("twitter: status 429")}
	f.manager.ConfigureTwitter(src)
	f.manager.ConfigureResponder(&fakeResponder{})

	f.manager.pollOnce(context.Background())

	stored, err := f.mentions.GetRecent(0)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestPollIngestsDraftsAndPosts(t *testing.T) {
	f := newManagerFixture(t)
	f.activate(t)

	src := &fakeTwitter{mentions: []twitter.Mention{
		tweet("t1", "roast my code"),
		tweet("t2", "what do you think"),
	}}
	f.manager.ConfigureTwitter(src)
	f.manager.ConfigureResponder(&fakeResponder{mode: models.ModeRoast})

	f.manager.pollOnce(context.Background())

	stored, err := f.mentions.GetRecent(0)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, m := range stored {
		assert.Equal(t, models.StatusSent, m.ResponseStatus)
		require.NotNil(t, m.ResponseContent)
		assert.Equal(t, "witty reply to someuser", *m.ResponseContent)
		assert.Equal(t, models.ModeRoast, *m.ResponseMode)
		require.NotNil(t, m.ResponseID)
	}
	assert.Equal(t, []string{"t1", "t2"}, src.posted)

	stats, err := f.stats.Get()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalResponses)
	assert.Equal(t, 2, stats.RoastCount)
}

func TestPollDeduplicatesAcrossRuns(t *testing.T) {
	f := newManagerFixture(t)
	f.activate(t)

	src := &fakeTwitter{mentions: []twitter.Mention{tweet("t1", "hello")}}
	f.manager.ConfigureTwitter(src)
	f.manager.ConfigureResponder(&fakeResponder{})

	f.manager.pollOnce(context.Background())
	f.manager.pollOnce(context.Background())

	stored, err := f.mentions.GetRecent(0)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Len(t, src.posted, 1)

	stats, err := f.stats.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalResponses)
}

func TestPollPostFailureMarksFailed(t *testing.T) {
	f := newManagerFixture(t)
	f.activate(t)

	src := &fakeTwitter{
		mentions: []twitter.Mention{tweet("t1", "hello")},
		postErr:  errors.New("twitter: status 403"),
	}
	f.manager.ConfigureTwitter(src)
	f.manager.ConfigureResponder(&fakeResponder{})

	f.manager.pollOnce(context.Background())

	m, err := f.mentions.GetByTweetID("t1")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, models.StatusFailed, m.ResponseStatus)
	require.NotNil(t, m.ResponseContent)

	// A failed post never counts toward the stats.
	stats, err := f.stats.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalResponses)
}

func TestPollGenerateFailureLeavesPending(t *testing.T) {
	f := newManagerFixture(t)
	f.activate(t)

	src := &fakeTwitter{mentions: []twitter.Mention{
		tweet("t1", "broken one"),
		tweet("t2", "fine one"),
	}}
	f.manager.ConfigureTwitter(src)
	f.manager.ConfigureResponder(&fakeResponder{
		genErr: map[string]error{"broken one": errors.New("reply generation: rate limited")},
	})

	f.manager.pollOnce(context.Background())

	// The failed mention is stored draftless and stays pending.
	m1, err := f.mentions.GetByTweetID("t1")
	require.NoError(t, err)
	require.NotNil(t, m1)
	assert.Equal(t, models.StatusPending, m1.ResponseStatus)
	assert.Nil(t, m1.ResponseContent)

	// The other mention in the same batch still went through.
	m2, err := f.mentions.GetByTweetID("t2")
	require.NoError(t, err)
	require.NotNil(t, m2)
	assert.Equal(t, models.StatusSent, m2.ResponseStatus)
}

func TestPollWithoutResponderStoresPending(t *testing.T) {
	f := newManagerFixture(t)
	f.activate(t)

	src := &fakeTwitter{mentions: []twitter.Mention{tweet("t1", "hello")}}
	f.manager.ConfigureTwitter(src)

	f.manager.pollOnce(context.Background())

	m, err := f.mentions.GetByTweetID("t1")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, models.StatusPending, m.ResponseStatus)
	assert.Nil(t, m.ResponseContent)
	assert.Empty(t, src.posted)
}
