package bot

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/drsavage0/Twitter-Answer-me-bot/internal/models"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/services"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/twitter"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/ws"
)

// MentionSource is the slice of the Twitter client the poller needs.
type MentionSource interface {
	RecentMentions(ctx context.Context, count int) ([]twitter.Mention, error)
	PostReply(ctx context.Context, inReplyTo, text string) (string, error)
}

// ReplyGenerator is the slice of the responder the poller needs.
type ReplyGenerator interface {
	DetectMode(ctx context.Context, content string) (models.ResponseMode, float64)
	GenerateReply(ctx context.Context, content, author string, mode models.ResponseMode) (string, error)
}

// Manager runs the mention-ingestion loop. The Twitter and responder clients
// are swapped in at runtime when the operator connects credentials.
type Manager struct {
	mentions     *services.MentionService
	stats        *services.StatsService
	settings     *services.SettingsService
	hub          *ws.Hub
	pollInterval time.Duration
	fetchCount   int
	callTimeout  time.Duration

	mu        sync.RWMutex
	twitter   MentionSource
	responder ReplyGenerator

	stopCh chan struct{}
}

func NewManager(
	mentions *services.MentionService,
	stats *services.StatsService,
	settings *services.SettingsService,
	hub *ws.Hub,
	pollInterval time.Duration,
) *Manager {
	return &Manager{
		mentions:     mentions,
		stats:        stats,
		settings:     settings,
		hub:          hub,
		pollInterval: pollInterval,
		fetchCount:   10,
		callTimeout:  30 * time.Second,
		stopCh:       make(chan struct{}),
	}
}

func (m *Manager) ConfigureTwitter(src MentionSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.twitter = src
}

func (m *Manager) ConfigureResponder(gen ReplyGenerator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responder = gen
}

func (m *Manager) Twitter() MentionSource {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.twitter
}

func (m *Manager) Responder() ReplyGenerator {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.responder
}

func (m *Manager) TwitterConfigured() bool {
	return m.Twitter() != nil
}

func (m *Manager) Start() {
	go m.loop()
	log.Println("[poller] started")
}

func (m *Manager) Stop() {
	close(m.stopCh)
	log.Println("[poller] stopped")
}

func (m *Manager) loop() {
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.pollOnce(context.Background())
		}
	}
}

// pollOnce runs a single ingestion pass. It never aborts the loop: every
// failure is logged and left for the next interval.
func (m *Manager) pollOnce(ctx context.Context) {
	settings, err := m.settings.Get()
	if err != nil {
		log.Printf("[poller] load settings: %v", err)
		return
	}
	if !settings.BotActive {
		return
	}

	src := m.Twitter()
	if src == nil {
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
	tweets, err := src.RecentMentions(fetchCtx, m.fetchCount)
	cancel()
	if err != nil {
		log.Printf("[poller] fetch mentions: %v", err)
		return
	}

	for _, t := range tweets {
		if err := m.processMention(ctx, src, t, settings.BotActive); err != nil {
			log.Printf("[poller] mention %s: %v", t.TweetID, err)
		}
	}
}

// processMention drives one tweet through the state machine: persist as
// pending, draft a reply, optionally post it. A tweet already in the store
// is skipped entirely, so sent and failed mentions stay terminal.
func (m *Manager) processMention(ctx context.Context, src MentionSource, t twitter.Mention, autoPost bool) error {
	existing, err := m.mentions.GetByTweetID(t.TweetID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	mention, err := m.mentions.Create(services.CreateMentionInput{
		TweetID:            t.TweetID,
		AuthorUsername:     t.AuthorUsername,
		AuthorName:         t.AuthorName,
		AuthorProfileImage: t.AuthorProfileImage,
		Content:            t.Text,
		CreatedAt:          t.CreatedAt,
	})
	if err != nil {
		return err
	}
	m.hub.Broadcast(ws.Message{Type: "mention_created", Data: mention})

	gen := m.Responder()
	if gen == nil {
		return nil
	}

	classifyCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
	mode, _ := gen.DetectMode(classifyCtx, t.Text)
	cancel()

	genCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
	reply, err := gen.GenerateReply(genCtx, t.Text, t.AuthorUsername, mode)
	cancel()
	if err != nil {
		// Leave the mention draftless; the operator can retry via the
		// manual generate endpoint.
		log.Printf("[poller] generate for %s: %v", t.TweetID, err)
		return nil
	}

	mention, err = m.mentions.UpdateDraft(t.TweetID, reply, mode)
	if err != nil {
		return err
	}
	m.hub.Broadcast(ws.Message{Type: "mention_updated", Data: mention})

	if !autoPost {
		return nil
	}

	postCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
	replyID, err := src.PostReply(postCtx, t.TweetID, reply)
	cancel()
	if err != nil {
		log.Printf("[poller] post reply to %s: %v", t.TweetID, err)
		mention, err = m.mentions.MarkFailed(t.TweetID)
		if err != nil {
			return err
		}
		m.hub.Broadcast(ws.Message{Type: "mention_updated", Data: mention})
		return nil
	}

	mention, err = m.mentions.MarkSent(t.TweetID, replyID)
	if err != nil {
		return err
	}
	stats, err := m.stats.Increment(mode)
	if err != nil {
		return err
	}
	m.hub.Broadcast(ws.Message{Type: "mention_updated", Data: mention})
	m.hub.Broadcast(ws.Message{Type: "stats_updated", Data: stats})
	return nil
}
