package twitter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("k", "s", "at", "as")
	client.baseURL = server.URL
	return client
}

func TestVerify(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":{"id":"42","username":"answerthembot","name":"Answer Them"}}`))
	}))

	username, err := client.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "answerthembot", username)
	assert.Equal(t, "answerthembot", client.Username())
}

func TestVerifyRejectedCredentials(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"title":"Unauthorized"}`))
	}))

	_, err := client.Verify(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestRecentMentions(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/me":
			w.Write([]byte(`{"data":{"id":"42","username":"answerthembot"}}`))
		case "/tweets/search/recent":
			q := r.URL.Query()
			assert.Equal(t, "@answerthembot", q.Get("query"))
			// The endpoint rejects max_results below 10.
			assert.Equal(t, "10", q.Get("max_results"))
			assert.Equal(t, "author_id", q.Get("expansions"))

			w.Write([]byte(`{
				"data": [
					{"id":"t1","text":"roast me","author_id":"u1","created_at":"2026-08-20T10:00:00Z"},
					{"id":"t2","text":"bad date","author_id":"u2","created_at":"not-a-date"}
				],
				"includes": {"users": [
					{"id":"u1","name":"User One","username":"userone","profile_image_url":"https://example.com/1.jpg"}
				]}
			}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	_, err := client.Verify(context.Background())
	require.NoError(t, err)

	mentions, err := client.RecentMentions(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, mentions, 2)

	assert.Equal(t, "t1", mentions[0].TweetID)
	assert.Equal(t, "roast me", mentions[0].Text)
	assert.Equal(t, "userone", mentions[0].AuthorUsername)
	assert.Equal(t, "User One", mentions[0].AuthorName)
	assert.Equal(t, "https://example.com/1.jpg", mentions[0].AuthorProfileImage)
	assert.Equal(t, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC), mentions[0].CreatedAt.UTC())

	// Unknown author and unparseable timestamp degrade instead of failing.
	assert.Empty(t, mentions[1].AuthorUsername)
	assert.WithinDuration(t, time.Now(), mentions[1].CreatedAt, time.Minute)
}

func TestRecentMentionsRequiresVerify(t *testing.T) {
	client := NewClient("k", "s", "at", "as")
	_, err := client.RecentMentions(context.Background(), 10)
	assert.Error(t, err)
}

func TestPostReply(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tweets", r.URL.Path)

		var req createTweetRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a witty reply", req.Text)
		require.NotNil(t, req.Reply)
		assert.Equal(t, "t1", req.Reply.InReplyToTweetID)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"r1","text":"a witty reply"}}`))
	}))

	id, err := client.PostReply(context.Background(), "t1", "a witty reply")
	require.NoError(t, err)
	assert.Equal(t, "r1", id)
}

func TestPostReplyFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"title":"Forbidden"}`))
	}))

	_, err := client.PostReply(context.Background(), "t1", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}
