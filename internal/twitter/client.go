package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dghubble/oauth1"
)

const apiBaseURL = "https://api.twitter.com/2"

// searchMinResults is the lower bound the recent-search endpoint accepts for
// max_results.
const searchMinResults = 10

// Client is a narrow Twitter v2 API client signed with OAuth 1.0a user
// context: verify credentials, search mentions, post replies.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
}

func NewClient(apiKey, apiSecret, accessToken, accessSecret string) *Client {
	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	httpClient.Timeout = 30 * time.Second

	return &Client{
		httpClient: httpClient,
		baseURL:    apiBaseURL,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("twitter: status %d: %s", resp.StatusCode, string(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}

// Verify checks the credentials against users/me and remembers the account's
// username for mention searches.
func (c *Client) Verify(ctx context.Context) (string, error) {
	var resp meResponse
	if err := c.get(ctx, "/users/me", nil, &resp); err != nil {
		return "", err
	}
	if resp.Data.ID == "" {
		return "", fmt.Errorf("twitter: empty user in verify response")
	}

	c.username = resp.Data.Username
	return c.username, nil
}

func (c *Client) Username() string {
	return c.username
}

// RecentMentions searches the most recent tweets mentioning the verified
// account, newest first as returned by the API.
func (c *Client) RecentMentions(ctx context.Context, count int) ([]Mention, error) {
	if c.username == "" {
		return nil, fmt.Errorf("twitter: client not verified")
	}
	if count < searchMinResults {
		count = searchMinResults
	}

	query := url.Values{}
	query.Set("query", "@"+c.username)
	query.Set("max_results", strconv.Itoa(count))
	query.Set("expansions", "author_id")
	query.Set("tweet.fields", "created_at")
	query.Set("user.fields", "name,username,profile_image_url")

	var resp searchResponse
	if err := c.get(ctx, "/tweets/search/recent", query, &resp); err != nil {
		return nil, err
	}

	users := make(map[string]apiUser, len(resp.Includes.Users))
	for _, u := range resp.Includes.Users {
		users[u.ID] = u
	}

	mentions := make([]Mention, 0, len(resp.Data))
	for _, t := range resp.Data {
		createdAt, err := time.Parse(time.RFC3339, t.CreatedAt)
		if err != nil {
			createdAt = time.Now()
		}

		author := users[t.AuthorID]
		mentions = append(mentions, Mention{
			TweetID:            t.ID,
			Text:               t.Text,
			CreatedAt:          createdAt,
			AuthorUsername:     author.Username,
			AuthorName:         author.Name,
			AuthorProfileImage: author.ProfileImageURL,
		})
	}
	return mentions, nil
}

// PostReply posts text as a reply to the given tweet and returns the new
// tweet's ID.
func (c *Client) PostReply(ctx context.Context, inReplyTo, text string) (string, error) {
	payload := createTweetRequest{
		Text:  text,
		Reply: &replyRef{InReplyToTweetID: inReplyTo},
	}

	var resp createTweetResponse
	if err := c.post(ctx, "/tweets", payload, &resp); err != nil {
		return "", err
	}
	if resp.Data.ID == "" {
		return "", fmt.Errorf("twitter: empty tweet in reply response")
	}
	return resp.Data.ID, nil
}
