package linemsg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// BaseURL is the LINE Messaging API base URL.
	BaseURL = "https://api.line.me"
)

// Client is a minimal HTTP client for the LINE Messaging API.
type Client struct {
	httpClient   *http.Client
	channelToken string
	debug        bool
}

// NewClient constructs a new LINE client with sane defaults.
func NewClient(channelToken string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		channelToken: channelToken,
		debug:        os.Getenv("ENV") == "development",
	}
}

// PushText sends one text message to a single LINE user.
func (c *Client) PushText(ctx context.Context, lineUserID, text string) error {
	req := PushRequest{
		To:       lineUserID,
		Messages: []Message{{Type: "text", Text: text}},
	}
	return c.doRequest(ctx, "/v2/bot/message/push", req)
}

// BroadcastText sends one text message to every friend of the bot.
func (c *Client) BroadcastText(ctx context.Context, text string) error {
	req := BroadcastRequest{
		Messages: []Message{{Type: "text", Text: text}},
	}
	return c.doRequest(ctx, "/v2/bot/message/broadcast", req)
}

// ReplyText answers a webhook event using its reply token.
func (c *Client) ReplyText(ctx context.Context, replyToken, text string) error {
	req := ReplyRequest{
		ReplyToken: replyToken,
		Messages:   []Message{{Type: "text", Text: text}},
	}
	return c.doRequest(ctx, "/v2/bot/message/reply", req)
}

// GetProfile fetches the display profile of a LINE user.
func (c *Client) GetProfile(ctx context.Context, lineUserID string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BaseURL+"/v2/bot/profile/"+lineUserID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.channelToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("line api status %d: %s", resp.StatusCode, string(respBody))
	}

	var profile Profile
	if err := json.Unmarshal(respBody, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &profile, nil
}

// doRequest performs the HTTP POST to the LINE API with JSON payloads.
// LINE returns 200 with an empty object on success.
func (c *Client) doRequest(ctx context.Context, endpoint string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", BaseURL+endpoint).
			RawJSON("request", payload).
			Msg("[LINE] Outgoing request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, BaseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.channelToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Msg("[LINE] Incoming response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("line api status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
