package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"GardenBot/internal/domain"
	"GardenBot/internal/ports"
)

// Notifier publishes posts to a channel via the Bot API.
type Notifier struct {
	botToken string
	apiURL   string
	client   *http.Client
}

var _ ports.Publisher = (*Notifier)(nil)

// NewNotifier registers the bot token. An empty apiURL means api.telegram.org.
func NewNotifier(botToken, apiURL string, client *http.Client) *Notifier {
	if apiURL == "" {
		apiURL = "https://api.telegram.org"
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Notifier{
		botToken: botToken,
		apiURL:   strings.TrimRight(apiURL, "/"),
		client:   client,
	}
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// SendText posts a text message.
func (n *Notifier) SendText(ctx context.Context, channel, text, parseMode string) error {
	payload := map[string]any{
		"chat_id":                  channel,
		"text":                     text,
		"disable_web_page_preview": false,
	}
	if parseMode != "" {
		payload["parse_mode"] = parseMode
	}
	return n.call(ctx, "sendMessage", payload)
}

// SendPhoto posts a photo by URL with a caption.
func (n *Notifier) SendPhoto(ctx context.Context, channel, imageURL, caption, parseMode string) error {
	payload := map[string]any{
		"chat_id": channel,
		"photo":   imageURL,
		"caption": caption,
	}
	if parseMode != "" {
		payload["parse_mode"] = parseMode
	}
	return n.call(ctx, "sendPhoto", payload)
}

func (n *Notifier) call(ctx context.Context, method string, payload map[string]any) error {
	if n.botToken == "" || n.client == nil {
		return &domain.TransportError{Method: method, Description: "notifier misconfigured"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return &domain.TransportError{Method: method, Err: fmt.Errorf("marshal payload: %w", err)}
	}

	endpoint := fmt.Sprintf("%s/bot%s/%s", n.apiURL, n.botToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &domain.TransportError{Method: method, Err: fmt.Errorf("new request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return &domain.TransportError{Method: method, Err: redactToken(err, n.botToken)}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var decoded apiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return &domain.TransportError{Method: method, Description: fmt.Sprintf("status %d: undecodable response", resp.StatusCode)}
	}
	if !decoded.OK || resp.StatusCode != http.StatusOK {
		desc := decoded.Description
		if desc == "" {
			desc = resp.Status
		}
		return &domain.TransportError{Method: method, Description: desc}
	}
	return nil
}

// redactToken keeps the bot token out of logged URL errors.
func redactToken(err error, token string) error {
	msg := err.Error()
	if token == "" || !strings.Contains(msg, token) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(msg, token, "<token>"))
}
