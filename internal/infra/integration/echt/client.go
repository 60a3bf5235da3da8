// Package echt wraps the echt.im messaging gateway. One documented auth
// scheme: the API token always travels as a Bearer header, never in the body.
package echt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://echt.im"

// countryCode is prefixed onto bare 10-digit subscriber numbers.
const countryCode = "91"

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			// messaging APIs can be slow
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Configured() bool {
	return c.token != ""
}

// SendMessage issues a single POST to the gateway. No retry: the caller
// decides whether a failed send is fatal to its own action.
func (c *Client) SendMessage(ctx context.Context, input SendMessageInput) error {
	if c.token == "" {
		log.Println("⚠️ echt.im: API token not configured, dropping outbound message")
		return fmt.Errorf("echt.im client not configured")
	}

	payload := sendRequest{
		Phone:   input.Phone,
		Message: input.Message,
	}
	if input.MediaURL != "" {
		payload.MediaURL = &input.MediaURL
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := c.baseURL + "/api/v1/message"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ echt.im: send to %s failed: %v", input.Phone, err)
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("❌ echt.im: API returned status %d: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("echt.im api error: %d", resp.StatusCode)
	}

	var result sendResponse
	if err := json.Unmarshal(respBody, &result); err == nil && result.Error != "" {
		return fmt.Errorf("echt.im: %s", result.Error)
	}

	return nil
}

// SendText is the common case: body only, no attachment. The destination is
// normalized here so every call site gets the same canonical number.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	return c.SendMessage(ctx, SendMessageInput{
		Phone:   FormatPhoneNumber(to),
		Message: body,
	})
}

// FormatPhoneNumber reduces a phone to a canonical digit string with the
// country code prefixed. A number already carrying the code passes through;
// otherwise the trailing 10 digits are taken as the subscriber number.
func (c *Client) FormatPhoneNumber(phone string) string {
	return FormatPhoneNumber(phone)
}

func FormatPhoneNumber(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	if strings.HasPrefix(cleaned, countryCode) && len(cleaned) >= 12 {
		return cleaned
	}
	if len(cleaned) >= 10 {
		return countryCode + cleaned[len(cleaned)-10:]
	}

	// too short to format, hand back the digits we have
	return cleaned
}
