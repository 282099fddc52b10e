package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client habla con el servicio de chatbot de terceros. El timeout es
// agresivo a propósito: si el bot se cae, la UI no puede quedarse colgada.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		BaseURL:    baseURL,
	}
}

type MessageInput struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type MessageOutput struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id,omitempty"`
}

func (c *Client) SendMessage(ctx context.Context, input MessageInput) (*MessageOutput, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/message", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chatbot respondió %d: %s", resp.StatusCode, string(body))
	}

	var output MessageOutput
	if err := json.Unmarshal(body, &output); err != nil {
		return nil, err
	}

	return &output, nil
}
