package whatsapp

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the WhatsApp bridge, a separately operated process
// exposing the QR pairing payload, a connection status flag and message
// sending over plain HTTP.
type Client struct {
	BaseURL    string
	Username   string
	Password   string
	HTTPClient *http.Client
}

type SendMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type SendMessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		MessageID string `json:"message_id"`
		Status    string `json:"status"`
	} `json:"data"`
}

type QRResponse struct {
	QR string `json:"qr"`
}

type StatusResponse struct {
	Connected bool `json:"connected"`
}

type WebhookMessage struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	From    string `json:"from"`
	Time    string `json:"time"`
}

func NewClient(baseURL, username, password string) *Client {
	return &Client{
		BaseURL:  baseURL,
		Username: username,
		Password: password,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Convert local 0-prefixed phone numbers to the 54xxx wire format
func (c *Client) convertPhoneNumber(phone string) string {
	if strings.HasPrefix(phone, "0") {
		return "54" + phone[1:]
	}
	return phone
}

func (c *Client) do(method, url string, body io.Reader, out interface{}) error {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Username != "" {
		auth := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
		req.Header.Set("Authorization", "Basic "+auth)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("bridge returned %d: %s", resp.StatusCode, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// QR fetches the current pairing QR payload for the dashboard to render.
func (c *Client) QR() (*QRResponse, error) {
	var out QRResponse
	if err := c.do(http.MethodGet, c.BaseURL+"/api/qr", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Status reports whether the bridge holds a live WhatsApp connection.
func (c *Client) Status() (*StatusResponse, error) {
	var out StatusResponse
	if err := c.do(http.MethodGet, c.BaseURL+"/api/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage relays an outbound message through the bridge.
func (c *Client) SendMessage(phone, message string) (*SendMessageResponse, error) {
	payload := SendMessageRequest{
		Phone:   c.convertPhoneNumber(phone) + "@s.whatsapp.net",
		Message: message,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request data: %w", err)
	}

	var out SendMessageResponse
	if err := c.do(http.MethodPost, c.BaseURL+"/api/send/message", bytes.NewBuffer(jsonData), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
