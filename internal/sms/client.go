package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redmonkez12/library-api/internal/logging"
)

// ErrRejected is returned when the gateway answers but refuses the message.
var ErrRejected = errors.New("sms gateway rejected the message")

// Sender delivers a text message to one phone number.
type Sender interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

// Config holds the gateway credentials. Both APIKey and LineNumber are
// required.
type Config struct {
	BaseURL    string
	APIKey     string
	LineNumber string
	Timeout    time.Duration
}

// Client sends messages through an sms.ir style bulk endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	lineNumber int64
	httpClient *http.Client
}

type bulkRequest struct {
	LineNumber  int64    `json:"lineNumber"`
	MessageText string   `json:"messageText"`
	Mobiles     []string `json:"mobiles"`
}

type bulkResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    struct {
		PackID     string  `json:"packId"`
		MessageIDs []int64 `json:"messageIds"`
		Cost       float64 `json:"cost"`
	} `json:"data"`
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sms api key is required")
	}
	lineNumber, err := strconv.ParseInt(cfg.LineNumber, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("sms line number must be numeric: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		lineNumber: lineNumber,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Send posts message to the bulk endpoint for a single recipient.
func (c *Client) Send(ctx context.Context, phoneNumber, message string) error {
	logger := logging.GetLoggerFromContext(ctx)

	body, err := json.Marshal(bulkRequest{
		LineNumber:  c.lineNumber,
		MessageText: message,
		Mobiles:     []string{phoneNumber},
	})
	if err != nil {
		return fmt.Errorf("encode sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send/bulk", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send sms request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("read sms response: %w", err)
	}

	var out bulkResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("sms gateway returned status %d: %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || out.Status != 1 {
		logger.Warn("sms gateway rejected message",
			"http_status", resp.StatusCode,
			"gateway_status", out.Status,
			"gateway_message", out.Message,
		)
		return fmt.Errorf("%w: status %d: %s", ErrRejected, out.Status, out.Message)
	}

	logger.Info("sms sent", "pack_id", out.Data.PackID)
	return nil
}

// LogSender writes messages to the log instead of delivering them. It is
// used in development when no gateway credentials are configured.
type LogSender struct {
	logger *logging.Logger
}

func NewLogSender(logger *logging.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, phoneNumber, message string) error {
	s.logger.Info("sms not sent (log sender)", "phone_number", phoneNumber, "message", message)
	return nil
}
