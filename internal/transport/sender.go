package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/GuyAfik/MrKnowledgeBot/pkg/logger"
)

// outboundMessage is the payload posted to the chat gateway.
type outboundMessage struct {
	ChatID   int64    `json:"chat_id"`
	Text     string   `json:"text"`
	Options  []string `json:"options,omitempty"`
	Binary   bool     `json:"binary,omitempty"`
	EditLast bool     `json:"edit_last,omitempty"`
}

// HTTPSender delivers outbound messages to the chat gateway's send
// endpoint. It implements the conversation Sender contract.
type HTTPSender struct {
	url        string
	token      string
	httpClient *http.Client
	logger     logger.Logger
}

// NewHTTPSender creates a sender posting to url, authenticating with
// token when non-empty.
func NewHTTPSender(url, token string, log logger.Logger) *HTTPSender {
	return &HTTPSender{
		url:   url,
		token: token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: log,
	}
}

func (s *HTTPSender) SendText(chatID int64, text string) error {
	return s.post(outboundMessage{ChatID: chatID, Text: text})
}

func (s *HTTPSender) SendChoice(chatID int64, text string, options []string) error {
	return s.post(outboundMessage{ChatID: chatID, Text: text, Options: options})
}

func (s *HTTPSender) SendBinaryChoice(chatID int64, text string) error {
	return s.post(outboundMessage{ChatID: chatID, Text: text, Options: []string{"Yes", "No"}, Binary: true})
}

func (s *HTTPSender) EditLastMessage(chatID int64, text string) error {
	return s.post(outboundMessage{ChatID: chatID, Text: text, EditLast: true})
}

func (s *HTTPSender) post(msg outboundMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode outbound message: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("X-Bot-Token", s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver message to chat %d: %w", msg.ChatID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("chat gateway rejected message for chat %d: status %d", msg.ChatID, resp.StatusCode)
	}
	s.logger.Debugf("[Transport] delivered message to chat %d", msg.ChatID)
	return nil
}
