package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/groupboard/groupboard/internal/config"
	"github.com/groupboard/groupboard/pkg/logger"
)

// MessageSender delivers a text message to a Telegram chat. Satisfied by
// TelegramClient; tests substitute their own.
type MessageSender interface {
	SendMessage(chatID int64, text string) error
}

// TelegramClient talks to the Telegram Bot API. Only sendMessage is needed:
// the bot pushes notifications, it does not receive updates here.
type TelegramClient struct {
	cfg    *config.TelegramConfig
	client *http.Client
}

func NewTelegramClient(cfg *config.TelegramConfig) *TelegramClient {
	return &TelegramClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// SendMessage posts a Markdown message to the chat. Telegram caps messages
// at 4096 chars; longer texts are split.
func (t *TelegramClient) SendMessage(chatID int64, text string) error {
	if !t.cfg.Enabled || t.cfg.Token == "" {
		logger.Debug().Int64("chat_id", chatID).Msg("telegram disabled, dropping message")
		return nil
	}

	for _, part := range splitMessage(text, maxMessageRunes) {
		if err := t.postSendMessage(chatID, part); err != nil {
			return err
		}
	}
	return nil
}

const maxMessageRunes = 4096

// splitMessage breaks text into chunks of at most max runes. Cutting mid-rune
// or mid-line produces text the Bot API rejects, so chunks break at the last
// newline inside the limit when one exists, and on a rune boundary otherwise.
func splitMessage(text string, max int) []string {
	runes := []rune(text)
	var parts []string
	for len(runes) > max {
		cut := max
		for i := max - 1; i > 0; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

func (t *TelegramClient) postSendMessage(chatID int64, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.cfg.APIBase, t.cfg.Token)
	resp, err := t.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("telegram API returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
