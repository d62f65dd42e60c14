package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Telegram posts contact-form messages to the Telegram bot API. This is a
// fire-and-forget side effect: one attempt, no retry, no state.
type Telegram struct {
	BotToken string
	ChatID   string

	http *http.Client
	log  zerolog.Logger
}

func NewTelegram(botToken, chatID string, log zerolog.Logger) *Telegram {
	return &Telegram{
		BotToken: botToken,
		ChatID:   chatID,
		http:     &http.Client{},
		log:      log,
	}
}

// Enabled reports whether the webhook is configured.
func (t *Telegram) Enabled() bool { return t.BotToken != "" && t.ChatID != "" }

// Send formats and posts one contact message.
func (t *Telegram) Send(ctx context.Context, name, phone, message string) error {
	text := fmt.Sprintf(
		"🔔 *Yangi xabar LUXE Fashion dan!*\n\n"+
			"👤 *Ism:* %s\n📱 *Telefon:* %s\n💬 *Xabar:* %s\n\n"+
			"⏰ *Vaqt:* %s\n📍 *Sayt:* luxefashion.uz",
		name, phone, message, time.Now().Format("02.01.2006 15:04"),
	)

	body, err := json.Marshal(map[string]any{
		"chat_id":                  t.ChatID,
		"text":                     text,
		"parse_mode":               "Markdown",
		"disable_web_page_preview": true,
	})
	if err != nil {
		return err
	}

	url := "https://api.telegram.org/bot" + t.BotToken + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram send: status %d", resp.StatusCode)
	}
	return nil
}
