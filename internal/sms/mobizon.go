package sms

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
)

const defaultMobizonURL = "https://api.mobizon.kz/service/message/sendsmsmessage"

type MobizonClient struct {
	APIKey  string
	Sender  string // опционально
	DryRun  bool   // dry-run режим
	BaseURL string // для тестов; пусто — боевой URL
}

type mobizonResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		MessageID string `json:"messageId"`
	} `json:"data"`
}

func NewMobizonClient(apiKey, sender string, dryRun bool) *MobizonClient {
	return &MobizonClient{APIKey: apiKey, Sender: sender, DryRun: dryRun}
}

// Send — отправка кода через Mobizon (или имитация в dry-run).
// Успех у Mobizon — это code == 0 в теле ответа.
func (c *MobizonClient) Send(to, code string) (string, error) {
	// DRY-RUN: не делаем HTTP-запрос
	if c.DryRun || c.APIKey == "" || c.APIKey == "dry-run" {
		log.Printf("[mobizon][dry-run] to=%s sender=%q code=%s", to, c.Sender, code)
		return "dry-run", nil
	}

	text := fmt.Sprintf("Проверочный код для регистрации на сайте iSPARK.kz: %s", code)

	apiURL := c.BaseURL
	if apiURL == "" {
		apiURL = defaultMobizonURL
	}

	form := url.Values{
		"apiKey":    {c.APIKey},
		"recipient": {to},
		"text":      {text},
	}
	if c.Sender != "" {
		form.Set("from", c.Sender)
	}

	resp, err := http.PostForm(apiURL, form)
	if err != nil {
		return "", fmt.Errorf("send SMS request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result mobizonResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if result.Code != 0 {
		msg := result.Message
		if msg == "" {
			msg = "Ошибка при отправке SMS"
		}
		return "", fmt.Errorf("mobizon error code=%d: %s", result.Code, msg)
	}
	log.Printf("[mobizon][send] ok: to=%s messageID=%s", to, result.Data.MessageID)
	return result.Data.MessageID, nil
}
