package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

// TelegramService — служебные алерты бэк-офису в общий чат.
type TelegramService struct {
	token     string
	opsChatID int64
	baseURL   string
	client    *http.Client
}

func NewTelegramService(botToken string, opsChatID int64) *TelegramService {
	return &TelegramService{
		token:     botToken,
		opsChatID: opsChatID,
		baseURL:   fmt.Sprintf("https://api.telegram.org/bot%s", botToken),
		client:    &http.Client{},
	}
}

type tgResp struct {
	Ok          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

func (t *TelegramService) SendOpsMessage(text string) error {
	if t == nil || t.token == "" || t.opsChatID == 0 {
		log.Printf("[tg][skip] token or chatID empty (token? %v chatID=%d)", t != nil && t.token != "", t.opsChatID)
		return nil
	}
	body := map[string]any{
		"chat_id":                  t.opsChatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	b, _ := json.Marshal(body)
	url := t.baseURL + "/sendMessage"
	req, _ := http.NewRequest("POST", url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		log.Printf("[tg][send][err] http: %v", err)
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var api tgResp
	_ = json.Unmarshal(respBody, &api)
	if resp.StatusCode != 200 || !api.Ok {
		return fmt.Errorf("telegram sendMessage failed: status=%d ok=%v desc=%s", resp.StatusCode, api.Ok, api.Description)
	}
	return nil
}
