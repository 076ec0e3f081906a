package notification

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

	"lace-store/internal/domain"
)

// ErrNoBotToken is returned when a Telegram call is attempted without a token
var ErrNoBotToken = errors.New("telegram bot token is not configured")

// TelegramClient calls the Telegram Bot API
type TelegramClient struct {
	baseURL string
	http    *http.Client
}

// NewTelegramClient creates a client for the Bot API at baseURL (https://api.telegram.org in production)
func NewTelegramClient(baseURL string, timeout time.Duration) *TelegramClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TelegramClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type sendMessageRequest struct {
	ChatID          string `json:"chat_id"`
	Text            string `json:"text"`
	ParseMode       string `json:"parse_mode"`
	MessageThreadID int    `json:"message_thread_id,omitempty"`
}

// SendMessage posts an HTML message to a chat, or to a forum thread when threadID is set
func (c *TelegramClient) SendMessage(ctx context.Context, token, chatID string, threadID int, text string) error {
	if token == "" {
		return ErrNoBotToken
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:          chatID,
		Text:            text,
		ParseMode:       "HTML",
		MessageThreadID: threadID,
	})
	if err != nil {
		return fmt.Errorf("failed to encode telegram message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(token, "sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

type telegramChat struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Username string `json:"username"`
	First    string `json:"first_name"`
	Type     string `json:"type"`
}

type telegramMessage struct {
	Chat            telegramChat `json:"chat"`
	MessageThreadID int          `json:"message_thread_id"`
	IsTopicMessage  bool         `json:"is_topic_message"`
}

type telegramUpdate struct {
	Message      *telegramMessage `json:"message"`
	ChannelPost  *telegramMessage `json:"channel_post"`
	MyChatMember *telegramMessage `json:"my_chat_member"`
}

type getUpdatesResponse struct {
	OK          bool             `json:"ok"`
	Description string           `json:"description"`
	Result      []telegramUpdate `json:"result"`
}

// GetUpdates reads pending bot updates and returns the distinct chats they came from.
// Returned chats are inactive and unsubscribed until an admin enables them.
func (c *TelegramClient) GetUpdates(ctx context.Context, token string) ([]domain.TelegramChat, error) {
	if token == "" {
		return nil, ErrNoBotToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.methodURL(token, "getUpdates"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build telegram request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram getUpdates failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("telegram API returned status %d: %s", resp.StatusCode, string(body))
	}

	var updates getUpdatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&updates); err != nil {
		return nil, fmt.Errorf("failed to decode telegram updates: %w", err)
	}
	if !updates.OK {
		return nil, fmt.Errorf("telegram getUpdates rejected: %s", updates.Description)
	}

	seen := make(map[string]bool)
	chats := []domain.TelegramChat{}
	for _, u := range updates.Result {
		for _, m := range []*telegramMessage{u.Message, u.ChannelPost, u.MyChatMember} {
			if m == nil || m.Chat.ID == 0 {
				continue
			}
			chat := toDomainChat(m)
			key := chat.ChatID + "/" + strconv.Itoa(chat.ThreadID)
			if seen[key] {
				continue
			}
			seen[key] = true
			chats = append(chats, chat)
		}
	}
	return chats, nil
}

func (c *TelegramClient) methodURL(token, method string) string {
	return c.baseURL + "/bot" + token + "/" + method
}

func toDomainChat(m *telegramMessage) domain.TelegramChat {
	chat := domain.TelegramChat{
		ChatID: strconv.FormatInt(m.Chat.ID, 10),
		Title:  m.Chat.Title,
	}
	if chat.Title == "" {
		chat.Title = m.Chat.First
		if m.Chat.Username != "" {
			chat.Title = strings.TrimSpace(chat.Title + " @" + m.Chat.Username)
		}
	}

	switch m.Chat.Type {
	case "private":
		chat.Type = domain.ChatPersonal
	case "channel":
		chat.Type = domain.ChatChannel
	default:
		chat.Type = domain.ChatGroup
		if m.IsTopicMessage && m.MessageThreadID != 0 {
			chat.Type = domain.ChatThread
			chat.ThreadID = m.MessageThreadID
		}
	}
	return chat
}
