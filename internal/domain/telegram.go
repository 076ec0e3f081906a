package domain

// ChatType describes a Telegram destination
type ChatType string

const (
	ChatPersonal ChatType = "personal"
	ChatGroup    ChatType = "group"
	ChatChannel  ChatType = "channel"
	ChatThread   ChatType = "thread"
)

// TelegramChat is a destination registered to receive order notifications
type TelegramChat struct {
	ChatID              string   `json:"chatId" validate:"required"`
	ThreadID            int      `json:"threadId,omitempty" validate:"gte=0"`
	Title               string   `json:"title,omitempty"`
	Type                ChatType `json:"type,omitempty" validate:"omitempty,oneof=personal group channel thread"`
	IsActive            bool     `json:"isActive"`
	NotifyNewOrders     bool     `json:"notifyNewOrders"`
	NotifyStatusChanges bool     `json:"notifyStatusChanges"`
}

// TelegramSettings is the single notification settings record
type TelegramSettings struct {
	ID       string         `json:"id"`
	BotToken string         `json:"botToken"`
	IsActive bool           `json:"isActive"`
	Chats    []TelegramChat `json:"chats" validate:"dive"`
}

func (s *TelegramSettings) GetID() string   { return s.ID }
func (s *TelegramSettings) SetID(id string) { s.ID = id }

// ActiveChats returns the chats that are switched on
func (s *TelegramSettings) ActiveChats() []TelegramChat {
	out := []TelegramChat{}
	for _, c := range s.Chats {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}
