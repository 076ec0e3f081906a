package notification

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"lace-store/internal/domain"
	"lace-store/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoActiveChats is returned by Test when no chat is switched on
var ErrNoActiveChats = errors.New("no active telegram chats")

// deliveryTimeout bounds one fan-out, independent of the caller's context
const deliveryTimeout = 30 * time.Second

// Sender delivers one message to one chat
type Sender interface {
	SendMessage(ctx context.Context, token, chatID string, threadID int, text string) error
}

// ChatResult is the outcome of one delivery attempt
type ChatResult struct {
	ChatID   string `json:"chatId"`
	ThreadID int    `json:"threadId,omitempty"`
	Title    string `json:"title,omitempty"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

// ChatSource lists the chats a bot has received updates from
type ChatSource interface {
	GetUpdates(ctx context.Context, token string) ([]domain.TelegramChat, error)
}

type event int

const (
	eventNewOrder event = iota
	eventStatusChange
)

// Notifier fans order events out to the subscribed Telegram chats
type Notifier struct {
	settings      repository.SettingsRepository
	sender        Sender
	fallbackToken string
	logger        *zap.Logger

	inflight sync.WaitGroup
}

// NewNotifier creates a notifier. fallbackToken is used when the settings record has no token.
func NewNotifier(settings repository.SettingsRepository, sender Sender, fallbackToken string, logger *zap.Logger) *Notifier {
	return &Notifier{
		settings:      settings,
		sender:        sender,
		fallbackToken: fallbackToken,
		logger:        logger,
	}
}

// OrderCreated announces a new order in the background. Failures are logged only.
func (n *Notifier) OrderCreated(ctx context.Context, order *domain.Order) {
	n.dispatch(ctx, eventNewOrder, order.ID, NewOrderMessage(order))
}

// OrderStatusChanged announces a status change in the background. Failures are logged only.
func (n *Notifier) OrderStatusChanged(ctx context.Context, order *domain.Order, from, to domain.OrderStatus) {
	n.dispatch(ctx, eventStatusChange, order.ID, StatusChangeMessage(order, from, to))
}

// Wait blocks until every dispatched notification has settled
func (n *Notifier) Wait() {
	n.inflight.Wait()
}

// dispatch runs notify on its own goroutine, detached from the caller's cancellation
func (n *Notifier) dispatch(ctx context.Context, ev event, orderID, text string) {
	ctx = context.WithoutCancel(ctx)
	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()
		n.notify(ctx, ev, orderID, text)
	}()
}

// Test sends a test message to every active chat and reports each result
func (n *Notifier) Test(ctx context.Context) ([]ChatResult, error) {
	settings, err := n.settings.GetTelegram(ctx)
	if err != nil {
		return nil, err
	}

	token := n.token(settings)
	if token == "" {
		return nil, ErrNoBotToken
	}

	chats := settings.ActiveChats()
	if len(chats) == 0 {
		return nil, ErrNoActiveChats
	}

	return n.broadcast(ctx, token, chats, TestMessage()), nil
}

// Discover returns the chats the bot has seen that are not registered in the settings yet
func (n *Notifier) Discover(ctx context.Context, source ChatSource) ([]domain.TelegramChat, error) {
	settings, err := n.settings.GetTelegram(ctx)
	if err != nil {
		return nil, err
	}

	token := n.token(settings)
	if token == "" {
		return nil, ErrNoBotToken
	}

	seen, err := source.GetUpdates(ctx, token)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(settings.Chats))
	for _, c := range settings.Chats {
		known[chatKey(c)] = true
	}

	fresh := []domain.TelegramChat{}
	for _, c := range seen {
		if !known[chatKey(c)] {
			fresh = append(fresh, c)
		}
	}
	return fresh, nil
}

func (n *Notifier) notify(ctx context.Context, ev event, orderID, text string) {
	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	settings, err := n.settings.GetTelegram(ctx)
	if err != nil {
		n.logger.Error("Failed to load telegram settings", zap.Error(err), zap.String("order_id", orderID))
		return
	}

	if !settings.IsActive {
		return
	}

	token := n.token(settings)
	if token == "" {
		n.logger.Warn("Telegram notifications are active but no bot token is set")
		return
	}

	chats := subscribed(settings, ev)
	if len(chats) == 0 {
		return
	}

	results := n.broadcast(ctx, token, chats, text)

	delivered := 0
	for _, r := range results {
		if r.OK {
			delivered++
		}
	}
	n.logger.Info("Order notification sent",
		zap.String("order_id", orderID),
		zap.Int("delivered", delivered),
		zap.Int("chats", len(results)),
	)
}

// broadcast sends text to every chat in parallel and waits for all attempts
func (n *Notifier) broadcast(ctx context.Context, token string, chats []domain.TelegramChat, text string) []ChatResult {
	results := make([]ChatResult, len(chats))

	var g errgroup.Group
	for i, chat := range chats {
		g.Go(func() error {
			res := ChatResult{ChatID: chat.ChatID, ThreadID: chat.ThreadID, Title: chat.Title, OK: true}
			if err := n.sender.SendMessage(ctx, token, chat.ChatID, chat.ThreadID, text); err != nil {
				n.logger.Error("Failed to send telegram message",
					zap.Error(err),
					zap.String("chat_id", chat.ChatID),
					zap.Int("thread_id", chat.ThreadID),
				)
				res.OK = false
				res.Error = err.Error()
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (n *Notifier) token(settings *domain.TelegramSettings) string {
	if settings.BotToken != "" {
		return settings.BotToken
	}
	return n.fallbackToken
}

func subscribed(settings *domain.TelegramSettings, ev event) []domain.TelegramChat {
	out := []domain.TelegramChat{}
	for _, c := range settings.ActiveChats() {
		if (ev == eventNewOrder && c.NotifyNewOrders) || (ev == eventStatusChange && c.NotifyStatusChanges) {
			out = append(out, c)
		}
	}
	return out
}

func chatKey(c domain.TelegramChat) string {
	return c.ChatID + "/" + strconv.Itoa(c.ThreadID)
}
