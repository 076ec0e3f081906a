package notification

import (
	"fmt"
	"html"
	"strings"

	"lace-store/internal/domain"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount in sums, e.g. "1 250 000 сум"
func FormatMoney(amount decimal.Decimal) string {
	ac := accounting.Accounting{Symbol: "сум", Precision: 0, Thousand: " ", Decimal: ",", Format: "%v %s"}
	return ac.FormatMoneyDecimal(amount)
}

var statusLabels = map[domain.OrderStatus]string{
	domain.StatusNew:        "Новый",
	domain.StatusViewed:     "Просмотрен",
	domain.StatusCalled:     "Созвонились",
	domain.StatusProcessing: "В обработке",
	domain.StatusShipped:    "Отправлен",
	domain.StatusDelivered:  "Доставлен",
	domain.StatusCompleted:  "Завершён",
	domain.StatusCancelled:  "Отменён",
}

// StatusLabel returns the Russian label of a status
func StatusLabel(status domain.OrderStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

func esc(s string) string {
	return html.EscapeString(s)
}

// NewOrderMessage composes the HTML announcement of a new order
func NewOrderMessage(order *domain.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>Новый заказ #%s</b>\n\n", esc(order.ID))
	fmt.Fprintf(&b, "<b>Клиент:</b> %s\n", esc(order.Name))
	fmt.Fprintf(&b, "<b>Телефон:</b> %s\n", esc(order.Phone))
	if order.Email != "" {
		fmt.Fprintf(&b, "<b>Email:</b> %s\n", esc(order.Email))
	}
	if order.Address != "" {
		fmt.Fprintf(&b, "<b>Адрес:</b> %s\n", esc(order.Address))
	}
	if order.Comment != "" {
		fmt.Fprintf(&b, "<b>Комментарий:</b> %s\n", esc(order.Comment))
	}

	b.WriteString("\n<b>Товары:</b>\n")
	for i, item := range order.Items {
		fmt.Fprintf(&b, "%d. %s", i+1, esc(item.Name))
		if variant := variantOf(item); variant != "" {
			fmt.Fprintf(&b, " (%s)", esc(variant))
		}
		fmt.Fprintf(&b, " × %d = %s\n", item.Quantity, FormatMoney(item.Subtotal()))
	}

	fmt.Fprintf(&b, "\n<b>Итого:</b> %s", FormatMoney(order.Total))
	return b.String()
}

// StatusChangeMessage composes the HTML notice of a status change
func StatusChangeMessage(order *domain.Order, from, to domain.OrderStatus) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>Заказ #%s</b>\n", esc(order.ID))
	fmt.Fprintf(&b, "<b>Клиент:</b> %s, %s\n", esc(order.Name), esc(order.Phone))
	fmt.Fprintf(&b, "<b>Статус:</b> %s → %s", StatusLabel(from), StatusLabel(to))
	return b.String()
}

// TestMessage is sent by the admin connection check
func TestMessage() string {
	return "<b>Тестовое сообщение</b>\nУведомления о заказах настроены."
}

func variantOf(item domain.LineItem) string {
	parts := []string{}
	if item.Size != "" {
		parts = append(parts, item.Size)
	}
	if item.Color != "" {
		parts = append(parts, item.Color)
	}
	return strings.Join(parts, ", ")
}
