package notification

import (
	"testing"

	"lace-store/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1 250 000 сум", FormatMoney(decimal.NewFromInt(1250000)))
	assert.Equal(t, "990 сум", FormatMoney(decimal.NewFromInt(990)))
	assert.Equal(t, "0 сум", FormatMoney(decimal.Zero))
}

func TestNewOrderMessage(t *testing.T) {
	order := &domain.Order{
		ID:      "17",
		Name:    "Aziza <script>",
		Phone:   "+998 90 123 45 67",
		Address: "Ташкент, Чиланзар",
		Comment: "Позвонить после 18:00 & не раньше",
		Items: []domain.LineItem{
			{ProductID: "p1", Name: "Бюстгальтер Lace", Price: decimal.NewFromInt(250000), Quantity: 2, Size: "75B", Color: "black"},
			{ProductID: "p2", Name: "Халат", Price: decimal.NewFromInt(750000), Quantity: 1},
		},
		Total: decimal.NewFromInt(1250000),
	}

	msg := NewOrderMessage(order)

	assert.Contains(t, msg, "Новый заказ #17")
	assert.Contains(t, msg, "Aziza &lt;script&gt;")
	assert.NotContains(t, msg, "<script>")
	assert.Contains(t, msg, "после 18:00 &amp; не раньше")
	assert.Contains(t, msg, "1. Бюстгальтер Lace (75B, black) × 2 = 500 000 сум")
	assert.Contains(t, msg, "2. Халат × 1 = 750 000 сум")
	assert.Contains(t, msg, "1 250 000 сум")
	assert.NotContains(t, msg, "Email")
}

func TestStatusChangeMessage(t *testing.T) {
	order := &domain.Order{ID: "17", Name: "Aziza", Phone: "+998901234567"}

	msg := StatusChangeMessage(order, domain.StatusNew, domain.StatusShipped)

	assert.Contains(t, msg, "Заказ #17")
	assert.Contains(t, msg, "Aziza, +998901234567")
	assert.Contains(t, msg, "Новый → Отправлен")
}

func TestStatusLabelsCoverEveryStatus(t *testing.T) {
	for _, s := range domain.AllStatuses() {
		assert.NotEqual(t, string(s), StatusLabel(s), "missing label for %s", s)
	}
	assert.Equal(t, "unknown", StatusLabel("unknown"))
}
