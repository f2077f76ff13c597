package commerce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/teamcipx/portofolio-sub000/shared/models"
)

func TestReceiptListsItemsAndTotal(t *testing.T) {
	order := models.Order{
		UserEmail: "buyer@example.com",
		Items: []models.OrderItem{
			{Name: "sticker pack", Price: 10, Quantity: 2},
			{Name: "poster", Price: 5, Quantity: 1},
		},
		Total:         25,
		PaymentMethod: models.PaymentCard,
		Status:        models.OrderCompleted,
		CreatedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	text := Receipt(order)

	assert.Contains(t, text, "buyer@example.com")
	assert.Contains(t, text, "sticker pack")
	assert.Contains(t, text, "Total: 25.00")
	assert.Contains(t, text, "Thank you for your purchase!")
	assert.NotContains(t, text, "manual verification")
}

func TestReceiptFlagsPendingVerification(t *testing.T) {
	order := models.Order{
		UserEmail:     "buyer@example.com",
		Total:         15,
		PaymentMethod: models.PaymentBkash,
		SenderNumber:  "01700000000",
		TrxID:         "TX1",
		Status:        models.OrderPending,
		CreatedAt:     time.Now().UTC(),
	}

	text := Receipt(order)

	assert.Contains(t, text, "manual verification")
	assert.Contains(t, text, "01700000000")
	assert.Contains(t, text, "TX1")
}
