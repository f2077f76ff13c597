package commerce

import (
	"fmt"
	"strings"

	"github.com/teamcipx/portofolio-sub000/shared/models"
)

// Receipt renders a plain-text receipt for a persisted order. It is
// generated locally with no server round trip so the success screen can
// offer it as a download immediately.
func Receipt(o models.Order) string {
	var b strings.Builder

	b.WriteString("ORDER RECEIPT\n")
	b.WriteString("=============\n\n")
	if !o.ID.IsZero() {
		fmt.Fprintf(&b, "Order ID:  %s\n", o.ID.Hex())
	}
	fmt.Fprintf(&b, "Email:     %s\n", o.UserEmail)
	fmt.Fprintf(&b, "Date:      %s\n", o.CreatedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "Payment:   %s\n", o.PaymentMethod)
	if o.SenderNumber != "" {
		fmt.Fprintf(&b, "Sender:    %s\n", o.SenderNumber)
	}
	if o.TrxID != "" {
		fmt.Fprintf(&b, "Trx ID:    %s\n", o.TrxID)
	}
	b.WriteString("\nItems\n-----\n")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "%-30s x%-3d %10.2f\n", item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n", o.Total)

	if o.Status == models.OrderPending {
		b.WriteString("\nYour payment is awaiting manual verification. You will be\nnotified once the order is confirmed.\n")
	} else {
		b.WriteString("\nThank you for your purchase!\n")
	}
	return b.String()
}
