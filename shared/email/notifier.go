// Package email notifies the site owner about new bookings and contact
// messages over SMTP. Sends are fire-and-forget; a failed notification is
// logged and never blocks the request that triggered it.
package email

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/teamcipx/portofolio-sub000/shared/models"
)

// Notifier sends owner notifications. A Notifier with no SMTP host is a
// no-op, which is how the service runs without mail configured.
type Notifier struct {
	host  string
	port  int
	user  string
	pass  string
	from  string
	owner string
	log   *logrus.Logger
}

// NewNotifier builds a notifier from SMTP settings. Any of host, from or
// owner being empty disables sending.
func NewNotifier(host string, port int, user, pass, from, owner string, log *logrus.Logger) *Notifier {
	return &Notifier{host: host, port: port, user: user, pass: pass, from: from, owner: owner, log: log}
}

func (n *Notifier) enabled() bool {
	return n.host != "" && n.from != "" && n.owner != ""
}

// NotifyBooking emails the owner about a new consultation request.
func (n *Notifier) NotifyBooking(b models.Booking) {
	subject := fmt.Sprintf("New booking: %s (%s)", b.Service, b.Name)
	body := fmt.Sprintf("Name: %s\nEmail: %s\nService: %s\nDate: %s\n\n%s",
		b.Name, b.Email, b.Service, b.Date, b.Notes)
	n.send(subject, body)
}

// NotifyMessage emails the owner about a new contact-form message.
func (n *Notifier) NotifyMessage(m models.Message) {
	subject := fmt.Sprintf("New message from %s", m.Name)
	if m.Subject != "" {
		subject = fmt.Sprintf("New message: %s", m.Subject)
	}
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", m.Name, m.Email, m.Body)
	n.send(subject, body)
}

// NotifyOrder emails the owner about a new order awaiting verification.
func (n *Notifier) NotifyOrder(o models.Order) {
	subject := fmt.Sprintf("New order (%s, %.2f)", o.PaymentMethod, o.Total)
	body := fmt.Sprintf("Customer: %s\nMethod: %s\nStatus: %s\nTotal: %.2f\nTrx: %s",
		o.UserEmail, o.PaymentMethod, o.Status, o.Total, o.TrxID)
	n.send(subject, body)
}

func (n *Notifier) send(subject, body string) {
	if !n.enabled() {
		return
	}

	go func() {
		msg := gomail.NewMessage()
		msg.SetHeader("From", n.from)
		msg.SetHeader("To", n.owner)
		msg.SetHeader("Subject", subject)
		msg.SetBody("text/plain", body)

		dialer := gomail.NewDialer(n.host, n.port, n.user, n.pass)
		if err := dialer.DialAndSend(msg); err != nil {
			n.log.WithError(err).Warn("failed to send owner notification")
		}
	}()
}
