package notifier

import (
	"fmt"

	"travelo-booking/internal/data/entity"
	"travelo-booking/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type emailNotifier struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewEmailNotifier(config utils.EmailConfig, log *zap.Logger) Notifier {
	return &emailNotifier{
		config: config,
		log:    log.With(zap.String("notifier", "email")),
	}
}

func (n *emailNotifier) BookingConfirmed(booking *entity.Booking, email string) {
	if email == "" {
		n.log.Warn("No email address for booking confirmation",
			zap.String("booking_id", booking.ID.String()))
		return
	}

	// Async so settlement never waits on SMTP.
	go func() {
		body := fmt.Sprintf("Your booking %s is confirmed.\n\nCategory: %s\nTotal: %d %s\n",
			booking.BookingCode, booking.Category, booking.TotalAmount, booking.Currency)
		if booking.SlotDate != nil && booking.SlotTime != nil {
			body += fmt.Sprintf("Date: %s %s\n", *booking.SlotDate, *booking.SlotTime)
		}

		m := gomail.NewMessage()
		m.SetHeader("From", n.config.From)
		m.SetHeader("To", email)
		m.SetHeader("Subject", "Booking confirmed #"+booking.BookingCode)
		m.SetBody("text/plain", body)

		d := gomail.NewDialer(n.config.Host, n.config.Port, n.config.User, n.config.Password)
		if err := d.DialAndSend(m); err != nil {
			n.log.Error("Failed to send confirmation email",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.String("booking_code", booking.BookingCode),
			)
		}
	}()
}
