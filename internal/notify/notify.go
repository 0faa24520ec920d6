// Package notify implements the simulated booking-notification dispatcher.
// Channels are stubs: they log the message and report success without
// talking to any provider. There is no scheduling and no timers; dispatch
// happens inline in the caller's request.
package notify

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Channel names.
const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

// ErrNoRecipient reports a booking payload without a phone number.
var ErrNoRecipient = errors.New("booking has no recipient phone")

// Booking is the structured payload a notification is rendered from.
type Booking struct {
	PatientName string `json:"patient_name"`
	Phone       string `json:"phone"`
	DoctorName  string `json:"doctor_name"`
	ScheduledAt string `json:"scheduled_at"`
	Message     string `json:"message"`
}

// Dispatcher fans a booking out to its configured channels.
type Dispatcher struct {
	channels []string
}

// NewDispatcher creates a dispatcher for the simulated SMS and WhatsApp
// channels.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{channels: []string{ChannelSMS, ChannelWhatsApp}}
}

// Dispatch sends the booking on every channel and returns per-channel
// success. The simulated channels always succeed once the payload
// validates.
func (d *Dispatcher) Dispatch(b Booking) (map[string]bool, error) {
	if strings.TrimSpace(b.Phone) == "" {
		return nil, ErrNoRecipient
	}

	results := make(map[string]bool, len(d.channels))
	for _, ch := range d.channels {
		zap.S().Infow("simulated notification",
			"channel", ch,
			"recipient", b.Phone,
			"patient", b.PatientName,
			"scheduled_at", b.ScheduledAt,
		)
		results[ch] = true
	}
	return results, nil
}
