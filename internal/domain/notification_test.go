package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBookingNotification(t *testing.T) {
	b := &Booking{
		ID:          uuid.New(),
		BusinessID:  uuid.New(),
		ServiceName: "Haircut",
		ClientName:  "Thandi",
		ClientPhone: "+27820000000",
		Date:        time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Time:        "10:30",
	}

	n := NewBookingNotification(NotificationConfirmation, b, "Cuts & Co")
	assert.Equal(t, b.ID, *n.BookingID)
	assert.Equal(t, "+27820000000", n.Recipient)
	assert.Equal(t, "Hi Thandi, your booking at Cuts & Co for Haircut on 2025-06-02 at 10:30 is CONFIRMED.", n.Text())

	n.Type = NotificationCancellation
	assert.Contains(t, n.Text(), "CANCELLED")
}

func TestBusinessProfile_DisplayName(t *testing.T) {
	var p *BusinessProfile
	assert.Equal(t, "Business", p.DisplayName())
	assert.Equal(t, "Business", (&BusinessProfile{Name: "  "}).DisplayName())
	assert.Equal(t, "Salon", (&BusinessProfile{Name: "Salon"}).DisplayName())
}
