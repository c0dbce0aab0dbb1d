package create_booking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMB-BookingService/pkg/ptr"
)

func TestToUseCaseRequest_OptionalFields(t *testing.T) {
	tests := []struct {
		name      string
		email     *string
		notes     *string
		wantEmail *string
		wantNotes *string
	}{
		{"absent", nil, nil, nil, nil},
		{"blank is absent", ptr.Ptr("   "), ptr.Ptr(""), nil, nil},
		{"trimmed", ptr.Ptr(" ana@example.com "), ptr.Ptr("  window seat\n"), ptr.Ptr("ana@example.com"), ptr.Ptr("window seat")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CreateBookingRequest{
				ServiceID:   uuid.NewString(),
				ClientName:  "Ana",
				ClientPhone: "+27821111111",
				ClientEmail: tt.email,
				Date:        "2025-06-02",
				Time:        "10:00",
				Notes:       tt.notes,
			}

			got, err := req.ToUseCaseRequest(uuid.New())
			require.NoError(t, err)
			assert.Equal(t, tt.wantEmail, got.ClientEmail)
			assert.Equal(t, tt.wantNotes, got.Notes)
		})
	}
}

func TestToUseCaseRequest_DoesNotAliasInput(t *testing.T) {
	notes := "first"
	req := CreateBookingRequest{
		ServiceID: uuid.NewString(),
		Date:      "2025-06-02",
		Time:      "10:00",
		Notes:     &notes,
	}

	got, err := req.ToUseCaseRequest(uuid.New())
	require.NoError(t, err)

	notes = "changed"
	assert.Equal(t, "first", ptr.Value(got.Notes))
}
