package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMB-BookingService/internal/domain"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unique violation", &pq.Error{Code: "23505"}, true},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true},
		{"foreign key violation", &pq.Error{Code: "23503"}, false},
		{"plain error", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}

func TestActiveStatusStrings(t *testing.T) {
	assert.Equal(t, []string{"scheduled", "confirmed"}, activeStatusStrings())
}

func TestJoinColumns(t *testing.T) {
	cols := joinColumns()
	assert.Contains(t, cols, "id, business_id")
	assert.Contains(t, cols, "booking_time")
}

func TestUpdateStatusQuery_IsConditionalOnCurrentStatus(t *testing.T) {
	id := uuid.New()

	query, args, err := updateStatusQuery(id, domain.StatusScheduled, domain.StatusCancelled)
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE bookings SET status = $1")
	assert.Contains(t, query, "WHERE id = $2 AND status = $3")
	assert.Contains(t, query, "RETURNING "+joinColumns())
	assert.Equal(t, []interface{}{domain.StatusCancelled, id, domain.StatusScheduled}, args)
}
