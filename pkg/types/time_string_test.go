package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "padded", input: "09:30", want: "09:30"},
		{name: "single digit hour", input: "9:05", want: "09:05"},
		{name: "end of day", input: "23:59", want: "23:59"},
		{name: "hour overflow", input: "24:00", wantErr: true},
		{name: "minute overflow", input: "10:60", wantErr: true},
		{name: "no separator", input: "1000", wantErr: true},
		{name: "short minutes", input: "10:5", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_MinutesRoundTrip(t *testing.T) {
	for _, m := range []int{0, 1, 59, 60, 540, 1439} {
		ts, err := FromMinutes(m)
		require.NoError(t, err)

		back, err := ts.Minutes()
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}

	_, err := FromMinutes(MinutesPerDay)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
	_, err = FromMinutes(-1)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutesAndCompare(t *testing.T) {
	start := TimeString("09:45")

	next, err := start.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), next)
	assert.True(t, start.IsBefore(next))
	assert.True(t, next.IsAfter(start))
	assert.False(t, start.IsBefore(start))

	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("07:15")))
	assert.Equal(t, TimeString("07:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 18, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("18:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("08:00").Validate())
	assert.Error(t, TimeString("8:00").Validate())
	assert.Error(t, TimeString("").Validate())
}
