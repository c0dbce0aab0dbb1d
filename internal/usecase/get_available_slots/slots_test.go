package get_available_slots

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMB-BookingService/pkg/types"
)

func mustTime(t *testing.T, minutes int) types.TimeString {
	t.Helper()
	ts, err := types.FromMinutes(minutes)
	require.NoError(t, err)
	return ts
}

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		start    types.TimeString
		end      types.TimeString
		duration int
		buffer   int
		want     []types.TimeString
	}{
		{
			name:     "hourly",
			start:    "09:00",
			end:      "12:00",
			duration: 60,
			want:     []types.TimeString{"09:00", "10:00", "11:00"},
		},
		{
			name:     "buffer pushes last slot out",
			start:    "09:00",
			end:      "10:00",
			duration: 45,
			buffer:   15,
			want:     []types.TimeString{"09:00"},
		},
		{
			name:     "slot that does not fit is excluded",
			start:    "09:00",
			end:      "10:10",
			duration: 30,
			want:     []types.TimeString{"09:00", "09:30"},
		},
		{
			name:     "ends just before midnight",
			start:    "23:00",
			end:      "23:59",
			duration: 20,
			want:     []types.TimeString{"23:00", "23:20"},
		},
		{name: "zero duration", start: "09:00", end: "17:00", duration: 0},
		{name: "negative duration", start: "09:00", end: "17:00", duration: -30},
		{name: "negative buffer", start: "09:00", end: "17:00", duration: 30, buffer: -5},
		{name: "start equals end", start: "09:00", end: "09:00", duration: 30},
		{name: "start after end", start: "17:00", end: "09:00", duration: 30},
		{name: "malformed start", start: "9am", end: "17:00", duration: 30},
		{name: "duration longer than window", start: "09:00", end: "09:20", duration: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(GenerateSlots(tt.start, tt.end, tt.duration, tt.buffer))
			assert.Equal(t, tt.want, got)
		})
	}
}

// Каждый слот помещается в окно, шаг ровно duration+buffer, повторный перебор дает тот же результат
func TestGenerateSlots_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		startMin := rng.Intn(types.MinutesPerDay - 1)
		endMin := startMin + 1 + rng.Intn(types.MinutesPerDay-startMin-1)
		duration := 1 + rng.Intn(180)
		buffer := rng.Intn(60)

		start, end := mustTime(t, startMin), mustTime(t, endMin)
		seq := GenerateSlots(start, end, duration, buffer)
		slots := slices.Collect(seq)

		prev := -1
		for _, s := range slots {
			m, err := s.Minutes()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, m, startMin)
			assert.LessOrEqual(t, m+duration, endMin)
			if prev >= 0 {
				assert.Equal(t, duration+buffer, m-prev)
			}
			prev = m
		}

		assert.Equal(t, slots, slices.Collect(seq), "sequence must be restartable")
		assert.Equal(t, slots, slices.Collect(GenerateSlots(start, end, duration, buffer)))
	}
}

func TestGenerateSlots_EarlyStop(t *testing.T) {
	var got []types.TimeString
	for s := range GenerateSlots("09:00", "17:00", 30, 0) {
		got = append(got, s)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00"}, got)
}

func TestGenerateSlots_HugeValuesDoNotOverflow(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		buffer   int
		want     []types.TimeString
	}{
		{"duration max int", math.MaxInt, 0, nil},
		{"duration near max int", math.MaxInt - 30, 0, nil},
		{"buffer max int", 30, math.MaxInt, []types.TimeString{"00:01"}},
		{"both large", math.MaxInt / 2, math.MaxInt / 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(GenerateSlots("00:01", "01:00", tt.duration, tt.buffer))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFreeSlots(t *testing.T) {
	candidates := GenerateSlots("09:00", "12:00", 30, 0)

	free := FreeSlots(candidates, ReservedSet([]types.TimeString{"09:30", "11:00", "13:00"}))
	assert.Equal(t, []types.TimeString{"09:00", "10:00", "10:30", "11:30"}, free)

	assert.Equal(t, slices.Collect(candidates), FreeSlots(candidates, nil))

	all := ReservedSet(slices.Collect(candidates))
	free = FreeSlots(candidates, all)
	assert.NotNil(t, free)
	assert.Empty(t, free)
}

// Длина результата = кандидаты минус пересечение с занятыми, относительный порядок сохраняется
func TestFreeSlots_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	candidates := slices.Collect(GenerateSlots("08:00", "20:00", 15, 0))

	for i := 0; i < 200; i++ {
		reserved := make([]types.TimeString, 0)
		for _, c := range candidates {
			if rng.Intn(3) == 0 {
				reserved = append(reserved, c)
			}
		}

		free := FreeSlots(slices.Values(candidates), ReservedSet(reserved))
		assert.Len(t, free, len(candidates)-len(reserved))

		j := 0
		for _, c := range candidates {
			if j < len(free) && free[j] == c {
				j++
			}
		}
		assert.Equal(t, len(free), j, "free slots must be a subsequence of candidates")
	}
}

func TestWithoutBreak(t *testing.T) {
	slots := withoutBreak(GenerateSlots("11:00", "14:00", 30, 0), 30, 12*60, 13*60)
	assert.Equal(t, []types.TimeString{"11:00", "11:30", "13:00", "13:30"}, slices.Collect(slots))

	// Слот 11:45-12:45 пересекает начало перерыва
	slots = withoutBreak(GenerateSlots("10:45", "14:00", 60, 0), 60, 12*60, 13*60)
	assert.Equal(t, []types.TimeString{"10:45"}, slices.Collect(slots))
}

func TestNotBefore(t *testing.T) {
	slots := notBefore(GenerateSlots("09:00", "11:00", 30, 0), 9*60+31)
	assert.Equal(t, []types.TimeString{"10:00", "10:30"}, slices.Collect(slots))
}
