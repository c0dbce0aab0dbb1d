package get_available_slots

import (
	"iter"

	"github.com/m04kA/SMB-BookingService/pkg/types"
)

// GenerateSlots возвращает ленивую последовательность времен начала слотов на один день
// Шаг durationMinutes+bufferMinutes, слот включается только если целиком помещается до end
// При duration <= 0, отрицательном buffer, start >= end или некорректном формате
// последовательность пустая. Последовательность можно перебирать повторно
func GenerateSlots(start, end types.TimeString, durationMinutes, bufferMinutes int) iter.Seq[types.TimeString] {
	return func(yield func(types.TimeString) bool) {
		if durationMinutes <= 0 || bufferMinutes < 0 {
			return
		}

		startMinutes, err := start.Minutes()
		if err != nil {
			return
		}
		endMinutes, err := end.Minutes()
		if err != nil || startMinutes >= endMinutes {
			return
		}

		// Сравнения через разность с end, чтобы большие duration/buffer не переполняли int
		for cur := startMinutes; durationMinutes <= endMinutes-cur; {
			slot, err := types.FromMinutes(cur)
			if err != nil {
				return
			}
			if !yield(slot) {
				return
			}
			if bufferMinutes > endMinutes-cur-durationMinutes {
				return
			}
			cur += durationMinutes + bufferMinutes
		}
	}
}

// FreeSlots убирает из кандидатов занятые времена, порядок сохраняется
// Сравнение точное по значению HH:MM
func FreeSlots(candidates iter.Seq[types.TimeString], reserved map[types.TimeString]struct{}) []types.TimeString {
	free := make([]types.TimeString, 0)
	for slot := range candidates {
		if _, taken := reserved[slot]; taken {
			continue
		}
		free = append(free, slot)
	}
	return free
}

// ReservedSet строит множество занятых времен
func ReservedSet(times []types.TimeString) map[types.TimeString]struct{} {
	reserved := make(map[types.TimeString]struct{}, len(times))
	for _, t := range times {
		reserved[t] = struct{}{}
	}
	return reserved
}

// withoutBreak пропускает слоты, пересекающиеся с перерывом [breakStart, breakEnd)
func withoutBreak(slots iter.Seq[types.TimeString], durationMinutes, breakStart, breakEnd int) iter.Seq[types.TimeString] {
	return func(yield func(types.TimeString) bool) {
		for slot := range slots {
			m, err := slot.Minutes()
			if err != nil {
				return
			}
			if m < breakEnd && m+durationMinutes > breakStart {
				continue
			}
			if !yield(slot) {
				return
			}
		}
	}
}

// notBefore пропускает слоты, начинающиеся раньше minMinutes
func notBefore(slots iter.Seq[types.TimeString], minMinutes int) iter.Seq[types.TimeString] {
	return func(yield func(types.TimeString) bool) {
		for slot := range slots {
			m, err := slot.Minutes()
			if err != nil {
				return
			}
			if m < minMinutes {
				continue
			}
			if !yield(slot) {
				return
			}
		}
	}
}
