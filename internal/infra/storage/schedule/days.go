package schedule

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	"github.com/m04kA/SMB-BookingService/pkg/types"
)

// dayRecord представление дня недели в колонке days (JSONB)
type dayRecord struct {
	Enabled    bool              `json:"enabled"`
	Start      types.TimeString  `json:"start"`
	End        types.TimeString  `json:"end"`
	BreakStart *types.TimeString `json:"breakStart,omitempty"`
	BreakEnd   *types.TimeString `json:"breakEnd,omitempty"`
}

// EncodeDays сериализует дни недели в JSON с ключами по имени дня
func EncodeDays(days [domain.DaysPerWeek]domain.DaySchedule) ([]byte, error) {
	records := make(map[string]dayRecord, domain.DaysPerWeek)
	for day := domain.Monday; day <= domain.Sunday; day++ {
		d := days[day]
		records[day.String()] = dayRecord{
			Enabled:    d.Enabled,
			Start:      d.Start,
			End:        d.End,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
		}
	}
	return json.Marshal(records)
}

// DecodeDays разбирает JSON дней недели
// Отсутствующие дни заполняются значениями по умолчанию, неизвестные ключи - ошибка
func DecodeDays(data []byte) ([domain.DaysPerWeek]domain.DaySchedule, error) {
	var days [domain.DaysPerWeek]domain.DaySchedule
	for day := domain.Monday; day <= domain.Sunday; day++ {
		days[day] = domain.DefaultDaySchedule(day)
	}

	if len(data) == 0 {
		return days, nil
	}

	var records map[string]dayRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return days, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	for name, rec := range records {
		day, ok := domain.ParseWeekday(name)
		if !ok {
			return days, fmt.Errorf("%w: unknown weekday %q", ErrInvalidData, name)
		}
		days[day] = domain.DaySchedule{
			Enabled:    rec.Enabled,
			Start:      rec.Start,
			End:        rec.End,
			BreakStart: rec.BreakStart,
			BreakEnd:   rec.BreakEnd,
		}
	}

	return days, nil
}
