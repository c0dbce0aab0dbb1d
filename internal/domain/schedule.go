package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/pkg/types"
)

// ErrInvalidSchedule возвращается при нарушении инвариантов расписания
var ErrInvalidSchedule = errors.New("domain: invalid schedule")

// Weekday день недели, неделя начинается с понедельника
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek количество дней в неделе
const DaysPerWeek = 7

var weekdayNames = [DaysPerWeek]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// String возвращает имя дня в нижнем регистре (ключ хранения)
func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// WeekdayOf возвращает день недели для даты
func WeekdayOf(date time.Time) Weekday {
	// time.Weekday начинается с воскресенья (0)
	return Weekday((int(date.Weekday()) + 6) % DaysPerWeek)
}

// ParseWeekday парсит имя дня недели (регистр не важен)
func ParseWeekday(name string) (Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), true
		}
	}
	return 0, false
}

// DaySchedule рабочее окно на один день недели
type DaySchedule struct {
	Enabled bool
	Start   types.TimeString
	End     types.TimeString

	// Перерыв (опционально), слоты, пересекающиеся с ним, не выдаются
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
}

// HasBreak возвращает true, если задан перерыв
func (d DaySchedule) HasBreak() bool {
	return d.BreakStart != nil && d.BreakEnd != nil
}

// Validate проверяет инварианты дня
// Для выключенного дня проверяется только формат заполненных полей
func (d DaySchedule) Validate() error {
	start, err := d.Start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidSchedule, err)
	}
	end, err := d.End.Minutes()
	if err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidSchedule, err)
	}

	if (d.BreakStart == nil) != (d.BreakEnd == nil) {
		return fmt.Errorf("%w: break must have both start and end", ErrInvalidSchedule)
	}

	if !d.Enabled {
		return nil
	}

	if start >= end {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidSchedule, d.Start, d.End)
	}

	if d.HasBreak() {
		breakStart, err := d.BreakStart.Minutes()
		if err != nil {
			return fmt.Errorf("%w: break start: %v", ErrInvalidSchedule, err)
		}
		breakEnd, err := d.BreakEnd.Minutes()
		if err != nil {
			return fmt.Errorf("%w: break end: %v", ErrInvalidSchedule, err)
		}
		if breakStart >= breakEnd || breakStart < start || breakEnd > end {
			return fmt.Errorf("%w: break %s-%s must lie within %s-%s",
				ErrInvalidSchedule, *d.BreakStart, *d.BreakEnd, d.Start, d.End)
		}
	}

	return nil
}

// WeeklySchedule недельное расписание бизнеса и глобальные параметры бронирования
// Ровно одна запись DaySchedule на каждый день недели, индекс - Weekday
type WeeklySchedule struct {
	BusinessID          uuid.UUID
	Days                [DaysPerWeek]DaySchedule
	SlotDurationMinutes int
	BufferMinutes       int // пауза после каждого слота
	AdvanceBookingDays  int // на сколько дней вперед можно бронировать

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultDaySchedule расписание дня по умолчанию: будни 09:00-17:00, выходные выключены
func DefaultDaySchedule(day Weekday) DaySchedule {
	return DaySchedule{
		Enabled: day != Saturday && day != Sunday,
		Start:   DefaultDayStart,
		End:     DefaultDayEnd,
	}
}

// DefaultWeeklySchedule расписание, создаваемое при онбординге бизнеса
func DefaultWeeklySchedule(businessID uuid.UUID) *WeeklySchedule {
	s := &WeeklySchedule{
		BusinessID:          businessID,
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		BufferMinutes:       DefaultBufferMinutes,
		AdvanceBookingDays:  DefaultAdvanceBookingDays,
	}
	for day := Monday; day <= Sunday; day++ {
		s.Days[day] = DefaultDaySchedule(day)
	}
	return s
}

// Day возвращает расписание на день недели
func (s *WeeklySchedule) Day(day Weekday) DaySchedule {
	return s.Days[day]
}

// ForDate возвращает расписание на день недели, на который приходится дата
func (s *WeeklySchedule) ForDate(date time.Time) DaySchedule {
	return s.Days[WeekdayOf(date)]
}

// Validate проверяет глобальные параметры и все дни недели
func (s *WeeklySchedule) Validate() error {
	if s.SlotDurationMinutes < MinSlotDurationMinutes || s.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidSchedule, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	if s.BufferMinutes < 0 || s.BufferMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: buffer must be between 0 and %d minutes", ErrInvalidSchedule, MaxBufferMinutes)
	}
	if s.AdvanceBookingDays < MinAdvanceBookingDays || s.AdvanceBookingDays > MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance booking days must be between %d and %d",
			ErrInvalidSchedule, MinAdvanceBookingDays, MaxAdvanceBookingDays)
	}

	for day := Monday; day <= Sunday; day++ {
		if err := s.Days[day].Validate(); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}

	return nil
}
