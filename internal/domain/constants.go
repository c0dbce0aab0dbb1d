package domain

// Значения по умолчанию для расписания (используются при онбординге)
const (
	DefaultSlotDurationMinutes = 30
	DefaultBufferMinutes       = 0
	DefaultAdvanceBookingDays  = 30
	DefaultDayStart            = "09:00"
	DefaultDayEnd              = "17:00"
)

// Ограничения бизнес-валидации
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 часов
	MaxBufferMinutes       = 240
	MinAdvanceBookingDays  = 0
	MaxAdvanceBookingDays  = 365 // 1 год
	MaxNotesLength         = 500
	MaxClientNameLength    = 200
	MaxClientPhoneLength   = 32
	MaxBusinessNameLength  = 200
)

// Подписка
const (
	TrialDays = 30
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultBusinessName имя бизнеса для уведомлений, если профиль не заполнен
const DefaultBusinessName = "Business"
