package create_booking

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
)

// validateRequest валидирует и нормализует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID == uuid.Nil {
		return fmt.Errorf("%w: businessID is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	req.ClientName = strings.TrimSpace(req.ClientName)
	if req.ClientName == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if len(req.ClientName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name must be at most %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	req.ClientPhone = strings.TrimSpace(req.ClientPhone)
	if err := validatePhone(req.ClientPhone); err != nil {
		return err
	}

	if req.ClientEmail != nil {
		email := strings.TrimSpace(*req.ClientEmail)
		switch {
		case email == "":
			req.ClientEmail = nil
		case !strings.Contains(email, "@"):
			return fmt.Errorf("%w: invalid client email", ErrInvalidInput)
		default:
			req.ClientEmail = &email
		}
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время указано и в формате HH:MM
	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validatePhone допускает цифры, пробелы, дефисы, скобки и ведущий +
func validatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("%w: client phone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxClientPhoneLength {
		return fmt.Errorf("%w: client phone is too long", ErrInvalidInput)
	}

	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return fmt.Errorf("%w: client phone contains invalid character %q", ErrInvalidInput, r)
		}
	}

	if digits < 5 {
		return fmt.Errorf("%w: client phone must contain at least 5 digits", ErrInvalidInput)
	}

	return nil
}
