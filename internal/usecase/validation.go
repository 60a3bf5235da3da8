package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe  = regexp.MustCompile(`^\d{2}:\d{2}$`)
	digitRe = regexp.MustCompile(`\D`)
)

func ValidateBookAppointmentInput(input BookAppointmentInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.CustomerPhone) == "" {
		errors = append(errors, ValidationError{"customer_phone", "is required"})
	} else if !isValidPhoneNumber(input.CustomerPhone) {
		errors = append(errors, ValidationError{"customer_phone", "must be a valid phone number"})
	}

	if strings.TrimSpace(input.CustomerName) == "" {
		errors = append(errors, ValidationError{"customer_name", "is required"})
	}

	if input.CustomerEmail != "" {
		if _, err := mail.ParseAddress(input.CustomerEmail); err != nil {
			errors = append(errors, ValidationError{"customer_email", "is invalid"})
		}
	}

	if strings.TrimSpace(input.ServiceName) == "" {
		errors = append(errors, ValidationError{"service_name", "is required"})
	}

	if !dateRe.MatchString(input.Date) {
		errors = append(errors, ValidationError{"date", "must be YYYY-MM-DD"})
	}
	if !timeRe.MatchString(input.Time) {
		errors = append(errors, ValidationError{"time", "must be HH:MM"})
	}

	return errors
}

func ValidateIntakeOrderInput(input IntakeOrderInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.CustomerPhone) == "" {
		errors = append(errors, ValidationError{"customer_phone", "is required"})
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		errors = append(errors, ValidationError{"customer_name", "is required"})
	}
	if len(input.Items) == 0 {
		errors = append(errors, ValidationError{"items", "cannot be empty"})
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.ProductName) == "" || item.Quantity <= 0 {
			errors = append(errors, ValidationError{"items", "product_name and a positive quantity are required for all items"})
			break
		}
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := digitRe.ReplaceAllString(phone, "")
	return len(cleaned) >= 10 && len(cleaned) <= 13
}

func joinValidationErrors(errs []ValidationError) string {
	msg := "validation failed: "
	for _, e := range errs {
		msg += e.Field + " (" + e.Message + "), "
	}
	return strings.TrimSuffix(msg, ", ")
}
