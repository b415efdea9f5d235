package validator

import (
	"log"
	"regexp"

	"expense_tracker/internal/models"

	"github.com/go-playground/validator/v10"
)

var currencyPattern = regexp.MustCompile(`^[A-Za-z]{1,10}$`)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-ticket-status", validateTicketStatus)
	mustRegister("is-currency", validateCurrency)
}

// Empty values pass; presence is the job of 'required'.

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.UserRole(value).Valid()
}

func validateTicketStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.TicketStatus(value).Valid()
}

func validateCurrency(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return currencyPattern.MatchString(value)
}
