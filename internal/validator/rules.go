package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"hirehub/internal/models"
)

// registerCustomRules регистрирует доменные правила валидации
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без правил приложение запускать нельзя
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", enumRule(func(s string) bool { return models.UserRole(s).Valid() }))
	mustRegister("is-user-status", enumRule(func(s string) bool { return models.UserStatus(s).Valid() }))
	mustRegister("is-verification-status", enumRule(func(s string) bool { return models.VerificationStatus(s).Valid() }))
	mustRegister("is-job-status", enumRule(func(s string) bool { return models.JobStatus(s).Valid() }))
	mustRegister("is-job-type", enumRule(func(s string) bool { return models.JobType(s).Valid() }))
	mustRegister("is-application-status", enumRule(func(s string) bool { return models.ApplicationStatus(s).Valid() }))
	mustRegister("is-notification-kind", enumRule(func(s string) bool { return models.NotificationKind(s).Valid() }))
	mustRegister("is-report-status", enumRule(func(s string) bool { return models.ReportStatus(s).Valid() }))
}

// enumRule: пустое значение пропускаем, для этого есть 'required'
func enumRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return valid(value)
	}
}
