package validator

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/SAP-F-2025/driver-quiz-service/internal/models"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var languageCodePattern = regexp.MustCompile(`^[a-z]{2}$`)

// Validator wraps go-playground/validator with the service's custom rules
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates s and returns ValidationErrors on failure
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("iso_date", validateISODate)
	validate.RegisterValidation("language_code", validateLanguageCode)

	// Cross-field rules
	validate.RegisterStructValidation(validateAnalyticsQuery, models.AnalyticsQuery{})

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(dateLayout, fl.Field().String())
	return err == nil
}

func validateLanguageCode(fl validator.FieldLevel) bool {
	return languageCodePattern.MatchString(fl.Field().String())
}

// validateAnalyticsQuery rejects an end date before the start date
func validateAnalyticsQuery(sl validator.StructLevel) {
	query := sl.Current().Interface().(models.AnalyticsQuery)
	if query.StartDate == "" || query.EndDate == "" {
		return
	}

	start, startErr := time.Parse(dateLayout, query.StartDate)
	end, endErr := time.Parse(dateLayout, query.EndDate)
	if startErr != nil || endErr != nil {
		return
	}
	if end.Before(start) {
		sl.ReportError(query.EndDate, "end_date", "EndDate", "date_range", "")
	}
}
