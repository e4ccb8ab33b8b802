// Package validation checks submitted forms and renders failures as short English messages.
package validation

import (
	"reflect"
	"strings"

	"class-tracker/app/models"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	requiredTag  = "required"
	requiredText = "{0} is required"

	weekdayTag  = "weekday"
	weekdayText = "{0} must be a weekday of the timetable"

	periodTag  = "period"
	periodText = "{0} must be a period of the timetable"
)

func init() {
	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")

	validate = validator.New()
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use form field names in messages instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(weekdayTag, func(fl validator.FieldLevel) bool {
		return models.IsDay(fl.Field().String())
	})
	_ = validate.RegisterValidation(periodTag, func(fl validator.FieldLevel) bool {
		return models.IsPeriod(fl.Field().String())
	})

	registerTranslation(requiredTag, requiredText, true)
	registerTranslation(weekdayTag, weekdayText, false)
	registerTranslation(periodTag, periodText, false)
}

func registerTranslation(tag, text string, override bool) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Error lists the failed fields of a form in declaration order.
type Error struct {
	Fields map[string]string
	order  []string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.order))
	for _, f := range e.order {
		msgs = append(msgs, e.Fields[f])
	}
	return strings.Join(msgs, "; ")
}

// Struct validates v by its `validate` tags. It returns nil or an *Error.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &Error{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		if _, seen := out.Fields[fe.Field()]; seen {
			continue
		}
		out.Fields[fe.Field()] = fe.Translate(translator)
		out.order = append(out.order, fe.Field())
	}
	return out
}
