package bind

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	perr "spacebio/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator checks request DTOs and renders the first failure as a field-scoped project error
type Validator struct {
	v  *validator.Validate
	tr ut.Translator
}

// messages replaces the stock english text for the tags request DTOs use
// {0} is the json field name, {1} the tag parameter
var messages = map[string]string{
	"required":  "{0} is required",
	"notblank":  "{0} must not be blank",
	"email":     "{0} must be a valid email address",
	"alphanum":  "{0} may only contain letters and digits",
	"oneof":     "{0} must be one of: {1}",
	"min":       "{0} must be at least {1}",
	"max":       "{0} must be at most {1}",
	"min.chars": "{0} must be at least {1} characters",
	"max.chars": "{0} must be at most {1} characters",
}

var defaultValidator = sync.OnceValue(newValidator)

// Default returns the process-wide validator
func Default() *Validator { return defaultValidator() }

func newValidator() *Validator {
	loc := en.New()
	tr, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = en_translations.RegisterDefaultTranslations(v, tr)
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	for key, text := range messages {
		_ = tr.Add(key, text, true)
	}
	for _, tag := range []string{"required", "notblank", "email", "alphanum", "oneof", "min", "max"} {
		_ = v.RegisterTranslation(tag, tr, func(ut.Translator) error { return nil }, render)
	}
	return &Validator{v: v, tr: tr}
}

// jsonName reports fields by their wire name; untagged fields keep the Go name
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func render(tr ut.Translator, fe validator.FieldError) string {
	key, param := fe.Tag(), fe.Param()
	switch key {
	case "min", "max":
		if fe.Kind() == reflect.String {
			key += ".chars"
		}
	case "oneof":
		param = strings.Join(strings.Fields(param), ", ")
	}
	msg, err := tr.T(key, fe.Field(), param)
	if err != nil {
		return fe.Error()
	}
	return msg
}

// Check validates x when it is a struct (or pointer to one); other shapes pass
func (v *Validator) Check(x any) error {
	if reflect.Indirect(reflect.ValueOf(x)).Kind() != reflect.Struct {
		return nil
	}
	err := v.v.Struct(x)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "validator failure")
	}
	fe := verrs[0]
	return perr.Validationf(fe.Field(), "%s", fe.Translate(v.tr))
}
