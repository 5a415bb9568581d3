// Package validate оборачивает go-playground/validator: правила полей задаются
// тегами `validate` в структурах запросов, а ошибка формируется по первому
// нарушенному правилу.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/sheets-api/internal/common"
	"github.com/magabrotheeeer/sheets-api/internal/models"
)

// Error описывает первое нарушенное правило.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap позволяет сравнивать ошибку с common.ErrValidation.
func (e *Error) Unwrap() error {
	return common.ErrValidation
}

// Validator проверяет структуры запросов. Безопасен для конкурентного использования.
type Validator struct {
	validate *validator.Validate
}

// New создаёт Validator с именами полей из json-тегов и правилом date.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// ошибка возможна только при пустом имени тега
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})
	return &Validator{validate: v}
}

// Struct проверяет структуру и возвращает *Error для первого нарушения.
func (v *Validator) Struct(s any) error {
	const op = "validate.Struct"
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return &Error{Field: errs[0].Field(), Message: Message(errs[0])}
	}
	return fmt.Errorf("%s: %w: %w", op, common.ErrValidation, err)
}

// Message формирует человекочитаемый текст для нарушения.
func Message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("field %s is a required field", field)
	case "email":
		return fmt.Sprintf("field %s must be a valid email", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("field %s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("field %s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("field %s must be at most %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("field %s must be at most %s", field, fe.Param())
	case "date":
		return fmt.Sprintf("field %s must be a valid date", field)
	case "uuid":
		return fmt.Sprintf("field %s can contain only uuid", field)
	default:
		return fmt.Sprintf("field %s is not valid", field)
	}
}
