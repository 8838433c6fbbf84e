// Package validate checks service inputs before anything is written.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/daileit/wedding-planner/internal/domain"
)

// maxMoneyScale matches the NUMERIC(14,2) money columns.
const maxMoneyScale = 2

// bcryptMaxBytes is the longest input bcrypt hashes without truncating.
const bcryptMaxBytes = 72

// maxMoney is the first amount that no longer fits NUMERIC(14,2).
var maxMoney = decimal.New(1, 12)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		v.RegisterCustomTypeFunc(nullDecimalValue, decimal.NullDecimal{}, domain.Nullable[decimal.Decimal]{})
		v.RegisterCustomTypeFunc(nullStringValue, domain.Nullable[string]{})

		_ = v.RegisterValidation("money", validateMoney)
		_ = v.RegisterValidation("currency", validateCurrency)
		_ = v.RegisterValidation("bcryptlen", validateBcryptLen)

		instance = v
	})

	return instance
}

// Struct validates s and converts failures into a *domain.ValidationError.
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating input: %w", err)
	}

	out := &domain.ValidationError{}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, domain.FieldError{
			Field:  snake(fe.Field()),
			Reason: reason(fe),
		})
	}

	return out
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}

	return nil
}

func nullDecimalValue(field reflect.Value) any {
	switch v := field.Interface().(type) {
	case decimal.NullDecimal:
		if v.Valid {
			return v.Decimal.String()
		}
	case domain.Nullable[decimal.Decimal]:
		if v.Set && v.Valid {
			return v.Value.String()
		}
	}

	return nil
}

func nullStringValue(field reflect.Value) any {
	if v, ok := field.Interface().(domain.Nullable[string]); ok && v.Set && v.Valid {
		return v.Value
	}

	return nil
}

// validateMoney accepts non-negative decimals below maxMoney with at most two
// fractional digits. Custom type funcs above hand it the decimal's string form.
func validateMoney(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}

	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}

	return d.Sign() >= 0 && d.LessThan(maxMoney) && d.Equal(d.Truncate(maxMoneyScale))
}

// validateBcryptLen counts bytes, not runes, so multi-byte passwords cannot
// slip past the bcrypt limit.
func validateBcryptLen(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= bcryptMaxBytes
}

func validateCurrency(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	for _, c := range domain.Currencies {
		if c == code {
			return true
		}
	}

	return false
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + unit(fe)
	case "max":
		return "must be at most " + fe.Param() + unit(fe)
	case "email":
		return "must be a valid email address"
	case "money":
		return "must be a non-negative amount below 1000000000000 with at most 2 decimals"
	case "bcryptlen":
		return fmt.Sprintf("must be at most %d bytes", bcryptMaxBytes)
	case "currency":
		return "must be one of " + strings.Join(domain.Currencies, ", ")
	case "oneof":
		return "must be one of " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "url":
		return "must be a valid URL"
	case "hexcolor":
		return "must be a hex color"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

func unit(fe validator.FieldError) string {
	switch fe.Kind() {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " entries"
	}

	return ""
}

func snake(s string) string {
	var b strings.Builder

	prevLower := false

	for _, r := range s {
		if unicode.IsUpper(r) {
			if prevLower {
				b.WriteByte('_')
			}

			prevLower = false

			b.WriteRune(unicode.ToLower(r))

			continue
		}

		b.WriteRune(r)
		prevLower = true
	}

	return b.String()
}
