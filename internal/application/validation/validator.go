// Package validation checks request DTOs against their declared constraints
// and the configured loan limits.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/bibbank/calculator/internal/domain/model"
)

// Validator wraps a configured go-playground validator.
type Validator struct {
	validate *validator.Validate
	limits   model.ValidationLimits
	now      func() time.Time
}

// New returns a Validator enforcing limits. now supplies the reference date
// for the notfuture constraint; nil means time.Now.
func New(limits model.ValidationLimits, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		limits:   limits,
		now:      now,
	}

	v.validate.RegisterTagNameFunc(jsonFieldName)
	v.validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.validate.RegisterCustomTypeFunc(dateValue, model.Date{})

	// Registration only fails for empty tags or nil funcs.
	_ = v.validate.RegisterValidation("minamount", v.minAmount)
	_ = v.validate.RegisterValidation("maxamount", v.maxAmount)
	_ = v.validate.RegisterValidation("minterm", v.minTerm)
	_ = v.validate.RegisterValidation("maxterm", v.maxTerm)
	_ = v.validate.RegisterValidation("notfuture", v.notFuture)
	_ = v.validate.RegisterValidation("digits", digitsOnly)

	return v
}

// Struct validates s and returns a *model.ValidationError describing the
// first violated field, in declaration order.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate request: %w", err)
	}

	first := fieldErrs[0]
	field := fieldPath(first)
	return &model.ValidationError{Field: field, Message: v.message(field, first)}
}

func (v *Validator) message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "digits":
		return field + " must contain only digits"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "minamount":
		return fmt.Sprintf("%s must be at least %s", field, v.limits.MinAmount)
	case "maxamount":
		return fmt.Sprintf("%s must be at most %s", field, v.limits.MaxAmount)
	case "minterm":
		return fmt.Sprintf("%s must be at least %d months", field, v.limits.MinTerm)
	case "maxterm":
		return fmt.Sprintf("%s must be at most %d months", field, v.limits.MaxTerm)
	case "notfuture":
		return field + " must not be in the future"
	default:
		return field + " is invalid"
	}
}

// ---------------------------------------------------------------------------
// Custom validations
// ---------------------------------------------------------------------------

func (v *Validator) minAmount(fl validator.FieldLevel) bool {
	amount, ok := originalDecimal(fl)
	if !ok {
		amount = decimal.NewFromFloat(fl.Field().Float())
	}
	return amount.GreaterThanOrEqual(v.limits.MinAmount)
}

func (v *Validator) maxAmount(fl validator.FieldLevel) bool {
	if !v.limits.MaxAmount.IsPositive() {
		return true
	}
	amount, ok := originalDecimal(fl)
	if !ok {
		amount = decimal.NewFromFloat(fl.Field().Float())
	}
	return amount.LessThanOrEqual(v.limits.MaxAmount)
}

func (v *Validator) minTerm(fl validator.FieldLevel) bool {
	return fl.Field().Int() >= int64(v.limits.MinTerm)
}

func (v *Validator) maxTerm(fl validator.FieldLevel) bool {
	return v.limits.MaxTerm <= 0 || fl.Field().Int() <= int64(v.limits.MaxTerm)
}

func (v *Validator) notFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !model.DateOf(t).After(model.DateOf(v.now()))
}

func digitsOnly(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// ---------------------------------------------------------------------------
// Type adapters
// ---------------------------------------------------------------------------

// decimalValue exposes decimals to the built-in numeric tags. Magnitudes
// outside the float64 range are clamped without expanding the exponent.
func decimalValue(field reflect.Value) any {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	switch magnitude := int64(d.NumDigits()) + int64(d.Exponent()); {
	case d.IsZero():
		return 0.0
	case magnitude > float64MaxDigits:
		return math.Inf(d.Sign())
	case magnitude < -float64MaxDigits:
		return float64(d.Sign()) * math.SmallestNonzeroFloat64
	}
	return d.InexactFloat64()
}

// float64MaxDigits bounds the decimal magnitude of any finite float64.
const float64MaxDigits = 330

// dateValue exposes dates to required/omitempty as a time.Time.
func dateValue(field reflect.Value) any {
	if d, ok := field.Interface().(model.Date); ok {
		return d.Time()
	}
	return nil
}

// originalDecimal recovers the exact decimal behind a converted field.
func originalDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	parent := reflect.Indirect(fl.Parent())
	if parent.Kind() != reflect.Struct {
		return decimal.Decimal{}, false
	}
	field := parent.FieldByName(fl.StructFieldName())
	if !field.IsValid() || !field.CanInterface() {
		return decimal.Decimal{}, false
	}
	d, ok := field.Interface().(decimal.Decimal)
	return d, ok
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// fieldPath drops the root struct name from the namespace, so nested fields
// read as "employment.salary".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
