package validate

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	inErrors "github.com/Alturino/nebula/internal/errors"
)

const DateLayout = "2006-01-02"

var (
	once     sync.Once
	validate *validator.Validate
	codeRe   = regexp.MustCompile(`^[0-9]{6}$`)
	now      = time.Now
)

func Get() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonTagName)
		validate.RegisterCustomTypeFunc(PriceValue, decimal.Decimal{})
		_ = validate.RegisterValidation("price", ValidatePrice)
		_ = validate.RegisterValidation("code6", ValidateCode)
		_ = validate.RegisterValidation("timeslot", ValidateTimeSlot)
		_ = validate.RegisterValidation("notpast", ValidateNotPast)
	})
	return validate
}

// Struct validates v and converts validator failures into a ValidationError
// keyed by json field name.
func Struct(c context.Context, v interface{}) error {
	err := Get().StructCtx(c, v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fe.Tag()
	}
	return inErrors.NewValidationError(fields)
}

func jsonTagName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

func PriceValue(v reflect.Value) interface{} {
	d, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func ValidatePrice(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}
	return d.IsPositive()
}

func IsCode(code string) bool {
	return codeRe.MatchString(code)
}

func ValidateCode(fl validator.FieldLevel) bool {
	return IsCode(fl.Field().String())
}

func ValidateTimeSlot(fl validator.FieldLevel) bool {
	return IsTimeSlot(fl.Field().String())
}

func ValidateNotPast(fl validator.FieldLevel) bool {
	date, err := time.ParseInLocation(DateLayout, fl.Field().String(), time.Local)
	if err != nil {
		return false
	}
	today := now()
	y, m, d := today.Date()
	return !date.Before(time.Date(y, m, d, 0, 0, 0, 0, time.Local))
}
