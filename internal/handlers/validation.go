package handlers

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidationsOnce sync.Once

// RegisterValidations teaches gin's validator about decimal amounts:
// `dpositive` (> 0) and `dnonnegative` (>= 0). Safe to call more than once.
func RegisterValidations() {
	registerValidationsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("dpositive", decimalCheck(decimal.Decimal.IsPositive))
		_ = v.RegisterValidation("dnonnegative", decimalCheck(func(d decimal.Decimal) bool { return !d.IsNegative() }))
	})
}

// decimalValue lets the validator see a decimal as its string form.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func decimalCheck(pred func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && pred(d)
	}
}
