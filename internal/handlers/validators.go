package handlers

import (
	"fmt"
	"sync"

	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// RegisterValidators adds the `currency` and `txntype` binding tags to gin's validator.
// Safe to call more than once.
func RegisterValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("currency", validateCurrency); err != nil {
			validatorsErr = err
			return
		}
		validatorsErr = v.RegisterValidation("txntype", validateTransactionType)
	})
	return validatorsErr
}

func validateCurrency(fl validator.FieldLevel) bool {
	return domain.IsSupportedCurrency(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	_, err := domain.ParseTransactionType(fl.Field().String())
	return err == nil
}
