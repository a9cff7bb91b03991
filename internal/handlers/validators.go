package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
)

// registerValidators adds the custom binding tags used by request DTOs.
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("notfuture", notFutureDate)
}

// notFutureDate accepts YYYY-MM-DD strings no later than tomorrow (UTC).
// Unparseable values pass here and are rejected by the datetime tag.
func notFutureDate(fl validator.FieldLevel) bool {
	date, err := time.Parse(time.DateOnly, fl.Field().String())
	if err != nil {
		return true
	}
	return !date.After(domain.LatestTransactionDate(time.Now()))
}
