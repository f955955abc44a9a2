package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the `currency` binding tag, which accepts only
// codes present in registry, and the `transaction_type` tag. Both match
// case-insensitively, the same way the services normalize them.
func RegisterValidators(registry *domain.CurrencyRegistry) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	if err := v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return registry.Has(domain.NormalizeCurrencyCode(fl.Field().String()))
	}); err != nil {
		return err
	}
	return v.RegisterValidation("transaction_type", func(fl validator.FieldLevel) bool {
		return domain.TransactionType(strings.ToUpper(strings.TrimSpace(fl.Field().String()))).IsValid()
	})
}

func transactionTypeNames() string {
	types := domain.TransactionTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, " ")
}

// bindErrorMessage renders binding failures for API clients. Failed `currency`
// checks are reported the same way the domain reports unknown codes.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request format: " + err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "currency":
			msgs = append(msgs, fmt.Sprintf("unknown currency code '%v'", strings.ToUpper(fmt.Sprint(fe.Value()))))
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "transaction_type":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", fe.Field(), transactionTypeNames()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag()))
		}
	}
	return "Invalid request: " + strings.Join(msgs, "; ")
}
