package tables

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-fin-keeper/models"
)

// Default returns the registry of every finance table.
func Default() *Registry {
	return NewRegistry(
		NewDescriptor(models.TableSecurities, validateSecurity),
		NewDescriptor(models.TablePrices, validatePrice),
		NewDescriptor(models.TableHoldings, validateHolding),
		NewDescriptor(models.TableTransactions, validateTransaction),
		NewDescriptor(models.TableGoals, validateGoal),
		NewDescriptor(models.TableLiabilities, validateLiability),
	)
}

func validateTransaction(t models.Transaction) error {
	switch t.Kind {
	case models.TransactionExpense, models.TransactionIncome, models.TransactionTransfer:
	default:
		return fmt.Errorf("%w: transaction kind %q", ErrInvalidKind, t.Kind)
	}
	if err := requireDate("date", t.Date); err != nil {
		return err
	}
	if t.Amount.IsZero() {
		return fmt.Errorf("%w: amount must not be zero", ErrInvalidAmount)
	}
	if err := requireText("category", t.Category); err != nil {
		return err
	}
	return requireCurrency(t.Currency)
}

func validateHolding(h models.Holding) error {
	if err := requireText("securityId", h.SecurityID); err != nil {
		return err
	}
	if err := requireNonNegative("quantity", h.Quantity); err != nil {
		return err
	}
	if err := requireNonNegative("averageCost", h.AverageCost); err != nil {
		return err
	}
	return requireCurrency(h.Currency)
}

func validateGoal(g models.Goal) error {
	if err := requireText("name", g.Name); err != nil {
		return err
	}
	if !g.TargetAmount.IsPositive() {
		return fmt.Errorf("%w: targetAmount must be positive", ErrInvalidAmount)
	}
	if err := requireNonNegative("currentAmount", g.CurrentAmount); err != nil {
		return err
	}
	if g.TargetDate != "" {
		if err := requireDate("targetDate", g.TargetDate); err != nil {
			return err
		}
	}
	return requireCurrency(g.Currency)
}

var maxInterestRate = decimal.NewFromInt(100)

func validateLiability(l models.Liability) error {
	if err := requireText("name", l.Name); err != nil {
		return err
	}
	if !l.Principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive", ErrInvalidAmount)
	}
	if err := requireNonNegative("outstanding", l.Outstanding); err != nil {
		return err
	}
	if l.InterestRate.IsNegative() || l.InterestRate.GreaterThan(maxInterestRate) {
		return fmt.Errorf("%w: interestRate must be within [0, 100]", ErrInvalidAmount)
	}
	return requireCurrency(l.Currency)
}

func validateSecurity(s models.Security) error {
	if err := requireText("symbol", s.Symbol); err != nil {
		return err
	}
	if err := requireText("name", s.Name); err != nil {
		return err
	}
	switch s.Kind {
	case models.SecurityStock, models.SecurityMutualFund, models.SecurityETF, models.SecurityBond, models.SecurityOther:
	default:
		return fmt.Errorf("%w: security kind %q", ErrInvalidKind, s.Kind)
	}
	return requireCurrency(s.Currency)
}

func validatePrice(p models.Price) error {
	if err := requireText("securityId", p.SecurityID); err != nil {
		return err
	}
	if err := requireDate("date", p.Date); err != nil {
		return err
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", ErrInvalidAmount)
	}
	if err := requireText("source", p.Source); err != nil {
		return err
	}
	return requireCurrency(p.Currency)
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	return nil
}

func requireDate(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	if _, err := time.Parse(models.DateLayout, value); err != nil {
		return fmt.Errorf("%w: %s %q", ErrInvalidDate, field, value)
	}
	return nil
}

func requireNonNegative(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidAmount, field)
	}
	return nil
}

func requireCurrency(code string) error {
	if code == "" {
		return fmt.Errorf("%w: currency", ErrMissingField)
	}
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	return nil
}
