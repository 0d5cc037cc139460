package models

import "github.com/shopspring/decimal"

// Date layout used by every payload date field.
const DateLayout = "2006-01-02"

// TransactionKind separates money leaving, entering and moving between accounts.
type TransactionKind string

const (
	TransactionExpense  TransactionKind = "expense"
	TransactionIncome   TransactionKind = "income"
	TransactionTransfer TransactionKind = "transfer"
)

// Transaction is the payload of the "transactions" table.
type Transaction struct {
	Kind      TransactionKind `json:"kind"`
	Date      string          `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Category  string          `json:"category"`
	Merchant  string          `json:"merchant,omitempty"`
	Note      string          `json:"note,omitempty"`
	AccountID string          `json:"accountId,omitempty"`
}

// Holding is the payload of the "holdings" table: a position in one security.
type Holding struct {
	SecurityID  string          `json:"securityId"`
	Quantity    decimal.Decimal `json:"quantity"`
	AverageCost decimal.Decimal `json:"averageCost"`
	Currency    string          `json:"currency"`
}

// Goal is the payload of the "goals" table.
type Goal struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Currency      string          `json:"currency"`
	TargetDate    string          `json:"targetDate,omitempty"`
}

// Liability is the payload of the "liabilities" table. InterestRate is an
// annual percentage.
type Liability struct {
	Name         string          `json:"name"`
	Principal    decimal.Decimal `json:"principal"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	InterestRate decimal.Decimal `json:"interestRate"`
	Currency     string          `json:"currency"`
}

// SecurityKind classifies a tradable instrument.
type SecurityKind string

const (
	SecurityStock      SecurityKind = "stock"
	SecurityMutualFund SecurityKind = "mutual_fund"
	SecurityETF        SecurityKind = "etf"
	SecurityBond       SecurityKind = "bond"
	SecurityOther      SecurityKind = "other"
)

// Security is the payload of the "securities" table.
type Security struct {
	Symbol   string       `json:"symbol"`
	Name     string       `json:"name"`
	Kind     SecurityKind `json:"kind"`
	Currency string       `json:"currency"`
}

// Price is the payload of the "prices" table. Rows are written both by users
// and by the scheduled price importer; Source tells them apart.
type Price struct {
	SecurityID string          `json:"securityId"`
	Date       string          `json:"date"`
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency"`
	Source     string          `json:"source"`
}
