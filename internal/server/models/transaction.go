package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense record. Date is a calendar date
// in YYYY-MM-DD form. CategoryName is filled from a join on reads.
type Transaction struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	CategoryID   *string         `json:"category_id"`
	CategoryName *string         `json:"category_name"`
	Type         EntryType       `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Date         string          `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TransactionFilter narrows a transaction listing. Zero values mean
// "no constraint". MonthStart/MonthEnd form a half-open date range.
type TransactionFilter struct {
	MonthStart *time.Time
	MonthEnd   *time.Time
	Type       EntryType
	CategoryID string
}
