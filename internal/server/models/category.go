package models

import "time"

// EntryType classifies categories and transactions as money coming in or
// going out.
type EntryType string

const (
	EntryTypeExpense EntryType = "Expense"
	EntryTypeIncome  EntryType = "Income"
)

func (t EntryType) Valid() bool {
	return t == EntryTypeExpense || t == EntryTypeIncome
}

type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Type      EntryType `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}
