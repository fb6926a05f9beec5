package models

import "github.com/shopspring/decimal"

type Summary struct {
	Month         string          `json:"month"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetBalance    decimal.Decimal `json:"net_balance"`
}

type BreakdownItem struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
}

type TrendPoint struct {
	Date       string          `json:"date_label"`
	DailySpent decimal.Decimal `json:"daily_spent"`
}

// CategorySpend is the expense total of one owned category for a month,
// zero when nothing was spent.
type CategorySpend struct {
	CategoryID   string
	CategoryName string
	TotalSpent   decimal.Decimal
}

// BudgetHealth compares spend against budget for one category.
type BudgetHealth struct {
	CategoryID     string          `json:"categoryId"`
	CategoryName   string          `json:"categoryName"`
	TotalSpent     decimal.Decimal `json:"totalSpent"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount"`
	Remaining      decimal.Decimal `json:"remaining"`
	IsOverBudget   bool            `json:"isOverBudget"`
}
