package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes income from expense entries.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single income or expense entry. A transaction with an
// empty GroupID is personal; otherwise it belongs to the named group.
type Transaction struct {
	ID      string          `json:"id"`
	Type    TransactionType `json:"type"`
	Title   string          `json:"title"`
	Amount  decimal.Decimal `json:"amount"`
	Date    time.Time       `json:"date"`
	GroupID string          `json:"groupId,omitempty"`
}

// Personal reports whether the transaction is attached to no group.
func (t *Transaction) Personal() bool {
	return t.GroupID == ""
}

// Validate checks the transaction's own fields. Group existence is the
// ledger's concern, not the entity's.
func (t *Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// Group is a named bucket transactions can be attached to. Deleting a group
// cascades to every transaction referencing it.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Validate checks the group's fields.
func (g *Group) Validate() error {
	return ValidateTitle(g.Name)
}

// Summary is the aggregate view over a set of transactions.
// Balance is always Income minus Expense.
type Summary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// Summarize computes income/expense totals over transactions. Totals are
// recomputed from the full slice on every call.
func Summarize(transactions []Transaction) Summary {
	income := decimal.Zero
	expense := decimal.Zero
	for _, tx := range transactions {
		switch tx.Type {
		case TypeIncome:
			income = income.Add(tx.Amount)
		case TypeExpense:
			expense = expense.Add(tx.Amount)
		}
	}
	return Summary{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}
