package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
)

// CreateTransactionRequest represents a request to record a transaction.
type CreateTransactionRequest struct {
	Type    string          `json:"type"`
	Title   string          `json:"title"`
	Amount  decimal.Decimal `json:"amount"`
	Date    *time.Time      `json:"date,omitempty"`
	GroupID string          `json:"groupId,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() usecase.AddTransactionInput {
	input := usecase.AddTransactionInput{
		Type:    domain.TransactionType(r.Type),
		Title:   r.Title,
		Amount:  r.Amount,
		GroupID: r.GroupID,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}

// UpdateTransactionRequest represents a request to edit a transaction in
// place. The transaction ID comes from the URL.
type UpdateTransactionRequest struct {
	Type    string          `json:"type"`
	Title   string          `json:"title"`
	Amount  decimal.Decimal `json:"amount"`
	Date    *time.Time      `json:"date,omitempty"`
	GroupID string          `json:"groupId,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTransactionRequest) ToUseCaseInput(id string) usecase.EditTransactionInput {
	input := usecase.EditTransactionInput{
		ID:      id,
		Type:    domain.TransactionType(r.Type),
		Title:   r.Title,
		Amount:  r.Amount,
		GroupID: r.GroupID,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}

// CreateGroupRequest represents a request to create a group.
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// UpdateGroupRequest represents a request to rename a group.
type UpdateGroupRequest struct {
	Name string `json:"name"`
}

// CreateTourRequest represents a request to create a tour with its initial
// member roster.
type CreateTourRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Members     []string   `json:"members"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTourRequest) ToUseCaseInput() usecase.CreateTourInput {
	return usecase.CreateTourInput{
		Name:        r.Name,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		MemberNames: r.Members,
	}
}

// MemberPayload is a tour member inside a wholesale tour update.
type MemberPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ExpensePayload is a tour expense inside a wholesale tour update.
type ExpensePayload struct {
	ID           string    `json:"id"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	PaidBy       string    `json:"paidBy"`
	Participants []string  `json:"participants"`
	Date         time.Time `json:"date"`
}

// UpdateTourRequest replaces a tour wholesale: metadata, roster and
// expenses. The tour ID comes from the URL.
type UpdateTourRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	StartDate   *time.Time       `json:"startDate,omitempty"`
	EndDate     *time.Time       `json:"endDate,omitempty"`
	CreateDate  *time.Time       `json:"createDate,omitempty"`
	Members     []MemberPayload  `json:"members"`
	Expenses    []ExpensePayload `json:"expenses"`
}

// ToDomain converts the payload to a domain tour.
func (r *UpdateTourRequest) ToDomain(id string) domain.Tour {
	tour := domain.Tour{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
	if r.CreateDate != nil {
		tour.CreateDate = *r.CreateDate
	}
	for _, m := range r.Members {
		tour.Members = append(tour.Members, domain.TourMember{ID: m.ID, Name: m.Name})
	}
	tour.Expenses = make([]domain.TourExpense, 0, len(r.Expenses))
	for _, e := range r.Expenses {
		tour.Expenses = append(tour.Expenses, domain.TourExpense{
			ID:           e.ID,
			Description:  e.Description,
			Amount:       e.Amount,
			PaidBy:       e.PaidBy,
			Participants: e.Participants,
			Date:         e.Date,
		})
	}
	return tour
}

// AddMemberRequest represents a request to add a member to a tour.
type AddMemberRequest struct {
	Name string `json:"name"`
}

// AddExpenseRequest represents a request to add a shared expense to a tour.
// The tour ID comes from the URL.
type AddExpenseRequest struct {
	Description  string     `json:"description"`
	Amount       float64    `json:"amount"`
	PaidBy       string     `json:"paidBy"`
	Participants []string   `json:"participants"`
	Date         *time.Time `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddExpenseRequest) ToUseCaseInput(tourID string) usecase.AddExpenseInput {
	input := usecase.AddExpenseInput{
		TourID:       tourID,
		Description:  r.Description,
		Amount:       r.Amount,
		PaidBy:       r.PaidBy,
		Participants: r.Participants,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}
