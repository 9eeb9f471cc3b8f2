package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/iho/finbook/internal/domain"
)

// TourUseCase owns the in-memory tour collection. Tours embed their members
// and expenses, so every mutation persists the whole collection.
type TourUseCase struct {
	mu    sync.RWMutex
	tours []domain.Tour

	saver Saver
	idGen IDGenerator
}

// NewTourUseCase loads the tour collection from the blob store.
func NewTourUseCase(ctx context.Context, store BlobStore, saver Saver, idGen IDGenerator) (*TourUseCase, error) {
	uc := &TourUseCase{
		saver: saver,
		idGen: idGen,
	}
	if err := loadCollection(ctx, store, KeyTours, &uc.tours); err != nil {
		return nil, fmt.Errorf("load tours: %w", err)
	}
	return uc, nil
}

// CreateTourInput represents input for creating a tour with its initial
// member roster.
type CreateTourInput struct {
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	MemberNames []string
}

// CreateTour creates a tour with the given members and no expenses, and
// appends it to the collection.
func (uc *TourUseCase) CreateTour(input CreateTourInput) (*domain.Tour, error) {
	members := make([]domain.TourMember, 0, len(input.MemberNames))
	for _, name := range input.MemberNames {
		if err := domain.ValidateMemberName(name); err != nil {
			return nil, err
		}
		members = append(members, domain.TourMember{
			ID:   uc.idGen.Generate(),
			Name: name,
		})
	}

	tour := domain.Tour{
		ID:          uc.idGen.Generate(),
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreateDate:  time.Now().UTC(),
		Members:     members,
		Expenses:    []domain.TourExpense{},
	}
	if err := tour.Validate(); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.tours = append(uc.tours, tour)
	uc.saveTours()
	return &tour, nil
}

// GetTour returns a deep copy of the tour with the given ID.
func (uc *TourUseCase) GetTour(id string) (*domain.Tour, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	i := uc.findTour(id)
	if i < 0 {
		return nil, domain.ErrTourNotFound
	}
	tour := copyTour(uc.tours[i])
	return &tour, nil
}

// ListTours returns deep copies of tours in creation order. Limit and
// offset page the result; both zero returns every tour.
func (uc *TourUseCase) ListTours(limit, offset int) []domain.Tour {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	page := paginate(uc.tours, limit, offset)
	result := make([]domain.Tour, len(page))
	for i, t := range page {
		result[i] = copyTour(t)
	}
	return result
}

// UpdateTour replaces the tour with the matching ID wholesale. Every
// expense in the replacement must reference members of the replacement's
// roster.
func (uc *TourUseCase) UpdateTour(tour domain.Tour) (*domain.Tour, error) {
	if err := tour.Validate(); err != nil {
		return nil, err
	}
	for i := range tour.Expenses {
		if err := tour.Expenses[i].ValidateAgainst(&tour); err != nil {
			return nil, err
		}
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := uc.findTour(tour.ID)
	if i < 0 {
		return nil, domain.ErrTourNotFound
	}
	if tour.CreateDate.IsZero() {
		tour.CreateDate = uc.tours[i].CreateDate
	}
	uc.tours[i] = copyTour(tour)
	uc.saveTours()
	return &tour, nil
}

// DeleteTour removes the tour with the given ID.
func (uc *TourUseCase) DeleteTour(id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := uc.findTour(id)
	if i < 0 {
		return domain.ErrTourNotFound
	}
	uc.tours = append(uc.tours[:i:i], uc.tours[i+1:]...)
	uc.saveTours()
	return nil
}

// AddMember adds a member to the tour's roster. Members are never removed;
// expenses reference them by ID.
func (uc *TourUseCase) AddMember(tourID, name string) (*domain.TourMember, error) {
	if err := domain.ValidateMemberName(name); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := uc.findTour(tourID)
	if i < 0 {
		return nil, domain.ErrTourNotFound
	}

	member := domain.TourMember{
		ID:   uc.idGen.Generate(),
		Name: name,
	}
	uc.tours[i].Members = append(uc.tours[i].Members, member)
	uc.saveTours()
	return &member, nil
}

// AddExpenseInput represents input for adding a shared expense to a tour.
type AddExpenseInput struct {
	TourID       string
	Description  string
	Amount       float64
	PaidBy       string
	Participants []string
	Date         time.Time
}

// AddExpense appends an expense to the tour. The payer and every
// participant must be in the tour's roster; dangling references are
// rejected here so the settlement engine never sees them.
func (uc *TourUseCase) AddExpense(input AddExpenseInput) (*domain.TourExpense, error) {
	if input.Date.IsZero() {
		input.Date = time.Now().UTC()
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := uc.findTour(input.TourID)
	if i < 0 {
		return nil, domain.ErrTourNotFound
	}

	expense := domain.TourExpense{
		ID:           uc.idGen.Generate(),
		Description:  input.Description,
		Amount:       input.Amount,
		PaidBy:       input.PaidBy,
		Participants: append([]string(nil), input.Participants...),
		Date:         input.Date,
	}
	if err := expense.ValidateAgainst(&uc.tours[i]); err != nil {
		return nil, err
	}

	uc.tours[i].Expenses = append(uc.tours[i].Expenses, expense)
	uc.saveTours()
	return &expense, nil
}

// DeleteExpense removes exactly the named expense from the tour; other
// expenses and the member roster are untouched.
func (uc *TourUseCase) DeleteExpense(tourID, expenseID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := uc.findTour(tourID)
	if i < 0 {
		return domain.ErrTourNotFound
	}
	expenses := uc.tours[i].Expenses
	for k := range expenses {
		if expenses[k].ID == expenseID {
			uc.tours[i].Expenses = append(expenses[:k:k], expenses[k+1:]...)
			uc.saveTours()
			return nil
		}
	}
	return domain.ErrExpenseNotFound
}

// Balances computes per-member net balances for the tour from its current
// state. Recomputed on every call.
func (uc *TourUseCase) Balances(tourID string) (map[string]float64, error) {
	tour, err := uc.GetTour(tourID)
	if err != nil {
		return nil, err
	}
	return domain.Balances(tour), nil
}

// Settlements computes the suggested transfers that settle the tour.
func (uc *TourUseCase) Settlements(tourID string) ([]domain.Settlement, error) {
	tour, err := uc.GetTour(tourID)
	if err != nil {
		return nil, err
	}
	return domain.Settlements(tour), nil
}

// findTour returns the index of the tour with the given ID, or -1. Callers
// hold uc.mu.
func (uc *TourUseCase) findTour(id string) int {
	for i := range uc.tours {
		if uc.tours[i].ID == id {
			return i
		}
	}
	return -1
}

// copyTour returns a copy whose members and expenses do not share backing
// arrays with the original.
func copyTour(t domain.Tour) domain.Tour {
	c := t
	c.Members = append([]domain.TourMember(nil), t.Members...)
	c.Expenses = make([]domain.TourExpense, len(t.Expenses))
	for i, e := range t.Expenses {
		c.Expenses[i] = e
		c.Expenses[i].Participants = append([]string(nil), e.Participants...)
	}
	return c
}

// saveTours enqueues a snapshot of the tour collection. Callers hold uc.mu.
func (uc *TourUseCase) saveTours() {
	data, err := json.Marshal(uc.tours)
	if err != nil {
		return
	}
	uc.saver.Save(KeyTours, data)
}
