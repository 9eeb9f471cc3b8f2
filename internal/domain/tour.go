package domain

import "time"

// TourMember is a participant in a tour. Members exist only inside their
// parent tour and are referenced by expenses through their ID.
type TourMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TourExpense is a shared expense inside a tour. The amount is split in
// equal shares across Participants; PaidBy credits the payer in full.
type TourExpense struct {
	ID           string    `json:"id"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	PaidBy       string    `json:"paidBy"`
	Participants []string  `json:"participants"`
	Date         time.Time `json:"date"`
}

// Validate checks the expense's own fields. Membership of PaidBy and
// Participants is validated against the parent tour by ValidateAgainst.
func (e *TourExpense) Validate() error {
	if err := ValidateTitle(e.Description); err != nil {
		return err
	}
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if len(e.Participants) == 0 {
		return ErrNoParticipants
	}
	return nil
}

// ValidateAgainst checks that the payer and every participant belong to the
// tour's member roster. Expenses never reach a tour with dangling member
// references.
func (e *TourExpense) ValidateAgainst(tour *Tour) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if !tour.HasMember(e.PaidBy) {
		return ErrUnknownMember
	}
	for _, id := range e.Participants {
		if !tour.HasMember(id) {
			return ErrUnknownMember
		}
	}
	return nil
}

// Tour is a trip with its own member roster and shared expenses, accounted
// independently of groups and transactions. It exclusively owns its members
// and expenses.
type Tour struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	StartDate   *time.Time    `json:"startDate,omitempty"`
	EndDate     *time.Time    `json:"endDate,omitempty"`
	Description string        `json:"description,omitempty"`
	CreateDate  time.Time     `json:"createDate"`
	Members     []TourMember  `json:"members"`
	Expenses    []TourExpense `json:"expenses"`
}

// Validate checks the tour's fields. A tour is created with at least one
// member; members may be added later but never removed, so expenses cannot
// be orphaned.
func (t *Tour) Validate() error {
	if err := ValidateTitle(t.Name); err != nil {
		return err
	}
	if len(t.Members) == 0 {
		return ErrNoMembers
	}
	return nil
}

// HasMember reports whether the member ID is in the tour's roster.
func (t *Tour) HasMember(id string) bool {
	for _, m := range t.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Member returns the member with the given ID.
func (t *Tour) Member(id string) (TourMember, error) {
	for _, m := range t.Members {
		if m.ID == id {
			return m, nil
		}
	}
	return TourMember{}, ErrMemberNotFound
}

// Expense returns the expense with the given ID.
func (t *Tour) Expense(id string) (TourExpense, error) {
	for _, e := range t.Expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return TourExpense{}, ErrExpenseNotFound
}
