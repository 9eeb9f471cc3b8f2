package dto

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
)

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Title   string          `json:"title"`
	Amount  decimal.Decimal `json:"amount"`
	Date    time.Time       `json:"date"`
	GroupID string          `json:"groupId,omitempty"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:      t.ID,
		Type:    string(t.Type),
		Title:   t.Title,
		Amount:  t.Amount,
		Date:    t.Date,
		GroupID: t.GroupID,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i := range txs {
		result[i] = TransactionFromDomain(&txs[i])
	}
	return result
}

// ListTransactionsResponse wraps a transaction listing.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// GroupResponse represents a group in API responses.
type GroupResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GroupFromDomain converts a domain group to a response.
func GroupFromDomain(g *domain.Group) *GroupResponse {
	return &GroupResponse{ID: g.ID, Name: g.Name}
}

// GroupsFromDomain converts domain groups to responses.
func GroupsFromDomain(groups []domain.Group) []*GroupResponse {
	result := make([]*GroupResponse, len(groups))
	for i := range groups {
		result[i] = GroupFromDomain(&groups[i])
	}
	return result
}

// ListGroupsResponse wraps a group listing.
type ListGroupsResponse struct {
	Groups []*GroupResponse `json:"groups"`
	Total  int64            `json:"total"`
}

// SummaryResponse represents income/expense totals.
type SummaryResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// SummaryFromDomain converts a domain summary to a response.
func SummaryFromDomain(s domain.Summary) *SummaryResponse {
	return &SummaryResponse{
		Income:  s.Income,
		Expense: s.Expense,
		Balance: s.Balance,
	}
}

// MemberResponse represents a tour member in API responses.
type MemberResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ExpenseResponse represents a tour expense in API responses.
type ExpenseResponse struct {
	ID           string    `json:"id"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	PaidBy       string    `json:"paidBy"`
	Participants []string  `json:"participants"`
	Date         time.Time `json:"date"`
}

// TourResponse represents a tour in API responses.
type TourResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	StartDate   *time.Time        `json:"startDate,omitempty"`
	EndDate     *time.Time        `json:"endDate,omitempty"`
	CreateDate  time.Time         `json:"createDate"`
	Members     []MemberResponse  `json:"members"`
	Expenses    []ExpenseResponse `json:"expenses"`
}

// TourFromDomain converts a domain tour to a response.
func TourFromDomain(t *domain.Tour) *TourResponse {
	resp := &TourResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		CreateDate:  t.CreateDate,
		Members:     make([]MemberResponse, 0, len(t.Members)),
		Expenses:    make([]ExpenseResponse, 0, len(t.Expenses)),
	}
	for _, m := range t.Members {
		resp.Members = append(resp.Members, MemberResponse{ID: m.ID, Name: m.Name})
	}
	for _, e := range t.Expenses {
		resp.Expenses = append(resp.Expenses, ExpenseResponse{
			ID:           e.ID,
			Description:  e.Description,
			Amount:       e.Amount,
			PaidBy:       e.PaidBy,
			Participants: e.Participants,
			Date:         e.Date,
		})
	}
	return resp
}

// ToursFromDomain converts domain tours to responses.
func ToursFromDomain(tours []domain.Tour) []*TourResponse {
	result := make([]*TourResponse, len(tours))
	for i := range tours {
		result[i] = TourFromDomain(&tours[i])
	}
	return result
}

// ListToursResponse wraps a tour listing.
type ListToursResponse struct {
	Tours []*TourResponse `json:"tours"`
	Total int64           `json:"total"`
}

// BalanceResponse is one member's net position in a tour.
type BalanceResponse struct {
	MemberID string  `json:"memberId"`
	Name     string  `json:"name"`
	Balance  float64 `json:"balance"`
}

// BalancesFromDomain pairs engine balances with member names, in roster
// order.
func BalancesFromDomain(tour *domain.Tour, balances map[string]float64) []BalanceResponse {
	result := make([]BalanceResponse, 0, len(tour.Members))
	for _, m := range tour.Members {
		result = append(result, BalanceResponse{
			MemberID: m.ID,
			Name:     m.Name,
			Balance:  balances[m.ID],
		})
	}
	return result
}

// BalancesResponse wraps per-member balances for a tour.
type BalancesResponse struct {
	Balances []BalanceResponse `json:"balances"`
}

// SettlementResponse represents one suggested transfer.
type SettlementResponse struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// SettlementsFromDomain converts engine settlements to responses.
func SettlementsFromDomain(settlements []domain.Settlement) []SettlementResponse {
	result := make([]SettlementResponse, len(settlements))
	for i, s := range settlements {
		result[i] = SettlementResponse{From: s.From, To: s.To, Amount: s.Amount}
	}
	return result
}

// SettlementsResponse wraps the suggested transfers for a tour.
type SettlementsResponse struct {
	Settlements []SettlementResponse `json:"settlements"`
}

// GroupSummaryResponse is the per-group breakdown in the overview.
type GroupSummaryResponse struct {
	Group   *GroupResponse   `json:"group"`
	Summary *SummaryResponse `json:"summary"`
}

// OverviewResponse is the home-screen aggregate: overall, personal and
// per-group totals.
type OverviewResponse struct {
	Overall  *SummaryResponse        `json:"overall"`
	Personal *SummaryResponse        `json:"personal"`
	Groups   []*GroupSummaryResponse `json:"groups"`
}

// SortGroupSummaries orders the per-group breakdown by group name for a
// stable overview.
func SortGroupSummaries(groups []*GroupSummaryResponse) {
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Group.Name < groups[j].Group.Name
	})
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
