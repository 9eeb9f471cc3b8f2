package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finbook/internal/adapter/http/dto"
	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
)

// TourService defines the behavior needed by TourHandler.
type TourService interface {
	CreateTour(input usecase.CreateTourInput) (*domain.Tour, error)
	GetTour(id string) (*domain.Tour, error)
	ListTours(limit, offset int) []domain.Tour
	UpdateTour(tour domain.Tour) (*domain.Tour, error)
	DeleteTour(id string) error
	AddMember(tourID, name string) (*domain.TourMember, error)
	AddExpense(input usecase.AddExpenseInput) (*domain.TourExpense, error)
	DeleteExpense(tourID, expenseID string) error
	Balances(tourID string) (map[string]float64, error)
	Settlements(tourID string) ([]domain.Settlement, error)
}

// TourHandler handles tour-related HTTP requests.
type TourHandler struct {
	tours TourService
}

// NewTourHandler creates a new TourHandler.
func NewTourHandler(tours TourService) *TourHandler {
	return &TourHandler{tours: tours}
}

// Create creates a tour with its initial member roster.
func (h *TourHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tour, err := h.tours.CreateTour(req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create tour", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TourFromDomain(tour))
}

// Get retrieves a tour by ID.
func (h *TourHandler) Get(w http.ResponseWriter, r *http.Request) {
	tour, err := h.tours.GetTour(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get tour", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TourFromDomain(tour))
}

// List returns tours, optionally paged by limit/offset query parameters.
func (h *TourHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := paginationFromQuery(w, r)
	if !ok {
		return
	}
	tours := h.tours.ListTours(limit, offset)

	writeJSON(w, http.StatusOK, dto.ListToursResponse{
		Tours: dto.ToursFromDomain(tours),
		Total: int64(len(tours)),
	})
}

// Update replaces a tour wholesale.
func (h *TourHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tour, err := h.tours.UpdateTour(req.ToDomain(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update tour", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TourFromDomain(tour))
}

// Delete removes a tour.
func (h *TourHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tours.DeleteTour(chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete tour", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddMember adds a member to the tour's roster.
func (h *TourHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	member, err := h.tours.AddMember(id, req.Name)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add member", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MemberResponse{ID: member.ID, Name: member.Name})
}

// AddExpense adds a shared expense to a tour.
func (h *TourHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.AddExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.tours.AddExpense(req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add expense", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseResponse{
		ID:           expense.ID,
		Description:  expense.Description,
		Amount:       expense.Amount,
		PaidBy:       expense.PaidBy,
		Participants: expense.Participants,
		Date:         expense.Date,
	})
}

// DeleteExpense removes one expense from a tour.
func (h *TourHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "id")
	expenseID := chi.URLParam(r, "expenseId")

	if err := h.tours.DeleteExpense(tourID, expenseID); err != nil {
		writeError(w, mapDomainError(err), "failed to delete expense", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Balances returns every member's net position, recomputed from the tour's
// current state.
func (h *TourHandler) Balances(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tour, err := h.tours.GetTour(id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get tour", err.Error())
		return
	}
	balances, err := h.tours.Balances(id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesResponse{Balances: dto.BalancesFromDomain(tour, balances)})
}

// Settlements returns the suggested transfers that settle the tour.
func (h *TourHandler) Settlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.tours.Settlements(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute settlements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementsResponse{Settlements: dto.SettlementsFromDomain(settlements)})
}
