package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finbook/internal/adapter/http/dto"
	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
)

// LedgerService defines the behavior needed by TransactionHandler and
// GroupHandler.
type LedgerService interface {
	AddTransaction(input usecase.AddTransactionInput) (*domain.Transaction, error)
	EditTransaction(input usecase.EditTransactionInput) (*domain.Transaction, error)
	DeleteTransaction(id string) error
	ListTransactions(filter usecase.TransactionFilter) ([]domain.Transaction, error)
	AddGroup(name string) (*domain.Group, error)
	EditGroup(id, name string) (*domain.Group, error)
	DeleteGroup(id string) error
	ListGroups() []domain.Group
	Summary(filter usecase.TransactionFilter) (domain.Summary, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	ledger LedgerService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledger LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// Create records a new transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tx, err := h.ledger.AddTransaction(req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}

// Update edits a transaction in place.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tx, err := h.ledger.EditTransaction(req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to edit transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(tx))
}

// Delete removes a transaction.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.ledger.DeleteTransaction(id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete transaction", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List returns transactions filtered by scope, type and group.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := filterFromQuery(w, r)
	if !ok {
		return
	}

	txs, err := h.ledger.ListTransactions(filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txs),
		Total:        int64(len(txs)),
	})
}

// Summary returns income/expense totals for the requested scope.
func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	filter, ok := filterFromQuery(w, r)
	if !ok {
		return
	}

	summary, err := h.ledger.Summary(filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}

// Overview returns the overall, personal and per-group totals in one
// response.
func (h *TransactionHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overall, err := h.ledger.Summary(usecase.TransactionFilter{})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute summary", err.Error())
		return
	}
	personal, err := h.ledger.Summary(usecase.TransactionFilter{Scope: usecase.ScopePersonal})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute summary", err.Error())
		return
	}

	groups := h.ledger.ListGroups()
	groupSummaries := make([]*dto.GroupSummaryResponse, 0, len(groups))
	for i := range groups {
		summary, err := h.ledger.Summary(usecase.TransactionFilter{
			Scope:   usecase.ScopeGroup,
			GroupID: groups[i].ID,
		})
		if err != nil {
			writeError(w, mapDomainError(err), "failed to compute summary", err.Error())
			return
		}
		groupSummaries = append(groupSummaries, &dto.GroupSummaryResponse{
			Group:   dto.GroupFromDomain(&groups[i]),
			Summary: dto.SummaryFromDomain(summary),
		})
	}
	dto.SortGroupSummaries(groupSummaries)

	writeJSON(w, http.StatusOK, dto.OverviewResponse{
		Overall:  dto.SummaryFromDomain(overall),
		Personal: dto.SummaryFromDomain(personal),
		Groups:   groupSummaries,
	})
}

// filterFromQuery builds a transaction filter from query parameters. It
// writes a 400 and returns false on an unknown scope or type.
func filterFromQuery(w http.ResponseWriter, r *http.Request) (usecase.TransactionFilter, bool) {
	filter := usecase.TransactionFilter{
		GroupID: r.URL.Query().Get("group_id"),
	}

	switch scope := r.URL.Query().Get("scope"); scope {
	case "":
		if filter.GroupID != "" {
			filter.Scope = usecase.ScopeGroup
		}
	case "personal":
		filter.Scope = usecase.ScopePersonal
	case "group":
		filter.Scope = usecase.ScopeGroup
	default:
		writeError(w, http.StatusBadRequest, "invalid scope", scope)
		return filter, false
	}

	switch txType := r.URL.Query().Get("type"); txType {
	case "":
	case string(domain.TypeIncome), string(domain.TypeExpense):
		filter.Type = domain.TransactionType(txType)
	default:
		writeError(w, http.StatusBadRequest, "invalid transaction type", txType)
		return filter, false
	}

	var ok bool
	if filter.Limit, filter.Offset, ok = paginationFromQuery(w, r); !ok {
		return filter, false
	}

	return filter, true
}

// paginationFromQuery parses optional limit/offset query parameters. It
// writes a 400 and returns false on a non-integer value. Range clamping
// happens in the use case.
func paginationFromQuery(w http.ResponseWriter, r *http.Request) (limit, offset int, ok bool) {
	var err error
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit", raw)
			return 0, 0, false
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if offset, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset", raw)
			return 0, 0, false
		}
	}
	return limit, offset, true
}
