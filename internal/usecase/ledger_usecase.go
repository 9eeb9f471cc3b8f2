package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
)

// LedgerUseCase owns the in-memory transaction and group collections. The
// collections are loaded once at startup and are the source of truth for
// the session; every mutation re-serializes the affected collection and
// hands it to the Saver.
type LedgerUseCase struct {
	mu           sync.RWMutex
	transactions []domain.Transaction
	groups       []domain.Group

	saver Saver
	idGen IDGenerator
}

// NewLedgerUseCase loads both collections from the blob store and returns a
// ready ledger. No mutation is accepted before the initial load completes.
func NewLedgerUseCase(ctx context.Context, store BlobStore, saver Saver, idGen IDGenerator) (*LedgerUseCase, error) {
	uc := &LedgerUseCase{
		saver: saver,
		idGen: idGen,
	}
	if err := loadCollection(ctx, store, KeyTransactions, &uc.transactions); err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if err := loadCollection(ctx, store, KeyGroups, &uc.groups); err != nil {
		return nil, fmt.Errorf("load groups: %w", err)
	}
	return uc, nil
}

// loadCollection unmarshals the blob under key into dst. A key that has
// never been written leaves dst as the empty collection.
func loadCollection(ctx context.Context, store BlobStore, key string, dst any) error {
	data, err := store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCollectionNotFound) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, dst)
}

// AddTransactionInput represents input for creating a transaction.
type AddTransactionInput struct {
	Type    domain.TransactionType
	Title   string
	Amount  decimal.Decimal
	Date    time.Time
	GroupID string
}

// AddTransaction creates a transaction and inserts it at the front of the
// collection, newest first.
func (uc *LedgerUseCase) AddTransaction(input AddTransactionInput) (*domain.Transaction, error) {
	if input.Date.IsZero() {
		input.Date = time.Now().UTC()
	}

	tx := domain.Transaction{
		ID:      uc.idGen.Generate(),
		Type:    input.Type,
		Title:   input.Title,
		Amount:  input.Amount,
		Date:    input.Date,
		GroupID: input.GroupID,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if tx.GroupID != "" && uc.findGroup(tx.GroupID) < 0 {
		return nil, domain.ErrGroupNotFound
	}

	uc.transactions = append([]domain.Transaction{tx}, uc.transactions...)
	uc.saveTransactions()
	return &tx, nil
}

// EditTransactionInput represents input for editing a transaction in place.
type EditTransactionInput struct {
	ID      string
	Type    domain.TransactionType
	Title   string
	Amount  decimal.Decimal
	Date    time.Time
	GroupID string
}

// EditTransaction replaces the transaction with the matching ID.
func (uc *LedgerUseCase) EditTransaction(input EditTransactionInput) (*domain.Transaction, error) {
	tx := domain.Transaction{
		ID:      input.ID,
		Type:    input.Type,
		Title:   input.Title,
		Amount:  input.Amount,
		Date:    input.Date,
		GroupID: input.GroupID,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if tx.GroupID != "" && uc.findGroup(tx.GroupID) < 0 {
		return nil, domain.ErrGroupNotFound
	}

	for i := range uc.transactions {
		if uc.transactions[i].ID == tx.ID {
			if tx.Date.IsZero() {
				tx.Date = uc.transactions[i].Date
			}
			uc.transactions[i] = tx
			uc.saveTransactions()
			return &tx, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

// DeleteTransaction removes the transaction with the given ID.
func (uc *LedgerUseCase) DeleteTransaction(id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for i := range uc.transactions {
		if uc.transactions[i].ID == id {
			uc.transactions = append(uc.transactions[:i:i], uc.transactions[i+1:]...)
			uc.saveTransactions()
			return nil
		}
	}
	return domain.ErrTransactionNotFound
}

// AddGroup creates a group and inserts it at the front of the collection.
func (uc *LedgerUseCase) AddGroup(name string) (*domain.Group, error) {
	group := domain.Group{
		ID:   uc.idGen.Generate(),
		Name: name,
	}
	if err := group.Validate(); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.groups = append([]domain.Group{group}, uc.groups...)
	uc.saveGroups()
	return &group, nil
}

// EditGroup renames the group with the matching ID.
func (uc *LedgerUseCase) EditGroup(id, name string) (*domain.Group, error) {
	group := domain.Group{ID: id, Name: name}
	if err := group.Validate(); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := uc.findGroup(id)
	if i < 0 {
		return nil, domain.ErrGroupNotFound
	}
	uc.groups[i] = group
	uc.saveGroups()
	return &group, nil
}

// DeleteGroup removes the group and cascades to every transaction attached
// to it. Both collections are saved; unrelated entries are untouched.
func (uc *LedgerUseCase) DeleteGroup(id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := uc.findGroup(id)
	if i < 0 {
		return domain.ErrGroupNotFound
	}
	uc.groups = append(uc.groups[:i:i], uc.groups[i+1:]...)

	kept := uc.transactions[:0:0]
	for _, tx := range uc.transactions {
		if tx.GroupID != id {
			kept = append(kept, tx)
		}
	}
	uc.transactions = kept

	uc.saveGroups()
	uc.saveTransactions()
	return nil
}

// TransactionScope narrows transaction listings and summaries.
type TransactionScope string

const (
	ScopeAll      TransactionScope = ""
	ScopePersonal TransactionScope = "personal"
	ScopeGroup    TransactionScope = "group"
)

// TransactionFilter represents filters for listing transactions. Zero
// values mean "no filter". Filters compose. Limit and Offset page the
// filtered result; both zero returns everything.
type TransactionFilter struct {
	Scope   TransactionScope
	GroupID string
	Type    domain.TransactionType
	Limit   int
	Offset  int
}

// ListTransactions returns the transactions matching the filter, newest
// first. The result is a copy and safe to hold across mutations.
func (uc *LedgerUseCase) ListTransactions(filter TransactionFilter) ([]domain.Transaction, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	if filter.Scope == ScopeGroup && filter.GroupID != "" && uc.findGroup(filter.GroupID) < 0 {
		return nil, domain.ErrGroupNotFound
	}

	result := make([]domain.Transaction, 0, len(uc.transactions))
	for _, tx := range uc.transactions {
		if matches(tx, filter) {
			result = append(result, tx)
		}
	}
	return paginate(result, filter.Limit, filter.Offset), nil
}

// paginate slices the result per validated limit/offset. Both zero means
// the full result.
func paginate[T any](items []T, limit, offset int) []T {
	if limit == 0 && offset == 0 {
		return items
	}
	limit, offset = domain.ValidatePagination(limit, offset)
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func matches(tx domain.Transaction, filter TransactionFilter) bool {
	switch filter.Scope {
	case ScopePersonal:
		if !tx.Personal() {
			return false
		}
	case ScopeGroup:
		if tx.Personal() {
			return false
		}
		if filter.GroupID != "" && tx.GroupID != filter.GroupID {
			return false
		}
	}
	if filter.Type != "" && tx.Type != filter.Type {
		return false
	}
	return true
}

// ListGroups returns all groups, newest first.
func (uc *LedgerUseCase) ListGroups() []domain.Group {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	result := make([]domain.Group, len(uc.groups))
	copy(result, uc.groups)
	return result
}

// Summary recomputes income/expense totals over the transactions matching
// the filter. Nothing is cached; every call walks the current collection.
// Pagination is ignored: totals always cover the whole filtered set.
func (uc *LedgerUseCase) Summary(filter TransactionFilter) (domain.Summary, error) {
	filter.Limit = 0
	filter.Offset = 0
	txs, err := uc.ListTransactions(filter)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(txs), nil
}

// findGroup returns the index of the group with the given ID, or -1.
// Callers hold uc.mu.
func (uc *LedgerUseCase) findGroup(id string) int {
	for i := range uc.groups {
		if uc.groups[i].ID == id {
			return i
		}
	}
	return -1
}

// saveTransactions enqueues a snapshot of the transaction collection.
// Callers hold uc.mu.
func (uc *LedgerUseCase) saveTransactions() {
	data, err := json.Marshal(uc.transactions)
	if err != nil {
		return
	}
	uc.saver.Save(KeyTransactions, data)
}

// saveGroups enqueues a snapshot of the group collection. Callers hold uc.mu.
func (uc *LedgerUseCase) saveGroups() {
	data, err := json.Marshal(uc.groups)
	if err != nil {
		return
	}
	uc.saver.Save(KeyGroups, data)
}
