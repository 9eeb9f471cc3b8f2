package domain

import (
	"math"
	"testing"
	"time"
)

func tourWith(members []string, expenses []TourExpense) *Tour {
	t := &Tour{
		ID:         "tour-1",
		Name:       "test tour",
		CreateDate: time.Now().UTC(),
		Expenses:   expenses,
	}
	for _, m := range members {
		t.Members = append(t.Members, TourMember{ID: m, Name: m})
	}
	return t
}

func TestBalances_SumToZero(t *testing.T) {
	tests := []struct {
		name     string
		members  []string
		expenses []TourExpense
	}{
		{
			name:    "no expenses",
			members: []string{"a", "b", "c"},
		},
		{
			name:    "single expense payer participates",
			members: []string{"a", "b", "c"},
			expenses: []TourExpense{
				{ID: "e1", Amount: 300, PaidBy: "a", Participants: []string{"a", "b", "c"}},
			},
		},
		{
			name:    "payer not a participant",
			members: []string{"a", "b"},
			expenses: []TourExpense{
				{ID: "e1", Amount: 50, PaidBy: "a", Participants: []string{"b"}},
			},
		},
		{
			name:    "amount not evenly divisible",
			members: []string{"a", "b", "c"},
			expenses: []TourExpense{
				{ID: "e1", Amount: 100, PaidBy: "a", Participants: []string{"a", "b", "c"}},
				{ID: "e2", Amount: 33.34, PaidBy: "b", Participants: []string{"a", "c"}},
				{ID: "e3", Amount: 0.01, PaidBy: "c", Participants: []string{"a", "b", "c"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := Balances(tourWith(tt.members, tt.expenses))

			if len(balances) != len(tt.members) {
				t.Fatalf("expected %d balance entries, got %d", len(tt.members), len(balances))
			}
			sum := 0.0
			for _, b := range balances {
				sum += b
			}
			if math.Abs(sum) > 1e-9 {
				t.Errorf("balances sum to %v, want 0", sum)
			}
		})
	}
}

func TestBalances_EqualSplit(t *testing.T) {
	// One expense of 300 paid by a, split across all three members.
	tour := tourWith([]string{"a", "b", "c"}, []TourExpense{
		{ID: "e1", Amount: 300, PaidBy: "a", Participants: []string{"a", "b", "c"}},
	})

	balances := Balances(tour)

	if got, want := balances["a"], 200.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("payer balance = %v, want %v", got, want)
	}
	for _, id := range []string{"b", "c"} {
		if got, want := balances[id], -100.0; math.Abs(got-want) > 1e-9 {
			t.Errorf("balance[%s] = %v, want %v", id, got, want)
		}
	}
}

func TestBalances_EmptyTour(t *testing.T) {
	balances := Balances(tourWith(nil, nil))
	if len(balances) != 0 {
		t.Errorf("expected empty balances, got %v", balances)
	}
}

func TestBalances_UnknownIDsSkipped(t *testing.T) {
	// A hand-built tour with dangling references; AddExpense rejects these,
	// the engine must not invent balance entries for them.
	tour := tourWith([]string{"a", "b"}, []TourExpense{
		{ID: "e1", Amount: 90, PaidBy: "ghost", Participants: []string{"a", "b", "ghost"}},
	})

	balances := Balances(tour)

	if _, ok := balances["ghost"]; ok {
		t.Error("unexpected balance entry for unknown member")
	}
	if got, want := balances["a"], -30.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("balance[a] = %v, want %v", got, want)
	}
}

func TestSettlements_WorkedExample(t *testing.T) {
	// Alice pays 300 split three ways, then Bob pays 60 split with Carol.
	// Net: A=+200, B=-70, C=-130. Largest-first matching settles C then B,
	// both against A.
	tour := tourWith([]string{"alice", "bob", "carol"}, []TourExpense{
		{ID: "e1", Amount: 300, PaidBy: "alice", Participants: []string{"alice", "bob", "carol"}},
		{ID: "e2", Amount: 60, PaidBy: "bob", Participants: []string{"bob", "carol"}},
	})

	settlements := Settlements(tour)

	want := []Settlement{
		{From: "carol", To: "alice", Amount: 130},
		{From: "bob", To: "alice", Amount: 70},
	}
	if len(settlements) != len(want) {
		t.Fatalf("expected %d settlements, got %d: %v", len(want), len(settlements), settlements)
	}
	for i, s := range settlements {
		if s.From != want[i].From || s.To != want[i].To {
			t.Errorf("settlement[%d] = %s->%s, want %s->%s", i, s.From, s.To, want[i].From, want[i].To)
		}
		if math.Abs(s.Amount-want[i].Amount) > 1e-9 {
			t.Errorf("settlement[%d] amount = %v, want %v", i, s.Amount, want[i].Amount)
		}
	}
}

func TestSettlements_NoExpenses(t *testing.T) {
	if got := Settlements(tourWith([]string{"a", "b"}, nil)); len(got) != 0 {
		t.Errorf("expected no settlements, got %v", got)
	}
}

func TestSettlements_AllPositiveAboveEpsilon(t *testing.T) {
	tour := tourWith([]string{"a", "b", "c", "d"}, []TourExpense{
		{ID: "e1", Amount: 100, PaidBy: "a", Participants: []string{"a", "b", "c"}},
		{ID: "e2", Amount: 75.50, PaidBy: "b", Participants: []string{"b", "c", "d"}},
		{ID: "e3", Amount: 0.03, PaidBy: "c", Participants: []string{"a", "b", "c"}},
		{ID: "e4", Amount: 42.42, PaidBy: "d", Participants: []string{"a", "d"}},
	})

	for _, s := range Settlements(tour) {
		if s.Amount <= Epsilon {
			t.Errorf("settlement %s->%s has amount %v at or below epsilon", s.From, s.To, s.Amount)
		}
	}
}

func TestSettlements_DriveBalancesToZero(t *testing.T) {
	tour := tourWith([]string{"a", "b", "c", "d", "e"}, []TourExpense{
		{ID: "e1", Amount: 123.45, PaidBy: "a", Participants: []string{"a", "b", "c", "d", "e"}},
		{ID: "e2", Amount: 10, PaidBy: "b", Participants: []string{"c"}},
		{ID: "e3", Amount: 99.99, PaidBy: "c", Participants: []string{"a", "b"}},
		{ID: "e4", Amount: 7.77, PaidBy: "d", Participants: []string{"d", "e"}},
	})

	balances := Balances(tour)
	for _, s := range Settlements(tour) {
		balances[s.From] += s.Amount
		balances[s.To] -= s.Amount
	}
	for id, b := range balances {
		if math.Abs(b) > Epsilon {
			t.Errorf("balance[%s] = %v after applying settlements, want ~0", id, b)
		}
	}
}

func TestSettlements_NearZeroResidueFiltered(t *testing.T) {
	// Shares of 0.01/3 leave every balance below the tolerance; no transfer
	// should be suggested for them.
	tour := tourWith([]string{"a", "b", "c"}, []TourExpense{
		{ID: "e1", Amount: 0.01, PaidBy: "a", Participants: []string{"a", "b", "c"}},
	})

	if got := Settlements(tour); len(got) != 0 {
		t.Errorf("expected no settlements for sub-epsilon balances, got %v", got)
	}
}

func TestSettlements_Deterministic(t *testing.T) {
	tour := tourWith([]string{"a", "b", "c", "d"}, []TourExpense{
		{ID: "e1", Amount: 80, PaidBy: "a", Participants: []string{"a", "b", "c", "d"}},
		{ID: "e2", Amount: 80, PaidBy: "b", Participants: []string{"a", "b", "c", "d"}},
	})

	first := Settlements(tour)
	for i := 0; i < 50; i++ {
		next := Settlements(tour)
		if len(next) != len(first) {
			t.Fatalf("settlement count changed between runs: %d vs %d", len(first), len(next))
		}
		for k := range next {
			if next[k] != first[k] {
				t.Fatalf("settlement order changed between runs: %v vs %v", first, next)
			}
		}
	}
}
