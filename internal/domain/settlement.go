package domain

import "sort"

// Epsilon is the tolerance below which a remaining balance counts as
// settled. Equal-share division leaves floating-point residue well under a
// cent; without the tolerance the greedy loop could emit spurious near-zero
// transfers.
const Epsilon = 0.01

// Settlement is a suggested transfer from one member to another that
// reduces outstanding balances toward zero. Amount is always positive and
// above Epsilon.
type Settlement struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// Balances computes the net position of every tour member. For each expense
// the amount is split equally across its participants: each participant is
// debited one share and the payer is credited the full amount, so the
// balances always sum to zero.
//
// Positive means the member is owed money, negative means the member owes.
// Expense references to IDs outside the roster are skipped; AddExpense
// rejects them at creation, so they only occur in hand-built tours.
func Balances(tour *Tour) map[string]float64 {
	balances := make(map[string]float64, len(tour.Members))
	for _, m := range tour.Members {
		balances[m.ID] = 0
	}
	for _, exp := range tour.Expenses {
		if len(exp.Participants) == 0 {
			continue
		}
		share := exp.Amount / float64(len(exp.Participants))
		for _, id := range exp.Participants {
			if _, ok := balances[id]; ok {
				balances[id] -= share
			}
		}
		if _, ok := balances[exp.PaidBy]; ok {
			balances[exp.PaidBy] += exp.Amount
		}
	}
	return balances
}

// party is one side of the settlement matching: a member and the absolute
// amount they still owe or are owed.
type party struct {
	id     string
	amount float64
}

// Settlements computes a short sequence of transfers that settles all
// member balances. Debtors and creditors are each sorted descending by
// magnitude (ties broken by member ID) and matched greedily: every step
// transfers the minimum of the two current remainders, so at least one side
// is settled per step and the loop runs at most len(debtors)+len(creditors)
// iterations. Sorting largest-first keeps the transfer count near minimal.
//
// The result is deterministic for a given tour. Transfers at or below
// Epsilon are dropped.
func Settlements(tour *Tour) []Settlement {
	balances := Balances(tour)

	var debtors, creditors []party
	for id, b := range balances {
		switch {
		case b > Epsilon:
			creditors = append(creditors, party{id: id, amount: b})
		case b < -Epsilon:
			debtors = append(debtors, party{id: id, amount: -b})
		}
	}
	sortByMagnitude(debtors)
	sortByMagnitude(creditors)

	var settlements []Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].amount
		if creditors[j].amount < amount {
			amount = creditors[j].amount
		}

		if amount > Epsilon {
			settlements = append(settlements, Settlement{
				From:   debtors[i].id,
				To:     creditors[j].id,
				Amount: amount,
			})
		}

		debtors[i].amount -= amount
		creditors[j].amount -= amount

		if debtors[i].amount < Epsilon {
			i++
		}
		if creditors[j].amount < Epsilon {
			j++
		}
	}
	return settlements
}

func sortByMagnitude(parties []party) {
	sort.Slice(parties, func(i, j int) bool {
		if parties[i].amount != parties[j].amount {
			return parties[i].amount > parties[j].amount
		}
		return parties[i].id < parties[j].id
	})
}
