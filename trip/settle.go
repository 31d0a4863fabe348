package trip

import (
	"math"
	"sort"

	store "tripmate/store/store"
)

// Threshold for float comparisons
const epsilon = 1e-9

// Balance is the net financial position of one roster member: what they
// paid up front against their equal share of the group total.
type Balance struct {
	UserID int     `json:"userId"`
	Paid   float64 `json:"paid"`
	Share  float64 `json:"share"`
	Net    float64 `json:"net"` // Paid - Share; positive means owed money
}

// Transfer is one suggested repayment between two members.
type Transfer struct {
	FromID int     `json:"fromId"`
	ToID   int     `json:"toId"`
	Amount float64 `json:"amount"`
}

// Balances splits every group expense equally among all roster members and
// nets each member's prepayments against their share. Expenses owned by ids
// outside the roster still count toward the group total; their prepayment is
// simply not credited to anyone on the roster (tolerated dangling reference).
func Balances(expenses []store.Expense, users []store.User) []Balance {
	if len(users) == 0 {
		return nil
	}

	paid := make(map[int]float64, len(users))
	for _, u := range users {
		paid[u.ID] = 0
	}

	total := 0.0
	for _, e := range expenses {
		total += e.Amount
		if _, ok := paid[e.UserID]; ok {
			paid[e.UserID] += e.Amount
		}
	}

	share := total / float64(len(users))
	balances := make([]Balance, 0, len(users))
	for _, u := range users {
		balances = append(balances, Balance{
			UserID: u.ID,
			Paid:   paid[u.ID],
			Share:  share,
			Net:    paid[u.ID] - share,
		})
	}
	return balances
}

// Settle turns the balances into a minimal-ish list of transfers using a
// greedy largest-debtor-to-largest-creditor matching. The sum of transfers
// out of (into) each member equals that member's negative (positive) net,
// up to epsilon.
func Settle(balances []Balance) []Transfer {
	type side struct {
		userID int
		amount float64
	}
	var debtors, creditors []side
	for _, b := range balances {
		switch {
		case b.Net < -epsilon:
			debtors = append(debtors, side{b.UserID, -b.Net})
		case b.Net > epsilon:
			creditors = append(creditors, side{b.UserID, b.Net})
		}
	}
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].amount > debtors[j].amount })
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].amount > creditors[j].amount })

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amt := math.Min(debtors[i].amount, creditors[j].amount)
		if amt > epsilon {
			transfers = append(transfers, Transfer{
				FromID: debtors[i].userID,
				ToID:   creditors[j].userID,
				Amount: amt,
			})
		}
		debtors[i].amount -= amt
		creditors[j].amount -= amt
		if debtors[i].amount <= epsilon {
			i++
		}
		if creditors[j].amount <= epsilon {
			j++
		}
	}
	return transfers
}
