package trip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	store "tripmate/store/store"
)

func roster(ids ...int) []store.User {
	users := make([]store.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, store.User{ID: id})
	}
	return users
}

func TestBalancesEqualSplit(t *testing.T) {
	base := time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)
	expenses := []store.Expense{
		expenseAt(1, 300, store.CategoryFood, base),
		expenseAt(2, 100, store.CategoryTravel, base),
	}

	balances := Balances(expenses, roster(1, 2, 3, 4))
	assert.Len(t, balances, 4)

	byID := make(map[int]Balance)
	for _, b := range balances {
		byID[b.UserID] = b
	}

	// 400 total / 4 people = 100 each.
	assert.InDelta(t, 100.0, byID[1].Share, 1e-9)
	assert.InDelta(t, 200.0, byID[1].Net, 1e-9)
	assert.InDelta(t, 0.0, byID[2].Net, 1e-9)
	assert.InDelta(t, -100.0, byID[3].Net, 1e-9)
	assert.InDelta(t, -100.0, byID[4].Net, 1e-9)

	// Nets cancel out.
	sum := 0.0
	for _, b := range balances {
		sum += b.Net
	}
	assert.InDelta(t, 0.0, sum, 1e-6)
}

func TestBalancesDanglingOwnerStillCountsInTotal(t *testing.T) {
	base := time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)
	expenses := []store.Expense{
		expenseAt(99, 100, store.CategoryOther, base), // not on the roster
	}
	balances := Balances(expenses, roster(1, 2))
	for _, b := range balances {
		assert.InDelta(t, 50.0, b.Share, 1e-9)
		assert.InDelta(t, -50.0, b.Net, 1e-9)
	}
}

func TestSettleConservesMoney(t *testing.T) {
	base := time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)
	expenses := []store.Expense{
		expenseAt(1, 900, store.CategoryAccommodation, base),
		expenseAt(2, 300, store.CategoryFood, base),
		expenseAt(3, 0, store.CategoryOther, base),
	}
	balances := Balances(expenses, roster(1, 2, 3))
	transfers := Settle(balances)

	net := make(map[int]float64)
	for _, tr := range transfers {
		assert.Greater(t, tr.Amount, 0.0)
		net[tr.FromID] += tr.Amount
		net[tr.ToID] -= tr.Amount
	}
	// Each member's outgoing minus incoming transfers exactly cancels
	// their balance.
	for _, b := range balances {
		assert.InDelta(t, -b.Net, net[b.UserID], 1e-6, "user %d settles exactly their net", b.UserID)
	}
}

func TestSettleAllEvenProducesNoTransfers(t *testing.T) {
	base := time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)
	expenses := []store.Expense{
		expenseAt(1, 100, store.CategoryFood, base),
		expenseAt(2, 100, store.CategoryFood, base),
	}
	transfers := Settle(Balances(expenses, roster(1, 2)))
	assert.Empty(t, transfers)
}

func TestSettleEmpty(t *testing.T) {
	assert.Nil(t, Balances(nil, nil))
	assert.Empty(t, Settle(nil))
}
