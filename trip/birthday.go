package trip

import (
	"fmt"
	"sort"
	"time"

	store "tripmate/store/store"
)

func parseBirthday(birthday string) (month, day int, ok bool) {
	if _, err := fmt.Sscanf(birthday, "%d-%d", &month, &day); err != nil {
		return 0, 0, false
	}
	return month, day, true
}

// SortByUpcomingBirthday orders users by their next birthday relative to
// now: birthdays that have not yet passed this year come first, ascending by
// (month, day), then already-passed birthdays, also ascending. Unparseable
// birthdays sort last. The input slice is not modified.
func SortByUpcomingBirthday(users []store.User, now time.Time) []store.User {
	curMonth := int(now.Month())
	curDay := now.Day()

	sorted := make([]store.User, len(users))
	copy(sorted, users)
	sort.SliceStable(sorted, func(i, j int) bool {
		aM, aD, aOK := parseBirthday(sorted[i].Birthday)
		bM, bD, bOK := parseBirthday(sorted[j].Birthday)
		if aOK != bOK {
			return aOK
		}
		if !aOK {
			return false
		}

		aPassed := aM < curMonth || (aM == curMonth && aD < curDay)
		bPassed := bM < curMonth || (bM == curMonth && bD < curDay)
		if aPassed != bPassed {
			return !aPassed
		}
		if aM != bM {
			return aM < bM
		}
		return aD < bD
	})
	return sorted
}

// IsBirthdayToday reports whether the MM-DD birthday falls on now's date.
func IsBirthdayToday(birthday string, now time.Time) bool {
	m, d, ok := parseBirthday(birthday)
	return ok && m == int(now.Month()) && d == now.Day()
}
