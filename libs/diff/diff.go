// Package diff compares entity snapshots for change logging. UUID fields
// are compared as whole values instead of byte arrays.
package diff

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
	odiff "github.com/r3labs/diff/v3"
)

func GetCustomDiffer() *odiff.Differ {
	ret, err := odiff.NewDiffer(odiff.CustomValueDiffers(&UUIDComparer{}))
	if err != nil {
		panic(err)
	}
	return ret
}

type UUIDComparer struct{}

var (
	uuidType = reflect.TypeOf(uuid.UUID{})
)

// Match reports whether a field pair should use this comparer.
func (c UUIDComparer) Match(a, b reflect.Value) bool {
	aok := a.Kind() == uuidType.Kind() && a.Type() == uuidType
	bok := b.Kind() == uuidType.Kind() && b.Type() == uuidType
	return (aok && bok) || (a.Kind() == reflect.Invalid && bok) || (b.Kind() == reflect.Invalid && aok)
}

// Diff records a single UPDATE entry when two UUID values differ, instead
// of descending into the underlying byte array.
func (c UUIDComparer) Diff(_ odiff.DiffType, _ odiff.DiffFunc, cl *odiff.Changelog, path []string, a reflect.Value, b reflect.Value, _ interface{}) error {
	valA := reflect.Indirect(a)
	valB := reflect.Indirect(b)

	if !valA.IsValid() || !valB.IsValid() {
		if valA.IsValid() != valB.IsValid() {
			cl.Add(odiff.UPDATE, path, a.Interface(), b.Interface())
		}
		return nil
	}

	u1 := valA.Interface().(uuid.UUID)
	u2 := valB.Interface().(uuid.UUID)

	if u1 != u2 {
		cl.Add(odiff.UPDATE, path, u1, u2)
	}
	return nil
}

// InsertParentDiffer is a no-op, uuid is a leaf value.
func (c UUIDComparer) InsertParentDiffer(_ func(path []string, a reflect.Value, b reflect.Value, p interface{}) error) {
}

// ChangeSummary renders the field-level differences between two snapshots
// of the same entity as "path: old -> new" fragments, for audit logging.
// An empty string means no change.
func ChangeSummary(before, after any) string {
	changelog, err := GetCustomDiffer().Diff(before, after)
	if err != nil || len(changelog) == 0 {
		return ""
	}

	parts := make([]string, 0, len(changelog))
	for _, change := range changelog {
		parts = append(parts, fmt.Sprintf("%s: %v -> %v",
			strings.Join(change.Path, "."), change.From, change.To))
	}
	return strings.Join(parts, ", ")
}
