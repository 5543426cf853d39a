package sorting

import (
	"strings"
	"testing"
)

func assertOrder(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Got %v, want %v", got, want)
		}
	}
}

func TestSortAlpha(t *testing.T) {
	items := []string{"Nord", "gruvbox", "dracula"}
	got := Sort(items, Options{Mode: ModeAlpha})
	assertOrder(t, got, []string{"dracula", "gruvbox", "Nord"})
}

func TestSortDoesNotMutateInput(t *testing.T) {
	items := []string{"b", "a"}
	Sort(items, Options{Mode: ModeAlpha})
	if items[0] != "b" {
		t.Error("Sort mutated its input slice")
	}
}

func TestSortRecent(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	// History oldest-first: c selected before b.
	got := Sort(items, Options{Mode: ModeRecent, Recency: []string{"c", "b"}})
	// b most recent, then c; a and d keep catalog order at the tail.
	assertOrder(t, got, []string{"b", "c", "a", "d"})
}

func TestSortUsage(t *testing.T) {
	items := []string{"a", "b", "c"}
	got := Sort(items, Options{Mode: ModeUsage, Usage: map[string]int{"b": 5, "c": 2}})
	assertOrder(t, got, []string{"b", "c", "a"})
}

func TestSortDisabledKeepsCatalogOrder(t *testing.T) {
	items := []string{"z", "a", "m"}
	got := Sort(items, Options{Mode: ModeAlpha, Disabled: true})
	assertOrder(t, got, []string{"z", "a", "m"})
}

func TestSortReversed(t *testing.T) {
	items := []string{"b", "a", "c"}
	got := Sort(items, Options{Mode: ModeAlpha, Reversed: true})
	assertOrder(t, got, []string{"c", "b", "a"})
}

func TestReverseIsInvolution(t *testing.T) {
	items := []string{"b", "a", "c"}
	once := Sort(items, Options{Mode: ModeAlpha})
	twice := Sort(Sort(items, Options{Mode: ModeAlpha, Reversed: true}), Options{Disabled: true})
	reverse(twice)
	assertOrder(t, twice, once)
}

func TestSortCustomReversedAfterSort(t *testing.T) {
	// A comparator keyed on length; reversal must flip the output, not
	// negate the comparator.
	byLen := func(a, b string) bool { return len(a) < len(b) }
	items := []string{"ccc", "a", "bb"}
	got := Sort(items, Options{Mode: ModeCustom, Custom: byLen, Reversed: true})
	assertOrder(t, got, []string{"ccc", "bb", "a"})
}

func TestSortStableOnTies(t *testing.T) {
	eq := func(a, b string) bool { return false }
	items := []string{"x", "y", "z"}
	got := Sort(items, Options{Mode: ModeCustom, Custom: eq})
	assertOrder(t, got, []string{"x", "y", "z"})
}

func TestModeCycle(t *testing.T) {
	m := ModeAlpha
	seen := []string{}
	for i := 0; i < 3; i++ {
		m = m.Next()
		seen = append(seen, m.String())
	}
	if strings.Join(seen, ",") != "recent,usage,alpha" {
		t.Errorf("Cycle = %v, want recent,usage,alpha", seen)
	}
	if ModeCustom.Next() != ModeAlpha {
		t.Error("Custom should cycle back to alpha")
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("usage") != ModeUsage {
		t.Error("ParseMode('usage') failed")
	}
	if ParseMode("garbage") != ModeAlpha {
		t.Error("ParseMode should default to alpha")
	}
}
