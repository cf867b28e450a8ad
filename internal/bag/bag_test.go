package bag

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/eugenenazirov/schoolbag/internal/i18n"
)

func newTestBag(t *testing.T, opts ...Option) *Bag {
	t.Helper()

	b, err := New(opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return b
}

func TestEmptyBagSummary(t *testing.T) {
	t.Parallel()

	b := newTestBag(t)

	lines := strings.Split(b.StatusSummary(), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 summary lines, got %d: %q", len(lines), lines)
	}
	for i, want := range []string{"0/6 items packed", "0/3 mandatory items present", "no mandatory item packed"} {
		if !strings.Contains(lines[i], want) {
			t.Fatalf("line %d: expected %q to contain %q", i, lines[i], want)
		}
	}
	if got := b.Status().Tier(); got != TierNone {
		t.Fatalf("expected tier none, got %s", got)
	}
	if b.CurrentWeight() != 0 {
		t.Fatalf("expected zero weight, got %d", b.CurrentWeight())
	}
}

func TestAllMandatoryPacked(t *testing.T) {
	t.Parallel()

	b := newTestBag(t)
	for _, item := range []*Item{NewItem("עט", 20), NewItem("מחברת", 200), NewItem("ספר", 900)} {
		if err := b.Add(item); err != nil {
			t.Fatalf("Add(%s) returned error: %v", item.Name, err)
		}
	}

	if got := b.Status().Tier(); got != TierComplete {
		t.Fatalf("expected tier complete, got %s", got)
	}
	if !strings.Contains(b.StatusSummary(), "all mandatory present") {
		t.Fatalf("unexpected summary: %q", b.StatusSummary())
	}
	snap := b.Snapshot()
	if snap.MissingMandatory == nil || len(snap.MissingMandatory) != 0 {
		t.Fatalf("expected empty, non-nil missing list, got %#v", snap.MissingMandatory)
	}
	if !b.CheckMandatory().Complete() {
		t.Fatalf("expected mandatory check to be complete")
	}
}

func TestAddRejectsBeyondCapacity(t *testing.T) {
	t.Parallel()

	b := newTestBag(t)
	for i := 0; i < DefaultCapacity; i++ {
		if err := b.Add(NewItem(fmt.Sprintf("item-%d", i), 10)); err != nil {
			t.Fatalf("Add #%d returned error: %v", i, err)
		}
	}

	seventh := NewItem("snack", 150)
	err := b.Add(seventh)
	if !errors.Is(err, ErrBagFull) {
		t.Fatalf("expected ErrBagFull, got %v", err)
	}

	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected *CapacityError, got %T", err)
	}
	if capErr.Item != seventh || capErr.Capacity != DefaultCapacity {
		t.Fatalf("unexpected capacity error: %+v", capErr)
	}
	if !strings.Contains(err.Error(), "snack") {
		t.Fatalf("expected error to name the rejected item, got %q", err.Error())
	}
	if b.Len() != DefaultCapacity {
		t.Fatalf("expected %d items, got %d", DefaultCapacity, b.Len())
	}
	if b.Find("snack") != nil {
		t.Fatalf("rejected item must not be in the bag")
	}
}

func TestLenNeverExceedsCapacity(t *testing.T) {
	t.Parallel()

	for capacity := 1; capacity <= 4; capacity++ {
		b := newTestBag(t, WithCapacity(capacity))
		for i := 0; i < capacity*3; i++ {
			err := b.Add(NewItem("x", 1))
			if (i < capacity) != (err == nil) {
				t.Fatalf("capacity %d, add #%d: unexpected result %v", capacity, i, err)
			}
			if b.Len() > capacity {
				t.Fatalf("capacity %d exceeded: %d items", capacity, b.Len())
			}
		}
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	pen := NewItem("pen", 20)
	book := NewItem("book", 900)
	b := newTestBag(t, WithItems(pen, book))

	t.Run("absent item is a no-op", func(t *testing.T) {
		if b.Remove(NewItem("pen", 20)) {
			t.Fatalf("expected equal-valued but distinct item not to be removed")
		}
		if got := b.Items(); !slices.Equal(got, []*Item{pen, book}) {
			t.Fatalf("bag changed: %v", got)
		}
	})

	t.Run("removes by identity", func(t *testing.T) {
		if !b.Remove(pen) {
			t.Fatalf("expected pen to be removed")
		}
		if got := b.Items(); !slices.Equal(got, []*Item{book}) {
			t.Fatalf("unexpected items: %v", got)
		}
	})
}

func TestRemoveDuplicatesRemovesExactItem(t *testing.T) {
	t.Parallel()

	first := NewItem("pencil", 25)
	second := NewItem("pencil", 25)
	b := newTestBag(t, WithItems(first, second))

	b.Remove(second)
	if got := b.Items(); len(got) != 1 || got[0] != first {
		t.Fatalf("expected only the first pencil to remain, got %v", got)
	}
}

func TestHas(t *testing.T) {
	t.Parallel()

	b := newTestBag(t, WithItems(NewItem("History Book", 900), NewItem("ספר היסטוריה", 900)))

	tests := []struct {
		query string
		want  bool
	}{
		{query: "book", want: true},
		{query: "HISTORY", want: true},
		{query: "ory bo", want: true},
		{query: "ספר", want: true},
		{query: "", want: true},
		{query: "pen", want: false},
		{query: "מחברת", want: false},
	}
	for _, tc := range tests {
		if got := b.Has(tc.query); got != tc.want {
			t.Fatalf("Has(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}

	empty := newTestBag(t)
	if empty.Has("") {
		t.Fatalf("empty query must be false for an empty bag")
	}
}

func TestHasSubstringFalsePositive(t *testing.T) {
	t.Parallel()

	// "עטיפה" (wrapping) contains "עט" (pen) and therefore counts as the pen.
	b := newTestBag(t, WithItems(NewItem("עטיפה", 5)))
	if !b.Has("עט") {
		t.Fatalf("expected substring match")
	}
	if got := b.Missing(); slices.Contains(got, "עט") {
		t.Fatalf("expected pen to be considered present, missing=%v", got)
	}
}

func TestCurrentWeightTracksContents(t *testing.T) {
	t.Parallel()

	pen := NewItem("pen", 20)
	b := newTestBag(t)
	for _, item := range []*Item{pen, NewItem("notebook", 200), NewItem("bottle", -5)} {
		if err := b.Add(item); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := b.CurrentWeight(); got != 215 {
		t.Fatalf("expected 215, got %d", got)
	}
	_ = b.Has("pen")
	_ = b.StatusSummary()
	if got := b.CurrentWeight(); got != 215 {
		t.Fatalf("weight changed after queries: %d", got)
	}
	b.Remove(pen)
	if got := b.CurrentWeight(); got != 195 {
		t.Fatalf("expected 195 after removal, got %d", got)
	}
}

func TestTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		present, total int
		want           Tier
	}{
		{present: 0, total: 3, want: TierNone},
		{present: 1, total: 3, want: TierPartial},
		{present: 2, total: 3, want: TierPartial},
		{present: 3, total: 3, want: TierComplete},
		{present: 0, total: 0, want: TierComplete},
	}
	for _, tc := range tests {
		s := Status{MandatoryPresent: tc.present, MandatoryTotal: tc.total}
		if got := s.Tier(); got != tc.want {
			t.Fatalf("Tier(%d/%d) = %s, want %s", tc.present, tc.total, got, tc.want)
		}
	}
}

func TestPartialSummaryAndMissingOrder(t *testing.T) {
	t.Parallel()

	b := newTestBag(t, WithItems(NewItem("מחברת", 200)))

	if got, want := b.Missing(), []string{"עט", "ספר"}; !slices.Equal(got, want) {
		t.Fatalf("expected missing %v, got %v", want, got)
	}
	if !strings.Contains(b.StatusSummary(), "missing some mandatory items") {
		t.Fatalf("unexpected summary: %q", b.StatusSummary())
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	if _, err := New(WithCapacity(0)); !errors.Is(err, ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}

	items := []*Item{NewItem("a", 1), NewItem("b", 1), NewItem("c", 1)}
	if _, err := New(WithCapacity(2), WithItems(items...)); !errors.Is(err, ErrOverCapacity) {
		t.Fatalf("expected ErrOverCapacity, got %v", err)
	}
}

func TestLocalizedSummary(t *testing.T) {
	t.Parallel()

	he, err := i18n.Load("he")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	b := newTestBag(t, WithCatalog(he), WithMandatory("pen"))

	summary := b.StatusSummary()
	for _, want := range []string{"0/6 פריטים נארזו", "0/1 פריטי חובה נמצאים", "שום פריט חובה לא נארז"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("expected %q to contain %q", summary, want)
		}
	}
}

func TestItemRepresentations(t *testing.T) {
	t.Parallel()

	item := NewItem("pen", 20)
	if got := item.String(); got != "pen (20 grams)" {
		t.Fatalf("unexpected display form %q", got)
	}
	if got := item.View(); got != (ItemView{Name: "pen", Weight: 20}) {
		t.Fatalf("unexpected view %+v", got)
	}
	if got := item.Label(i18n.English()); got != "pen (20 grams)" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestLabelKeepsWeightUngrouped(t *testing.T) {
	t.Parallel()

	he, err := i18n.Load("he")
	if err != nil {
		t.Fatalf("load he catalog: %v", err)
	}

	atlas := NewItem("atlas", 1200)
	tests := []struct {
		catalog *i18n.Catalog
		want    string
	}{
		{catalog: i18n.English(), want: "atlas (1200 grams)"},
		{catalog: he, want: "atlas (1200 גרם)"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.catalog.Locale(), func(t *testing.T) {
			t.Parallel()

			if got := atlas.Label(tc.catalog); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
	if got := atlas.String(); got != atlas.Label(i18n.English()) {
		t.Fatalf("String %q and English label disagree", got)
	}
}
