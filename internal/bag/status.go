package bag

import (
	"strconv"
	"strings"

	"github.com/eugenenazirov/schoolbag/internal/i18n"
)

// Tier classifies mandatory-item coverage.
type Tier int

const (
	// TierNone means no mandatory item is packed.
	TierNone Tier = iota
	// TierPartial means some, but not all, mandatory items are packed.
	TierPartial
	// TierComplete means every mandatory item is packed.
	TierComplete
)

func (t Tier) String() string {
	switch t {
	case TierNone:
		return "none"
	case TierPartial:
		return "partial"
	case TierComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Status holds the counts the status summary is built from.
type Status struct {
	Packed           int
	Capacity         int
	MandatoryPresent int
	MandatoryTotal   int
}

// Tier derives the coverage tier. A bag with no mandatory items is complete.
func (s Status) Tier() Tier {
	switch {
	case s.MandatoryPresent == s.MandatoryTotal:
		return TierComplete
	case s.MandatoryPresent == 0:
		return TierNone
	default:
		return TierPartial
	}
}

var tierKeys = map[Tier]i18n.Key{
	TierNone:     i18n.StatusTierNone,
	TierPartial:  i18n.StatusTierPartial,
	TierComplete: i18n.StatusTierComplete,
}

// Lines renders the three summary lines: items packed, mandatory coverage, tier message.
func (s Status) Lines(c *i18n.Catalog) []string {
	return []string{
		c.Text(i18n.StatusItemsPacked, strconv.Itoa(s.Packed), strconv.Itoa(s.Capacity)),
		c.Text(i18n.StatusMandatory, strconv.Itoa(s.MandatoryPresent), strconv.Itoa(s.MandatoryTotal)),
		c.Text(tierKeys[s.Tier()]),
	}
}

// Status computes the current counts.
func (b *Bag) Status() Status {
	present := 0
	for _, name := range b.mandatory {
		if b.Has(name) {
			present++
		}
	}
	return Status{
		Packed:           len(b.items),
		Capacity:         b.capacity,
		MandatoryPresent: present,
		MandatoryTotal:   len(b.mandatory),
	}
}

// StatusSummary renders Status as newline-separated text.
func (b *Bag) StatusSummary() string {
	return strings.Join(b.Status().Lines(b.catalog), "\n")
}
