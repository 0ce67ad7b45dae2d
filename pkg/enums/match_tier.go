package enums

import "fmt"

// MatchTier buckets translatable units by translation-memory match quality.
type MatchTier string

const (
	MatchTierRepetitions MatchTier = "repetitions"
	MatchTier101         MatchTier = "101"
	MatchTier100         MatchTier = "100"
	MatchTier95to99      MatchTier = "95-99"
	MatchTier85to94      MatchTier = "85-94"
	MatchTier75to84      MatchTier = "75-84"
	MatchTier50to74      MatchTier = "50-74"
	MatchTier0to49       MatchTier = "0-49"
)

// matchTierOrder carries the display order used by CAT analysis tables.
// Billing math never depends on this order.
var matchTierOrder = []MatchTier{
	MatchTierRepetitions,
	MatchTier101,
	MatchTier100,
	MatchTier95to99,
	MatchTier85to94,
	MatchTier75to84,
	MatchTier50to74,
	MatchTier0to49,
}

// AllMatchTiers returns the fixed tier vocabulary in display order.
func AllMatchTiers() []MatchTier {
	out := make([]MatchTier, len(matchTierOrder))
	copy(out, matchTierOrder)
	return out
}

// IsValid reports whether the value matches the canonical match tier enum.
func (m MatchTier) IsValid() bool {
	for _, candidate := range matchTierOrder {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMatchTier converts the raw string to MatchTier.
func ParseMatchTier(value string) (MatchTier, error) {
	for _, candidate := range matchTierOrder {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid match tier %q", value)
}
