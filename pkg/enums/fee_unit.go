package enums

import "fmt"

// FeeUnit names the billable unit a per-unit fee applies to.
type FeeUnit string

const (
	FeeUnitCharacter FeeUnit = "character"
	FeeUnitWord      FeeUnit = "word"
	FeeUnitPage      FeeUnit = "page"
	FeeUnitMinute    FeeUnit = "minute"
	FeeUnitHour      FeeUnit = "hour"
	FeeUnitMinimal   FeeUnit = "minimal"
)

var validFeeUnits = []FeeUnit{
	FeeUnitCharacter,
	FeeUnitWord,
	FeeUnitPage,
	FeeUnitMinute,
	FeeUnitHour,
	FeeUnitMinimal,
}

// IsValid reports whether the value matches the canonical fee unit enum.
func (f FeeUnit) IsValid() bool {
	for _, candidate := range validFeeUnits {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFeeUnit converts the raw string to FeeUnit.
func ParseFeeUnit(value string) (FeeUnit, error) {
	for _, candidate := range validFeeUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fee unit %q", value)
}
