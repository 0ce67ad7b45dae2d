package pricing

import (
	"fmt"
	"strconv"
	"strings"

	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
)

// Language classifier fields are reported on the pair itself, not on a
// single skill's price object.
const (
	FieldSrcLang = "src_lang_classifier_value_id"
	FieldDstLang = "dst_lang_classifier_value_id"
)

// FieldErrorRef is the parsed form of a "data.<index>.<field>" error key
// returned by the price-mutation API.
type FieldErrorRef struct {
	Index int
	Field string
}

// FieldError is a server-side validation message re-targeted onto the form
// path the price-list editor understands.
type FieldError struct {
	Path     string   `json:"path"`
	Messages []string `json:"messages"`
}

// ParseFieldErrorKey decodes the wire error-key contract. The shape is
// fixed by the validation API: "data", a zero-based batch index, then the
// record field name.
func ParseFieldErrorKey(key string) (FieldErrorRef, error) {
	parts := strings.SplitN(key, ".", 3)
	if len(parts) != 3 || parts[0] != "data" {
		return FieldErrorRef{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("malformed field error key %q", key))
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil || index < 0 {
		return FieldErrorRef{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid index in field error key %q", key))
	}
	if parts[2] == "" {
		return FieldErrorRef{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("missing field name in error key %q", key))
	}
	return FieldErrorRef{Index: index, Field: parts[2]}, nil
}

// MapError resolves a batch-indexed validation error against the entries of
// the failed operation and re-targets it onto the originating form entry.
// Batches are grouped by state, not by form position, so the index is only
// meaningful relative to the submitted batch.
func MapError(state State, entries []SkillPriceEntry, fieldErrorKey string, messages []string) (FieldError, error) {
	ref, err := ParseFieldErrorKey(fieldErrorKey)
	if err != nil {
		return FieldError{}, err
	}
	if ref.Index >= len(entries) {
		return FieldError{}, pkgerrors.New(
			pkgerrors.CodeValidation,
			fmt.Sprintf("field error index %d out of range for %s batch of %d", ref.Index, state, len(entries)),
		)
	}

	entry := entries[ref.Index]
	groupKey := entry.GroupKey
	if groupKey == "" {
		groupKey = PairKey(entry.SrcLangID, entry.DstLangID)
	}

	var path string
	switch ref.Field {
	case FieldSrcLang, FieldDstLang:
		path = fmt.Sprintf("%s.%s", groupKey, ref.Field)
	default:
		path = fmt.Sprintf("%s.priceObject.%s.%s", groupKey, entry.SkillID, ref.Field)
	}

	return FieldError{
		Path:     path,
		Messages: append([]string(nil), messages...),
	}, nil
}
