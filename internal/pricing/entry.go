package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// State classifies what has to happen to a batch of price entries for the
// persisted price list to match the edited one.
type State string

const (
	StateNew       State = "NEW"
	StateUpdated   State = "UPDATED"
	StateDeleted   State = "DELETED"
	StateUnchanged State = "UNCHANGED"
)

// NewGroupKey is the key a brand-new, not-yet-saved language pair is edited
// under before any destination language has been confirmed.
const NewGroupKey = "new"

// RecordRef distinguishes price entries that exist server-side from drafts.
// The zero value is a draft.
type RecordRef struct {
	id        uuid.UUID
	persisted bool
}

// PersistedRef marks an entry as backed by the stored record with the given id.
func PersistedRef(id uuid.UUID) RecordRef {
	return RecordRef{id: id, persisted: true}
}

// DraftRef marks an entry as not yet persisted.
func DraftRef() RecordRef {
	return RecordRef{}
}

// ID returns the record id and whether the entry is persisted.
func (r RecordRef) ID() (uuid.UUID, bool) {
	return r.id, r.persisted
}

// Persisted reports whether the entry exists server-side.
func (r RecordRef) Persisted() bool {
	return r.persisted
}

// FeeSet carries every per-unit fee a vendor can charge for one skill on one
// language pair.
type FeeSet struct {
	Character decimal.Decimal
	Word      decimal.Decimal
	Page      decimal.Decimal
	Minute    decimal.Decimal
	Hour      decimal.Decimal
	Minimal   decimal.Decimal
}

// Equal compares two fee sets numerically (0.50 equals 0.5).
func (f FeeSet) Equal(other FeeSet) bool {
	return f.Character.Equal(other.Character) &&
		f.Word.Equal(other.Word) &&
		f.Page.Equal(other.Page) &&
		f.Minute.Equal(other.Minute) &&
		f.Hour.Equal(other.Hour) &&
		f.Minimal.Equal(other.Minimal)
}

// SkillPriceEntry is one priceable (vendor, skill, language pair)
// combination inside a language-pair group. Unselected entries are
// placeholders the form renders with zero fees.
type SkillPriceEntry struct {
	Ref       RecordRef
	GroupKey  string
	SkillID   uuid.UUID
	VendorID  uuid.UUID
	SrcLangID uuid.UUID
	DstLangID uuid.UUID
	Fees      FeeSet
	Selected  bool
}

/// LanguagePairGroup is the unit the price-list form edits: every known
// skill's entry for one (source, destination) language pair. A group with
// key "new" may carry several destination languages; Reconcile fans the
// selected entries out across them.
type LanguagePairGroup struct {
	Key        string
	SrcLangID  uuid.UUID
	DstLangIDs []uuid.UUID
	Entries    []SkillPriceEntry
}

// PairKey derives the canonical group key for a stored language pair.
func PairKey(srcLangID, dstLangID uuid.UUID) string {
	return fmt.Sprintf("%s_%s", srcLangID, dstLangID)
}

// entryBySkill indexes the group's entries by skill id. Later duplicates are
// ignored; the form guarantees one entry per skill.
func (g LanguagePairGroup) entryBySkill() map[uuid.UUID]SkillPriceEntry {
	out := make(map[uuid.UUID]SkillPriceEntry, len(g.Entries))
	for _, entry := range g.Entries {
		if _, ok := out[entry.SkillID]; ok {
			continue
		}
		out[entry.SkillID] = entry
	}
	return out
}

// Operation is a batch of same-state entries submitted as one mutation call.
type Operation struct {
	State   State
	Entries []SkillPriceEntry
}

// HasMutations reports whether any operation actually changes stored state.
func HasMutations(ops []Operation) bool {
	for _, op := range ops {
		if op.State != StateUnchanged && len(op.Entries) > 0 {
			return true
		}
	}
	return false
}
