package pricing

import "github.com/google/uuid"

// Reconcile computes the minimal operation set that moves the persisted
// baseline to the edited state of one language-pair group. Inputs are never
// mutated; entries are copied into the returned operations.
//
// Partitioning is total and disjoint: every edited skill classifies as
// exactly one of DELETED, NEW, UPDATED or UNCHANGED. UNCHANGED entries are
// dropped whenever anything else has to be submitted; when nothing has to
// be submitted at all, a single UNCHANGED operation is returned so callers
// can distinguish "no-op" from "nothing reconciled".
//
// Operations are ordered DELETED, NEW, UPDATED. The same skill can never
// appear in both a DELETED and a NEW batch for one group, so the ordering
// is a convention for the dispatcher rather than a correctness requirement.
func Reconcile(baseline, edited LanguagePairGroup, isNewPair bool) []Operation {
	if isNewPair {
		return reconcileNewPair(edited)
	}

	baseBySkill := baseline.entryBySkill()

	var deleted, created, updated, unchanged []SkillPriceEntry

	for _, entry := range edited.Entries {
		base, known := baseBySkill[entry.SkillID]

		switch {
		case known && base.Selected && !entry.Selected:
			// the baseline entry carries the record id needed for deletion
			deleted = append(deleted, base)

		case (!known || !base.Selected) && entry.Selected:
			draft := entry
			draft.Ref = DraftRef()
			created = append(created, draft)

		case known && base.Selected && entry.Selected && !base.Fees.Equal(entry.Fees):
			update := entry
			update.Ref = base.Ref
			updated = append(updated, update)

		case known && base.Selected && entry.Selected:
			keep := entry
			keep.Ref = base.Ref
			unchanged = append(unchanged, keep)
		}
	}

	var ops []Operation
	if len(deleted) > 0 {
		ops = append(ops, Operation{State: StateDeleted, Entries: deleted})
	}
	if len(created) > 0 {
		ops = append(ops, Operation{State: StateNew, Entries: created})
	}
	if len(updated) > 0 {
		ops = append(ops, Operation{State: StateUpdated, Entries: updated})
	}
	if len(ops) == 0 {
		if len(unchanged) == 0 {
			unchanged = append(unchanged, edited.Entries...)
		}
		ops = append(ops, Operation{State: StateUnchanged, Entries: unchanged})
	}
	return ops
}

// reconcileNewPair classifies every selected entry of a brand-new pair as
// NEW and fans it out once per chosen destination language.
func reconcileNewPair(edited LanguagePairGroup) []Operation {
	destinations := edited.DstLangIDs

	var created []SkillPriceEntry
	for _, entry := range edited.Entries {
		if !entry.Selected {
			continue
		}
		if len(destinations) == 0 {
			draft := entry
			draft.Ref = DraftRef()
			created = append(created, draft)
			continue
		}
		for _, dst := range destinations {
			draft := entry
			draft.Ref = DraftRef()
			if edited.SrcLangID != (uuid.UUID{}) {
				draft.SrcLangID = edited.SrcLangID
			}
			draft.DstLangID = dst
			created = append(created, draft)
		}
	}

	if len(created) == 0 {
		return []Operation{{State: StateUnchanged, Entries: append([]SkillPriceEntry(nil), edited.Entries...)}}
	}
	return []Operation{{State: StateNew, Entries: created}}
}
