package pricing

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldErrorKey(t *testing.T) {
	ref, err := ParseFieldErrorKey("data.1.word_fee")
	require.NoError(t, err)
	assert.Equal(t, 1, ref.Index)
	assert.Equal(t, "word_fee", ref.Field)

	for _, key := range []string{
		"",
		"data",
		"data.1",
		"data.1.",
		"data.x.word_fee",
		"data.-1.word_fee",
		"payload.1.word_fee",
	} {
		_, err := ParseFieldErrorKey(key)
		assert.Error(t, err, "key %q must be rejected", key)
	}
}

func TestMapErrorTargetsSkillPriceField(t *testing.T) {
	skillA := uuid.New()
	skillB := uuid.New()
	entries := []SkillPriceEntry{
		{GroupKey: "en_de", SkillID: skillA},
		{GroupKey: "en_de", SkillID: skillB},
	}

	fieldErr, err := MapError(StateUpdated, entries, "data.1.word_fee", []string{"must not be negative"})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("en_de.priceObject.%s.word_fee", skillB), fieldErr.Path)
	assert.Equal(t, []string{"must not be negative"}, fieldErr.Messages)
}

func TestMapErrorTargetsLanguageFieldsOnGroup(t *testing.T) {
	entries := []SkillPriceEntry{{GroupKey: "new", SkillID: uuid.New()}}

	srcErr, err := MapError(StateNew, entries, "data.0."+FieldSrcLang, []string{"is required"})
	require.NoError(t, err)
	assert.Equal(t, "new."+FieldSrcLang, srcErr.Path)

	dstErr, err := MapError(StateNew, entries, "data.0."+FieldDstLang, []string{"is required"})
	require.NoError(t, err)
	assert.Equal(t, "new."+FieldDstLang, dstErr.Path)
}

func TestMapErrorFallsBackToPairKey(t *testing.T) {
	src := uuid.New()
	dst := uuid.New()
	skill := uuid.New()
	entries := []SkillPriceEntry{{SkillID: skill, SrcLangID: src, DstLangID: dst}}

	fieldErr, err := MapError(StateUpdated, entries, "data.0.hour_fee", []string{"bad"})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s.priceObject.%s.hour_fee", PairKey(src, dst), skill), fieldErr.Path)
}

func TestMapErrorRejectsOutOfRangeIndex(t *testing.T) {
	entries := []SkillPriceEntry{{GroupKey: "en_de", SkillID: uuid.New()}}

	_, err := MapError(StateNew, entries, "data.3.word_fee", []string{"bad"})
	require.Error(t, err)
}
