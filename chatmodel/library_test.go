package chatmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindcare/support-chat/types"
)

func TestDefaultLibraryIsComplete(t *testing.T) {
	lib := DefaultLibrary()

	assert.Len(t, lib.Deflection.English, 5)
	assert.Len(t, lib.Deflection.Hindi, 5)
	assert.Contains(t, lib.ReliefOpeners.English, "Now we're talking!")
	assert.Contains(t, lib.ReliefOpeners.Hindi, "Ohh finally, yeh baat hai!")

	for _, e := range types.AllEmotions {
		assert.NotEmpty(t, lib.GuidanceFor(e, false), e)
		assert.NotEmpty(t, lib.GuidanceFor(e, true), e)

		if !isClarifiable(e) {
			continue
		}
		for _, bank := range []ClarifierBank{lib.Clarifiers.Level1, lib.Clarifiers.Level2} {
			q, ok := bank.Questions[string(e)]
			require.True(t, ok, "no clarifier bank for %s", e)
			assert.Len(t, q.English, 3, e)
			assert.Len(t, q.Hindi, 3, e)
		}
	}
}

func TestLoadLibraryValidates(t *testing.T) {
	_, err := LoadLibrary([]byte("deflection: {english: [a], hindi: [b]}"))
	assert.Error(t, err)

	_, err = LoadLibrary([]byte("clarifiers: ["))
	assert.Error(t, err)
}

func TestIsClarifier(t *testing.T) {
	lib := DefaultLibrary()

	assert.True(t, lib.IsClarifier("Just so I understand you better, how long have you been feeling this way?"))
	assert.True(t, lib.IsClarifier("  Ek baat poochun, kab se aisa feel ho raha hai?"))
	assert.True(t, lib.IsClarifier("I hear you. If it's okay to ask, is there someone you've been able to talk to about it?"))
	assert.False(t, lib.IsClarifier("That sounds really hard. I'm here with you."))
	assert.False(t, lib.IsClarifier(""))
}

func TestIsClarifierIgnoresModelRepliesSharingAPrefix(t *testing.T) {
	lib := DefaultLibrary()

	assert.False(t, lib.IsClarifier("Can I ask you something, do you like music?"))
	assert.False(t, lib.IsClarifier("That makes sense. I'm wondering, what did your sister say?"))
	assert.False(t, lib.IsClarifier("Just so I understand you better,"))
}

func TestQuestionsForUnknownEmotionUsesGeneric(t *testing.T) {
	bank := DefaultLibrary().Clarifiers.Level1
	assert.Equal(t, bank.Questions["generic"].English, bank.QuestionsFor(types.EmotionDefault, false))
	assert.Equal(t, bank.Questions["generic"].Hindi, bank.QuestionsFor(types.EmotionSuicidal, true))
}
