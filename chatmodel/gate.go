package chatmodel

import (
	"mindcare/support-chat/analysis"
	"mindcare/support-chat/config"
	"mindcare/support-chat/types"
)

// Clarification levels
const (
	ClarifyNone   = 0
	ClarifyLevel1 = 1
	ClarifyLevel2 = 2
)

type ClarifyDecision struct {
	Level   int
	Emotion types.Emotion
	Text    string
}

// Fired reports whether the turn should be answered with the question.
func (d ClarifyDecision) Fired() bool {
	return d.Level != ClarifyNone
}

// ClarifyGate decides when a short emotional message gets a canned
// clarifying question instead of a model reply. It escalates at most once:
// after a level-1 and a level-2 question the next turn always goes to the
// model.
type ClarifyGate struct {
	lib *Library
	rng Randomizer
	cfg config.HeuristicsConfig
}

func NewClarifyGate(lib *Library, rng Randomizer) *ClarifyGate {
	if lib == nil {
		lib = DefaultLibrary()
	}
	if rng == nil {
		rng = globalRand{}
	}
	return &ClarifyGate{lib: lib, rng: rng, cfg: config.Heuristics}
}

func (g *ClarifyGate) Decide(history []types.ChatMessage, ec types.EmotionalContext, latest string, style types.StyleProfile) ClarifyDecision {
	emotion := ec.CurrentEmotion
	if emotion == types.EmotionSuicidal {
		return ClarifyDecision{}
	}

	prev, prevPrev := lastAssistantMessages(history)
	prevWasClarifier := g.lib.IsClarifier(prev)
	prevPrevWasClarifier := g.lib.IsClarifier(prevPrev)
	hindi := style.PrefersHindi()

	if g.eligible(history, ec, latest) && !prevWasClarifier {
		return ClarifyDecision{
			Level:   ClarifyLevel1,
			Emotion: emotion,
			Text:    g.question(g.lib.Clarifiers.Level1, emotion, hindi),
		}
	}

	if prevWasClarifier && !prevPrevWasClarifier {
		bankEmotion := emotion
		if !isClarifiable(bankEmotion) {
			bankEmotion = ec.PrimaryEmotion
		}
		return ClarifyDecision{
			Level:   ClarifyLevel2,
			Emotion: emotion,
			Text:    g.question(g.lib.Clarifiers.Level2, bankEmotion, hindi),
		}
	}

	return ClarifyDecision{}
}

// eligible draws randomness last so deterministic rejections never consume
// a draw.
func (g *ClarifyGate) eligible(history []types.ChatMessage, ec types.EmotionalContext, latest string) bool {
	emotion := ec.CurrentEmotion
	if analysis.WordCount(latest) >= g.cfg.ShortMessageWords || !isClarifiable(emotion) {
		return false
	}
	if !analysis.IsNewEmotion(ec, history, emotion) && ec.MentionCount[emotion] > g.cfg.MaxClarifyMentions {
		return false
	}
	return g.rng.Float64() < g.cfg.ClarifyProbability
}

func (g *ClarifyGate) question(bank ClarifierBank, emotion types.Emotion, hindi bool) string {
	prefix := pickOne(g.rng, bank.Prefixes.For(hindi))
	return prefix + " " + pickOne(g.rng, bank.QuestionsFor(emotion, hindi))
}

// Greetings go straight to the model so it can say hello and ask for a name.
func isClarifiable(e types.Emotion) bool {
	switch e {
	case "", types.EmotionDefault, types.EmotionSuicidal, types.EmotionGreeting:
		return false
	}
	return true
}

// lastAssistantMessages returns the contents of the latest two assistant turns.
func lastAssistantMessages(history []types.ChatMessage) (prev, prevPrev string) {
	found := 0
	for i := len(history) - 1; i >= 0 && found < 2; i-- {
		if history[i].Role != types.RoleAssistant {
			continue
		}
		if found == 0 {
			prev = history[i].Content
		} else {
			prevPrev = history[i].Content
		}
		found++
	}
	return prev, prevPrev
}
