package analysis

import (
	"sort"

	"mindcare/support-chat/types"
)

// BuildEmotionalContext replays the classifier over every user message.
// Indexes are positions in history. The result depends only on history.
func BuildEmotionalContext(history []types.ChatMessage) types.EmotionalContext {
	ctx := types.EmotionalContext{
		CurrentEmotion:     types.EmotionDefault,
		PersistentEmotions: []types.Emotion{},
		FirstDetectedAt:    make(map[types.Emotion]int),
		LastDetectedAt:     make(map[types.Emotion]int),
		MentionCount:       make(map[types.Emotion]int),
	}

	lastUser := -1
	for i, msg := range history {
		if msg.Role != types.RoleUser {
			continue
		}
		lastUser = i

		emotion := ClassifyEmotion(msg.Content)
		if emotion == types.EmotionDefault {
			continue
		}
		if _, seen := ctx.FirstDetectedAt[emotion]; !seen {
			ctx.FirstDetectedAt[emotion] = i
			ctx.PersistentEmotions = append(ctx.PersistentEmotions, emotion)
		}
		ctx.LastDetectedAt[emotion] = i
		ctx.MentionCount[emotion]++
	}

	if lastUser >= 0 {
		ctx.CurrentEmotion = ClassifyEmotion(history[lastUser].Content)
	}

	ranked := make([]types.Emotion, len(ctx.PersistentEmotions))
	copy(ranked, ctx.PersistentEmotions)
	// Ties go to the emotion that showed up first.
	sort.SliceStable(ranked, func(a, b int) bool {
		ca, cb := ctx.MentionCount[ranked[a]], ctx.MentionCount[ranked[b]]
		if ca != cb {
			return ca > cb
		}
		return ctx.FirstDetectedAt[ranked[a]] < ctx.FirstDetectedAt[ranked[b]]
	})
	if len(ranked) > 0 {
		ctx.PrimaryEmotion = ranked[0]
	}
	if len(ranked) > 1 {
		ctx.SecondaryEmotion = ranked[1]
	}

	return ctx
}

// IsNewEmotion reports whether e was first seen in the latest user message.
func IsNewEmotion(ctx types.EmotionalContext, history []types.ChatMessage, e types.Emotion) bool {
	if !ctx.HasEmotion(e) {
		return true
	}
	first := ctx.FirstDetectedAt[e]
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == types.RoleUser {
			return first == i
		}
	}
	return true
}
