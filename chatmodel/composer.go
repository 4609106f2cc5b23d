package chatmodel

import (
	"fmt"
	"strings"

	"mindcare/support-chat/types"
)

// continuationPrompt keeps the upstream turn order valid when the history
// ends on an assistant message.
const continuationPrompt = "Please continue."

// PromptInput is everything the system prompt is built from.
type PromptInput struct {
	// SectionPrompt is the outer topical prompt, preferences included.
	SectionPrompt string
	Style         types.StyleProfile
	Name          string
	Context       types.EmotionalContext
}

// ComposeSystemPrompt assembles the system prompt for a model turn.
func ComposeSystemPrompt(lib *Library, in PromptInput) string {
	if lib == nil {
		lib = DefaultLibrary()
	}
	hindi := in.Style.PrefersHindi()

	var parts []string
	if s := strings.TrimSpace(in.SectionPrompt); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, styleDirectives(in.Style))

	if in.Name != "" {
		parts = append(parts, fmt.Sprintf("USER NAME:\nThe user's name is %s. Use it naturally and sparingly, not in every message.", in.Name))
	}

	if summary := contextSummary(in.Context); summary != "" {
		parts = append(parts, summary)
	}

	current := in.Context.CurrentEmotion
	if current == "" {
		current = types.EmotionDefault
	}
	parts = append(parts, fmt.Sprintf("EMOTIONAL GUIDANCE (%s):\n%s", current, lib.GuidanceFor(current, hindi)))
	if current == types.EmotionSuicidal {
		parts = append(parts, strings.TrimSpace(lib.CrisisResources))
	}

	if in.Name == "" {
		parts = append(parts, nameRequest(lib, hindi))
	}

	return strings.Join(parts, "\n\n")
}

func styleDirectives(style types.StyleProfile) string {
	var b strings.Builder
	b.WriteString("COMMUNICATION STYLE:\n")
	switch style.Language {
	case types.LanguageHindi:
		b.WriteString("- The user writes in Hindi. Reply in Hindi, using romanized Hindi unless they write in Devanagari.\n")
	case types.LanguageHinglish:
		switch style.SpeechPatterns.CodeSwitching {
		case types.CodeSwitchingHighHindi:
			b.WriteString("- The user writes Hinglish that is mostly Hindi. Reply in the same mix, leaning on Hindi.\n")
		case types.CodeSwitchingHighEnglish:
			b.WriteString("- The user writes Hinglish that is mostly English. Reply in the same mix, leaning on English.\n")
		default:
			b.WriteString("- The user mixes Hindi and English freely. Mirror their Hinglish.\n")
		}
	default:
		b.WriteString("- The user writes in English. Reply in English.\n")
	}

	switch style.Tone {
	case types.ToneUrgent:
		b.WriteString("- They sound urgent. Be direct and calm, and get to what helps right away.\n")
	case types.ToneFormal:
		b.WriteString("- They are polite and formal. Keep a respectful, gentle register.\n")
	case types.ToneCasual:
		b.WriteString("- They are casual. Be relaxed and friendly, like a close friend.\n")
	case types.ToneBrief:
		b.WriteString("- They write very briefly. Keep your reply short too.\n")
	case types.ToneInquisitive:
		b.WriteString("- They are asking something. Answer the question before anything else.\n")
	default:
		b.WriteString("- Keep a warm, natural tone.\n")
	}

	if len(style.Colloquialisms) > 0 {
		fmt.Fprintf(&b, "- They use words like %s; it's fine to echo them now and then.\n", strings.Join(style.Colloquialisms, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func contextSummary(ec types.EmotionalContext) string {
	if len(ec.PersistentEmotions) == 0 {
		return ""
	}
	names := make([]string, 0, len(ec.PersistentEmotions))
	for _, e := range ec.PersistentEmotions {
		names = append(names, string(e))
	}

	var b strings.Builder
	b.WriteString("EMOTIONAL CONTEXT SO FAR:\n")
	fmt.Fprintf(&b, "- Feelings already shared in this conversation: %s\n", strings.Join(names, ", "))
	if ec.PrimaryEmotion != "" {
		fmt.Fprintf(&b, "- Most present: %s\n", ec.PrimaryEmotion)
	}
	if ec.SecondaryEmotion != "" {
		fmt.Fprintf(&b, "- Also present: %s\n", ec.SecondaryEmotion)
	}
	b.WriteString("- Don't ask them again how they feel about things they have already told you; build on it.")
	return b.String()
}

func nameRequest(lib *Library, hindi bool) string {
	var b strings.Builder
	b.WriteString("NAME:\nYou don't know the user's name yet. Respond to what they said first, then, if it feels natural, ask what you can call them. Never make the conversation wait on it, and don't ask again if they skip it. For example:\n")
	for _, example := range lib.NameAsk.For(hindi) {
		b.WriteString("- \"" + example + "\"\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// PrepareMessages puts the system prompt in front of the conversation.
// Client-sent system messages are dropped, and a continuation is appended
// when the last turn is the assistant's.
func PrepareMessages(system string, history []types.ChatMessage) []types.ChatMessage {
	out := make([]types.ChatMessage, 0, len(history)+2)
	out = append(out, types.ChatMessage{Role: types.RoleSystem, Content: system})
	for _, m := range history {
		if m.Role != types.RoleUser && m.Role != types.RoleAssistant {
			continue
		}
		out = append(out, m)
	}
	if out[len(out)-1].Role == types.RoleAssistant {
		out = append(out, types.ChatMessage{Role: types.RoleUser, Content: continuationPrompt})
	}
	return out
}
