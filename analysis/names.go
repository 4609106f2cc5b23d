package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"mindcare/support-chat/types"
)

var namePatterns = compilePatterns([]string{
	`\bmy\s+name\s+is\s+([\p{L}\p{M}]{2,20})`,
	`\bmy\s+name'?s\s+([\p{L}\p{M}]{2,20})`,
	`\bcall\s+me\s+([\p{L}\p{M}]{2,20})`,
	`\bthis\s+is\s+([\p{L}\p{M}]{2,20})\s+(?:here|speaking)\b`,
	// "I'm <x>" only counts when <x> ends the clause, so "I'm going out" is ignored.
	`\b(?:i\s+am|i'm|im)\s+([\p{L}\p{M}]{2,20})\s*(?:$|[,.!?]|\s+(?:here|and|from)\b)`,
	`\bmera\s+naam\s+([\p{L}\p{M}]{2,20})`,
	`\bnaam\s+(?:hai\s+)?([\p{L}\p{M}]{2,20})\s+hai\b`,
	`\bmain\s+([\p{L}\p{M}]{2,20})\s+(?:hoon|hu|hun)\b`,
})

// Words that show up after "I'm"/"call me" but are not names.
var notNames = wordSet(
	"not", "so", "very", "really", "just", "here", "back", "feeling", "going", "trying", "the",
	"a", "an", "your", "you", "me", "it", "that", "this", "sorry", "new", "also", "still", "too",
	"hai", "naam", "kya", "nahi", "bhi", "bas", "yaar", "bro", "sure", "ready", "home", "busy",
	"alive", "dying", "crazy", "stuck", "free", "student", "working",
	// Physical states and life circumstances.
	"hungry", "sleepy", "thirsty", "cold", "hot", "ill", "late", "early", "awake", "asleep",
	"drunk", "high", "pregnant", "married", "single", "divorced", "unemployed", "old", "young",
	"fat", "sober", "injured", "pain", "bhooka", "bhookha", "bhooki", "neend", "pyaasa",
	"akele", "ghar", "thik", "thoda", "bahut",
)

// ExtractName returns the most recent name a user introduced themselves with,
// or "" when none is found. Feeling words caught by the patterns are ignored.
func ExtractName(history []types.ChatMessage) string {
	name := ""
	for _, msg := range history {
		if msg.Role != types.RoleUser {
			continue
		}
		if found := extractNameFromMessage(msg.Content); found != "" {
			name = found
		}
	}
	return name
}

func extractNameFromMessage(content string) string {
	for _, p := range namePatterns {
		m := p.FindStringSubmatch(content)
		if len(m) < 2 {
			continue
		}
		candidate := strings.ToLower(m[1])
		if _, skip := notNames[candidate]; skip {
			continue
		}
		if strings.HasSuffix(candidate, "ing") || IsEmotionWord(candidate) {
			continue
		}
		return capitalize(candidate)
	}
	return ""
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

