package analysis

import (
	"regexp"
	"strings"
	"unicode"

	"mindcare/support-chat/types"
)

// devanagariWeight is added to the Hindi score when the message contains
// Devanagari script, so script alone outweighs a few English loanwords.
const devanagariWeight = 5

// dominantShare is the share of marker hits above which one language is
// considered dominant in code-switched text.
const dominantShare = 0.66

var hindiMarkers = wordSet(
	"hai", "hain", "hoon", "hu", "tha", "thi", "kya", "kyu", "kyun", "kyon", "nahi", "nahin", "mat",
	"mujhe", "mujhko", "mera", "meri", "mere", "tum", "tumhe", "tera", "teri", "aap", "apna", "apni",
	"yaar", "yar", "bhai", "arre", "arey", "accha", "acha", "achha", "theek", "thik", "bahut", "bohot",
	"thoda", "thodi", "lagta", "lagti", "laga", "sab", "kuch", "koi", "haan", "bas", "kab", "kaun",
	"kaise", "kaisa", "kaisi", "kahan", "raha", "rahi", "rahe", "karna", "karo", "kar", "karta", "karti",
	"dil", "pyaar", "pyar", "dost", "pagal", "bekaar", "bekar", "matlab", "samajh", "chal", "chalo",
	"bolo", "zindagi", "haal", "abhi", "phir", "fir", "aur", "lekin", "par", "toh", "bhi", "wala", "wali",
	"gaya", "gayi", "sakta", "sakti", "chahiye", "kyunki", "ekdum", "bilkul", "jaldi",
)

var englishMarkers = []string{
	"the", "is", "are", "am", "was", "were", "i", "you", "my", "me", "we", "they", "feel", "feeling",
	"felt", "what", "how", "why", "when", "because", "really", "very", "about", "with", "have", "has",
	"can", "could", "would", "should", "do", "don't", "not", "just", "so", "and", "but", "this", "that",
	"today", "life", "work", "help", "think", "know", "want", "need", "like", "sad", "happy",
	"anxious", "stressed", "lonely", "tired", "bro", "hello", "hi", "hey", "thanks", "please", "sorry",
}

var englishMarkerPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(englishMarkers))
	for _, w := range englishMarkers {
		out = append(out, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return out
}()

// Hindi markers that read as colloquial when echoed back.
var colloquialHindi = wordSet(
	"yaar", "yar", "bhai", "arre", "arey", "accha", "acha", "achha", "bas", "chal", "chalo",
	"matlab", "pagal", "ekdum", "bilkul", "bohot",
)

var contractions = wordSet(
	"gonna", "wanna", "gotta", "kinda", "sorta", "dunno", "lemme", "gimme", "ain't", "y'all",
	"ya", "nah", "yeah", "yep", "cuz", "coz", "tho",
)

var slangWords = wordSet("lol", "lmao", "bro", "dude", "haha", "hahaha", "omg", "bruh", "yaar", "lit", "chill")

var urgencyWords = wordSet("urgent", "urgently", "now", "asap", "immediately", "emergency", "quick", "quickly", "jaldi", "abhi", "please")

var politenessPhrases = []string{
	"could you", "would you", "kindly", "thank you", "i would appreciate", "may i", "dear",
	"sir", "madam", "aap", "ji",
}

// AnalyzeStyle infers language, tone, and colloquial markers for one message.
// It never fails; an empty message yields English, neutral, moderate.
func AnalyzeStyle(msg string) types.StyleProfile {
	profile := types.StyleProfile{
		Language:       types.LanguageEnglish,
		Colloquialisms: []string{},
		Tone:           types.ToneNeutral,
		SpeechPatterns: types.SpeechPatterns{CodeSwitching: types.CodeSwitchingModerate},
	}

	text := strings.TrimSpace(msg)
	if text == "" {
		return profile
	}

	tokens := tokenize(text)
	hasDevanagari := containsDevanagari(text)

	hindiCount := 0
	if hasDevanagari {
		hindiCount += devanagariWeight
	}
	for _, tok := range tokens {
		if _, ok := hindiMarkers[tok]; ok {
			hindiCount++
		}
	}

	englishCount := 0
	for _, p := range englishMarkerPatterns {
		englishCount += len(p.FindAllStringIndex(text, -1))
	}

	switch {
	case hindiCount > 0 && englishCount > 0:
		profile.Language = types.LanguageHinglish
		total := float64(hindiCount + englishCount)
		switch {
		case float64(hindiCount)/total > dominantShare:
			profile.SpeechPatterns.CodeSwitching = types.CodeSwitchingHighHindi
		case float64(englishCount)/total > dominantShare:
			profile.SpeechPatterns.CodeSwitching = types.CodeSwitchingHighEnglish
		}
	case hindiCount > 0 || hasDevanagari:
		profile.Language = types.LanguageHindi
	}

	profile.Colloquialisms = collectColloquialisms(tokens)
	profile.Tone = detectTone(text, tokens, len(profile.Colloquialisms) > 0)
	return profile
}

func detectTone(text string, tokens []string, hasColloquialisms bool) string {
	lower := strings.ToLower(text)
	words := len(strings.Fields(text))
	hasQuestion := strings.Contains(text, "?")
	hasExclaim := strings.Contains(text, "!")

	if containsToken(tokens, "help") || strings.Contains(lower, "madad") {
		for _, tok := range tokens {
			if _, ok := urgencyWords[tok]; ok {
				return types.ToneUrgent
			}
		}
		if strings.Contains(lower, "right now") {
			return types.ToneUrgent
		}
	}

	for _, phrase := range politenessPhrases {
		if containsPhrase(tokens, phrase) {
			return types.ToneFormal
		}
	}

	if hasExclaim || hasColloquialisms {
		return types.ToneCasual
	}
	for _, tok := range tokens {
		if _, ok := slangWords[tok]; ok {
			return types.ToneCasual
		}
	}

	if words <= 3 && !hasQuestion && !hasExclaim {
		return types.ToneBrief
	}
	if hasQuestion && words <= 12 {
		return types.ToneInquisitive
	}
	return types.ToneNeutral
}

func collectColloquialisms(tokens []string) []string {
	found := []string{}
	seen := make(map[string]bool)
	for _, tok := range tokens {
		if seen[tok] {
			continue
		}
		_, hindi := colloquialHindi[tok]
		_, contraction := contractions[tok]
		if hindi || contraction {
			found = append(found, tok)
			seen[tok] = true
		}
	}
	return found
}

func containsDevanagari(text string) bool {
	for _, r := range text {
		if unicode.In(r, unicode.Devanagari) {
			return true
		}
	}
	return false
}

// tokenize lower-cases text and splits it on anything that is not a letter,
// digit, combining mark or apostrophe.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && !unicode.Is(unicode.M, r)
	})
}

func containsToken(tokens []string, want string) bool {
	for _, tok := range tokens {
		if tok == want {
			return true
		}
	}
	return false
}

// containsPhrase matches a space separated phrase against consecutive tokens.
func containsPhrase(tokens []string, phrase string) bool {
	parts := strings.Fields(phrase)
	if len(parts) == 0 || len(parts) > len(tokens) {
		return false
	}
	for i := 0; i+len(parts) <= len(tokens); i++ {
		match := true
		for j, p := range parts {
			if tokens[i+j] != p {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// WordCount counts whitespace separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
