package types

const (
	LanguageEnglish  = "English"
	LanguageHindi    = "Hindi"
	LanguageHinglish = "Hinglish"
)

const (
	ToneNeutral     = "neutral"
	ToneFormal      = "formal"
	ToneCasual      = "casual"
	ToneUrgent      = "urgent"
	ToneBrief       = "brief"
	ToneInquisitive = "inquisitive"
)

const (
	CodeSwitchingHighHindi   = "high_hindi"
	CodeSwitchingHighEnglish = "high_english"
	CodeSwitchingModerate    = "moderate"
)

type SpeechPatterns struct {
	CodeSwitching string `json:"code_switching"`
}

type StyleProfile struct {
	Language       string         `json:"language"`
	Colloquialisms []string       `json:"colloquialisms"`
	Tone           string         `json:"tone"`
	SpeechPatterns SpeechPatterns `json:"speech_patterns"`
}

// PrefersHindi is true for Hindi and Hinglish speakers.
func (s StyleProfile) PrefersHindi() bool {
	return s.Language == LanguageHindi || s.Language == LanguageHinglish
}
