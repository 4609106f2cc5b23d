package config

// HeuristicsConfig tunes the conversational heuristics in front of the model.
type HeuristicsConfig struct {
	ShortMessageWords   int     `json:"short_message_words"`
	ClarifyProbability  float64 `json:"clarify_probability"`
	MaxClarifyMentions  int     `json:"max_clarify_mentions"`
	RepeatThreshold     int     `json:"repeat_threshold"`
	MeaningfulMinLength int     `json:"meaningful_min_length"`
	MeaningfulMinWords  int     `json:"meaningful_min_words"`
	VagueTurnsForRelief int     `json:"vague_turns_for_relief"`
}

var Heuristics = HeuristicsConfig{
	ShortMessageWords:   7,
	ClarifyProbability:  0.6,
	MaxClarifyMentions:  2,
	RepeatThreshold:     2,
	MeaningfulMinLength: 15,
	MeaningfulMinWords:  5,
	VagueTurnsForRelief: 3,
}

// Activity types recorded per chat turn
const (
	ActivityTypeChatTurn    = "chat_turn"
	ActivityTypeMoodLogged  = "mood_logged"
	ActivityTypePHQ9Scored  = "phq9_scored"
	ActivityTypeCrisisRoute = "crisis_route"
)
