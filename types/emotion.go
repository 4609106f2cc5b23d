package types

// Emotion is the label produced by the emotion classifier.
type Emotion string

const (
	EmotionGreeting        Emotion = "greeting"
	EmotionSadness         Emotion = "sadness"
	EmotionAnxiety         Emotion = "anxiety"
	EmotionAnger           Emotion = "anger"
	EmotionLoneliness      Emotion = "loneliness"
	EmotionHopelessness    Emotion = "hopelessness"
	EmotionFinancialStress Emotion = "financial_stress"
	EmotionSuicidal        Emotion = "suicidal"
	EmotionHeartbreak      Emotion = "heartbreak"
	EmotionUserTrust       Emotion = "user_trust"
	EmotionHappyMoments    Emotion = "happy_moments"
	EmotionAwesome         Emotion = "awesome"
	EmotionDeepThoughts    Emotion = "deep_thoughts"
	EmotionDefault         Emotion = "default"
)

// AllEmotions lists every label in classifier table order.
var AllEmotions = []Emotion{
	EmotionSuicidal,
	EmotionGreeting,
	EmotionSadness,
	EmotionAnxiety,
	EmotionAnger,
	EmotionLoneliness,
	EmotionHopelessness,
	EmotionFinancialStress,
	EmotionHeartbreak,
	EmotionUserTrust,
	EmotionHappyMoments,
	EmotionAwesome,
	EmotionDeepThoughts,
	EmotionDefault,
}

// EmotionalContext summarizes the feelings expressed across a conversation.
// It is rebuilt from the message history on every request.
type EmotionalContext struct {
	CurrentEmotion     Emotion         `json:"current_emotion"`
	PersistentEmotions []Emotion       `json:"persistent_emotions"`
	FirstDetectedAt    map[Emotion]int `json:"first_detected_at"`
	LastDetectedAt     map[Emotion]int `json:"last_detected_at"`
	MentionCount       map[Emotion]int `json:"mention_count"`
	PrimaryEmotion     Emotion         `json:"primary_emotion,omitempty"`
	SecondaryEmotion   Emotion         `json:"secondary_emotion,omitempty"`
}

// HasEmotion reports whether e was seen anywhere in the conversation.
func (c EmotionalContext) HasEmotion(e Emotion) bool {
	_, ok := c.MentionCount[e]
	return ok
}
