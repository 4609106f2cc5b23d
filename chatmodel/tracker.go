package chatmodel

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"mindcare/support-chat/analysis"
	"mindcare/support-chat/config"
	"mindcare/support-chat/llm"
	"mindcare/support-chat/sessions"
	"mindcare/support-chat/types"
)

// RepetitionResult is the tracker's verdict for one incoming message.
type RepetitionResult struct {
	IsRepeated bool
	Count      int
	// Response is set when the turn should be answered with deflection or
	// relief text instead of the normal pipeline.
	Response             *string
	Source               string
	IsDynamicResponse    bool
	IsMeaningfulResponse bool
}

// RepetitionTracker watches each session for repeated messages and for the
// first meaningful message after a run of repeats.
type RepetitionTracker struct {
	store     sessions.Store
	completer llm.Completer
	lib       *Library
	rng       Randomizer
	cfg       config.HeuristicsConfig
	locks     *keyedMutex
}

type TrackerOption func(*RepetitionTracker)

func WithTrackerRandom(rng Randomizer) TrackerOption {
	return func(t *RepetitionTracker) {
		t.rng = rng
	}
}

func WithTrackerLibrary(lib *Library) TrackerOption {
	return func(t *RepetitionTracker) {
		t.lib = lib
	}
}

func NewRepetitionTracker(store sessions.Store, completer llm.Completer, opts ...TrackerOption) *RepetitionTracker {
	t := &RepetitionTracker{
		store:     store,
		completer: completer,
		lib:       DefaultLibrary(),
		rng:       globalRand{},
		cfg:       config.Heuristics,
		locks:     newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Track records message for the session and decides whether it should be
// answered by the tracker. Suicidal messages are recorded but never answered
// here. The session is locked for the whole call, model calls included, so
// concurrent requests for one session apply in order.
func (t *RepetitionTracker) Track(ctx context.Context, sessionID, message string, suicidal bool) (*RepetitionResult, error) {
	unlock := t.locks.Lock(sessionID)
	defer unlock()

	state, err := t.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}
	if state == nil {
		state = types.NewSessionState(sessionID)
	}

	normalized := normalizeMessage(message)
	previous := state.LastMessage
	state.MessageCounts[normalized]++
	isRepeatedImmediate := normalized == previous
	state.LastMessage = normalized
	count := state.MessageCounts[normalized]

	meaningful := t.isMeaningfulResponse(state, message, normalized, previous, count)

	// Language is re-detected from the raw text every call.
	hindi := analysis.AnalyzeStyle(message).PrefersHindi()

	result := &RepetitionResult{
		IsRepeated:           isRepeatedImmediate,
		Count:                count,
		IsMeaningfulResponse: meaningful,
	}

	log := config.Logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"count":      count,
	})

	switch {
	case suicidal:
		if meaningful {
			resetVagueMode(state)
		}
	case count > t.cfg.RepeatThreshold:
		text, dynamic := t.deflect(ctx, message, hindi, state.UsedResponses[normalized])
		state.UsedResponses[normalized] = append(state.UsedResponses[normalized], text)
		result.IsRepeated = true
		result.Response = &text
		result.Source = types.SourceDeflection
		result.IsDynamicResponse = dynamic
		log.WithField("dynamic", dynamic).Info("Repeated message deflected")
	case meaningful:
		text, err := t.relieve(ctx, message, hindi)
		resetVagueMode(state)
		if err != nil {
			log.WithError(err).Warn("Relief generation failed, continuing normally")
			break
		}
		state.LastMeaningfulResponse = &text
		result.Response = &text
		result.Source = types.SourceRelief
		result.IsDynamicResponse = true
		log.Info("Vague mode ended by meaningful message")
	}

	if err := t.store.Put(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save session state: %w", err)
	}
	return result, nil
}

// Reset forgets a session's repetition state.
func (t *RepetitionTracker) Reset(ctx context.Context, sessionID string) error {
	unlock := t.locks.Lock(sessionID)
	defer unlock()
	return t.store.Delete(ctx, sessionID)
}

// isMeaningfulResponse turns vague mode on once a message repeats past the
// threshold, and while it is on decides whether message breaks the pattern.
// Activation itself is never meaningful.
func (t *RepetitionTracker) isMeaningfulResponse(state *types.SessionState, message, normalized, previous string, count int) bool {
	if !state.VagueModeActive {
		if count > t.cfg.RepeatThreshold {
			state.VagueModeActive = true
			state.VagueMessageCount = 1
		}
		return false
	}

	state.VagueMessageCount++

	text := strings.TrimSpace(message)
	if utf8.RuneCountInString(text) < t.cfg.MeaningfulMinLength {
		return false
	}
	switch {
	case strings.Contains(text, "?"):
		return true
	case analysis.WordCount(text) >= t.cfg.MeaningfulMinWords:
		return true
	case strings.ContainsAny(text, ".!,;:"):
		return true
	case state.VagueMessageCount >= t.cfg.VagueTurnsForRelief && normalized != previous:
		return true
	}
	return false
}

// deflect asks the model for a playful redirect, retrying once with a
// simpler prompt before falling back to canned text.
func (t *RepetitionTracker) deflect(ctx context.Context, message string, hindi bool, used []string) (string, bool) {
	prompts := []string{
		deflectionPrompt(hindi, used),
		shortDeflectionPrompt(hindi),
	}
	for attempt, system := range prompts {
		completion, err := t.completer.Complete(ctx, llm.CompletionRequest{
			Messages: []types.ChatMessage{
				{Role: types.RoleSystem, Content: system},
				{Role: types.RoleUser, Content: message},
			},
			Temperature: 0.9,
			MaxTokens:   150,
		})
		if err == nil {
			if text := strings.TrimSpace(completion.Text()); text != "" {
				return text, true
			}
			err = llm.NewEmptyResponseError()
		}
		config.Logger.WithError(err).WithField("attempt", attempt+1).Warn("Deflection generation failed")
		if ctx.Err() != nil {
			break
		}
	}
	return t.fallbackDeflection(hindi, used), false
}

// fallbackDeflection prefers canned lines not yet used for this message.
func (t *RepetitionTracker) fallbackDeflection(hindi bool, used []string) string {
	options := t.lib.Deflection.For(hindi)
	fresh := make([]string, 0, len(options))
	for _, o := range options {
		if !containsString(used, o) {
			fresh = append(fresh, o)
		}
	}
	if len(fresh) == 0 {
		fresh = options
	}
	return pickOne(t.rng, fresh)
}

func (t *RepetitionTracker) relieve(ctx context.Context, message string, hindi bool) (string, error) {
	opener := pickOne(t.rng, t.lib.ReliefOpeners.For(hindi))
	completion, err := t.completer.Complete(ctx, llm.CompletionRequest{
		Messages: []types.ChatMessage{
			{Role: types.RoleSystem, Content: reliefPrompt(hindi, opener)},
			{Role: types.RoleUser, Content: message},
		},
		Temperature: 0.8,
		MaxTokens:   150,
	})
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(completion.Text())
	if text == "" {
		return "", llm.NewEmptyResponseError()
	}
	if !strings.HasPrefix(text, opener) {
		text = opener + " " + text
	}
	return text, nil
}

func deflectionPrompt(hindi bool, used []string) string {
	var b strings.Builder
	b.WriteString("The user has sent the same message several times in a row. Write a reply that:\n")
	b.WriteString("1. Warmly and playfully acknowledges that they keep repeating themselves\n")
	b.WriteString("2. Stays relevant to what the message actually says\n")
	b.WriteString("3. Gently redirects the conversation with one open question\n")
	b.WriteString("4. Is different every time; never reuse an earlier reply\n")
	b.WriteString("5. Uses a light, playful tone with 2-4 emojis and light Markdown such as *italics* or **bold**\n")
	b.WriteString("6. Is 1-3 sentences long\n\n")
	b.WriteString(languageRule(hindi))
	if len(used) > 0 {
		b.WriteString("\n\nReplies already used (write something new):\n")
		for _, u := range used {
			b.WriteString("- " + u + "\n")
		}
	}
	return b.String()
}

func shortDeflectionPrompt(hindi bool) string {
	return "The user keeps repeating the same message. Reply playfully in 1-2 sentences with a couple of emojis and ask what is really on their mind. " + languageRule(hindi)
}

func reliefPrompt(hindi bool, opener string) string {
	return fmt.Sprintf(`After several repeated or vague messages, the user has finally shared something real. Reply in 2-3 short, warm sentences that show you are glad they opened up and respond to what they said.
Your reply MUST begin with exactly: "%s"

%s`, opener, languageRule(hindi))
}

func languageRule(hindi bool) string {
	if hindi {
		return "LANGUAGE: Reply ONLY in Hinglish (romanized Hindi, the way the user writes). Do not switch into full English sentences."
	}
	return "LANGUAGE: Reply ONLY in English. Do not mix in Hindi words."
}

func resetVagueMode(state *types.SessionState) {
	state.VagueModeActive = false
	state.VagueMessageCount = 0
}

func normalizeMessage(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

func containsString(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
