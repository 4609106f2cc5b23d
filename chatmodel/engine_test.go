package chatmodel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindcare/support-chat/llm"
	"mindcare/support-chat/sessions"
	"mindcare/support-chat/types"
)

func newTestEngine(mock *llm.MockCompleter, rng Randomizer) *Engine {
	engine, _ := newTestEngineWithStore(mock, rng)
	return engine
}

func newTestEngineWithStore(mock *llm.MockCompleter, rng Randomizer) (*Engine, *sessions.MemoryStore) {
	store := sessions.NewMemoryStore(time.Hour, nil)
	tracker := NewRepetitionTracker(store, mock, WithTrackerRandom(rng))
	return NewEngine(tracker, NewClarifyGate(nil, rng), mock, "test-model"), store
}

func systemPrompt(t *testing.T, req llm.CompletionRequest) string {
	t.Helper()
	require.NotEmpty(t, req.Messages)
	require.Equal(t, types.RoleSystem, req.Messages[0].Role)
	return req.Messages[0].Content
}

func TestRespondGreetingGoesToModelWithNameRequest(t *testing.T) {
	mock := &llm.MockCompleter{Replies: []string{"Hey there! 😊 What should I call you?"}}
	engine := newTestEngine(mock, fixedRand{f: 0.0})

	resp, err := engine.Respond(context.Background(), &types.ChatRequest{
		Messages:  []types.ChatMessage{user("hi")},
		SessionID: "s1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Hey there! 😊 What should I call you?", resp.Text())
	assert.Equal(t, types.SourceModel, resp.Source)
	assert.Equal(t, types.EmotionGreeting, resp.Emotion)
	assert.Equal(t, types.LanguageEnglish, resp.Language)
	assert.Equal(t, "s1", resp.SessionID)

	prompt := systemPrompt(t, mock.LastRequest())
	assert.Contains(t, prompt, "You don't know the user's name yet")
	assert.Contains(t, prompt, "Reply in English")
	assert.Equal(t, user("hi"), mock.LastRequest().Messages[1])
}

func TestRespondHindiHopelessness(t *testing.T) {
	mock := &llm.MockCompleter{}
	engine := newTestEngine(mock, fixedRand{f: 0.99})

	resp, err := engine.Respond(context.Background(), &types.ChatRequest{
		Messages: []types.ChatMessage{user("mujhe lagta hai sab kuch bekaar hai")},
	})
	require.NoError(t, err)

	assert.Equal(t, types.EmotionHopelessness, resp.Emotion)
	assert.Equal(t, types.LanguageHindi, resp.Language)
	assert.Empty(t, resp.SessionID)

	prompt := systemPrompt(t, mock.LastRequest())
	assert.Contains(t, prompt, DefaultLibrary().GuidanceFor(types.EmotionHopelessness, true))
	assert.NotContains(t, prompt, "CRISIS RESOURCES")
}

func TestRespondClarifiesWithoutCallingModel(t *testing.T) {
	mock := &llm.MockCompleter{}
	engine := newTestEngine(mock, fixedRand{f: 0.0})

	resp, err := engine.Respond(context.Background(), &types.ChatRequest{
		Messages: []types.ChatMessage{user("I feel so sad")},
		UserID:   "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, mock.Calls())
	assert.Equal(t, types.SourceClarification, resp.Source)
	assert.Equal(t, ClarifyLevel1, resp.ClarificationLevel)
	assert.Equal(t, types.EmotionSadness, resp.Emotion)
	assert.Equal(t, "u1", resp.SessionID)
	assert.Equal(t, "chat.completion", resp.Object)
	assert.Equal(t, "test-model", resp.Model)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, types.RoleAssistant, resp.Choices[0].Message.Role)
	assert.True(t, DefaultLibrary().IsClarifier(resp.Text()))
}

func TestRespondFourthTurnAfterTwoClarifiersCallsModel(t *testing.T) {
	mock := &llm.MockCompleter{Replies: []string{"I'm listening."}}
	engine := newTestEngine(mock, fixedRand{f: 0.0})
	ctx := context.Background()

	history := []types.ChatMessage{user("I feel so sad")}
	for turn := 1; turn <= 2; turn++ {
		resp, err := engine.Respond(ctx, &types.ChatRequest{Messages: history, SessionID: "s1"})
		require.NoError(t, err)
		require.Equal(t, types.SourceClarification, resp.Source, "turn %d", turn)
		assert.Equal(t, turn, resp.ClarificationLevel)
		history = append(history, assistant(resp.Text()), user("i feel lonely"))
	}

	resp, err := engine.Respond(ctx, &types.ChatRequest{Messages: history, SessionID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, types.SourceModel, resp.Source)
	assert.Equal(t, 1, mock.Calls())
}

func TestRespondSuicidalAlwaysGetsModelWithCrisisText(t *testing.T) {
	mock := &llm.MockCompleter{}
	engine := newTestEngine(mock, fixedRand{f: 0.0})
	ctx := context.Background()

	msg := "I feel so alone, I want to end it all"
	for i := 1; i <= 3; i++ {
		resp, err := engine.Respond(ctx, &types.ChatRequest{
			Messages:  []types.ChatMessage{user(msg)},
			SessionID: "s1",
		})
		require.NoError(t, err)
		assert.Equal(t, types.SourceModel, resp.Source)
		assert.Equal(t, types.EmotionSuicidal, resp.Emotion)
		assert.Contains(t, systemPrompt(t, mock.LastRequest()), "CRISIS RESOURCES")
	}
	assert.Equal(t, 3, mock.Calls())
}

func TestRespondDeflectsRepeatedMessage(t *testing.T) {
	mock := &llm.MockCompleter{Replies: []string{"hello!", "hi again!", "Third time's the charm? 😄"}}
	engine := newTestEngine(mock, fixedRand{f: 0.99})
	ctx := context.Background()

	var resp *types.Completion
	for i := 0; i < 3; i++ {
		var err error
		resp, err = engine.Respond(ctx, &types.ChatRequest{
			Messages:  []types.ChatMessage{user("hey")},
			SessionID: "s1",
		})
		require.NoError(t, err)
	}

	assert.Equal(t, types.SourceDeflection, resp.Source)
	assert.Equal(t, "Third time's the charm? 😄", resp.Text())
	assert.Equal(t, 3, mock.Calls())
}

func TestRespondAnonymousTurnsAreNotStored(t *testing.T) {
	mock := &llm.MockCompleter{}
	engine, store := newTestEngineWithStore(mock, fixedRand{f: 0.99})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		resp, err := engine.Respond(ctx, &types.ChatRequest{
			Messages: []types.ChatMessage{user("hello there")},
		})
		require.NoError(t, err)
		assert.Equal(t, types.SourceModel, resp.Source)
		assert.Empty(t, resp.SessionID)
	}

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 5, mock.Calls())
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "s1", SessionKey(&types.ChatRequest{SessionID: "s1", UserID: "u1"}))
	assert.Equal(t, "u1", SessionKey(&types.ChatRequest{UserID: "u1"}))
	assert.Equal(t, "", SessionKey(&types.ChatRequest{}))
}

func TestRespondUpstreamFailure(t *testing.T) {
	upstream := llm.NewAPIError(503, `{"message":"overloaded"}`, nil)
	mock := &llm.MockCompleter{Errors: []error{upstream}}
	engine := newTestEngine(mock, fixedRand{f: 0.99})

	resp, err := engine.Respond(context.Background(), &types.ChatRequest{
		Messages: []types.ChatMessage{user("can you help me think through a decision about my job?")},
	})
	assert.Nil(t, resp)

	var llmErr *llm.Error
	require.True(t, errors.As(err, &llmErr))
	assert.Equal(t, llm.ErrorTypeAPI, llmErr.Type)
	assert.Equal(t, 503, llmErr.Code)
}

func TestRespondRequiresUserMessage(t *testing.T) {
	engine := newTestEngine(&llm.MockCompleter{}, fixedRand{})

	_, err := engine.Respond(context.Background(), &types.ChatRequest{
		Messages: []types.ChatMessage{assistant("Hello?")},
	})
	assert.ErrorIs(t, err, ErrNoUserMessage)
}

func TestRespondUsesPreferenceNameAndSection(t *testing.T) {
	mock := &llm.MockCompleter{}
	engine := newTestEngine(mock, fixedRand{f: 0.99})

	_, err := engine.Respond(context.Background(), &types.ChatRequest{
		Messages:        []types.ChatMessage{user("work has been a lot lately and I can't switch off")},
		Section:         llm.SectionAnxiety,
		UserPreferences: &types.UserPreferences{Name: "Ravi", Age: 24},
	})
	require.NoError(t, err)

	prompt := systemPrompt(t, mock.LastRequest())
	assert.Contains(t, prompt, "TOPIC FOCUS: ANXIETY")
	assert.Contains(t, prompt, "The user's name is Ravi")
	assert.NotContains(t, prompt, "You don't know the user's name yet")
}
