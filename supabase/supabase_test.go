package supabase

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindcare/support-chat/types"
)

func requestWithToken(t *testing.T, userID string) *http.Request {
	t.Helper()
	token, err := GenerateTestJWT(userID, "test-secret")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func TestUserFromRequest(t *testing.T) {
	token, userID, err := UserFromRequest(requestWithToken(t, "user-123"))
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.NotEmpty(t, token)
}

func TestUserFromRequestErrors(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"missing", "", ErrMissingAuth},
		{"not bearer", "Basic abc", ErrInvalidAuth},
		{"empty bearer", "Bearer ", ErrInvalidAuth},
		{"garbage", "Bearer not-a-jwt", ErrInvalidAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			_, _, err := UserFromRequest(r)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewConnectorRequiresCredentials(t *testing.T) {
	_, err := NewConnector("", "key")
	assert.Error(t, err)

	_, err = NewConnector("https://example.supabase.co", "key")
	assert.NoError(t, err)
}

func TestListMoodsQueriesUserRows(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]types.MoodEntry{
			{ID: "m2", UserID: "user-123", Mood: "calm", Intensity: 4, CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
			{ID: "m1", UserID: "user-123", Mood: "sad", Intensity: 7, CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		})
	}))
	defer srv.Close()

	conn, err := NewConnector(srv.URL, "anon-key")
	require.NoError(t, err)

	req := requestWithToken(t, "user-123")
	repo, userID, err := conn.ForRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)

	entries, err := repo.ListMoods(userID, time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "calm", entries[0].Mood)

	assert.True(t, strings.HasSuffix(gotPath, "/"+moodTable), gotPath)
	assert.Contains(t, gotQuery, "user_id=eq.user-123")
	assert.Equal(t, req.Header.Get("Authorization"), gotAuth)
}
