package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/opengrama/gramasurvey/internal/adapters/driven/storage/memory"
	"github.com/opengrama/gramasurvey/internal/core/domain"
	"github.com/opengrama/gramasurvey/internal/core/ports/driven"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *memory.SessionStore) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sessions := memory.NewSessionStore()
	client, err := NewClient(Config{BaseURL: server.URL}, sessions)
	require.NoError(t, err)
	return client, sessions
}

func signIn(t *testing.T, sessions *memory.SessionStore) {
	t.Helper()
	require.NoError(t, sessions.Save(context.Background(), domain.Session{
		Username: "enumerator1",
		Token:    oauth2.Token{AccessToken: "tok-123"},
	}))
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{}, memory.NewSessionStore())
	assert.Error(t, err)
}

func TestClient_Create_Success(t *testing.T) {
	var gotAuth, gotKey string
	var gotBody map[string]any

	client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/households", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"householdId": "hh-42"})
	}))
	signIn(t, sessions)

	record := domain.Record{"head_name": "Chomi", "created_by": domain.SystemCreator}
	result, err := client.Create(context.Background(), record, "draft-uuid-1")
	require.NoError(t, err)
	assert.Equal(t, "hh-42", result.HouseholdID)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "draft-uuid-1", gotKey)
	assert.Equal(t, "Chomi", gotBody["head_name"])
}

func TestClient_Create_NoSession(t *testing.T) {
	called := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.Create(context.Background(), domain.Record{}, "k")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.False(t, called, "no request without a session")
}

func TestClient_Create_Unauthorized(t *testing.T) {
	client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	signIn(t, sessions)

	_, err := client.Create(context.Background(), domain.Record{}, "k")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestClient_Create_Rejection_CarriesServerMessage(t *testing.T) {
	client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "ward_number is required"})
	}))
	signIn(t, sessions)

	_, err := client.Create(context.Background(), domain.Record{}, "k")
	assert.ErrorIs(t, err, domain.ErrServerRejected)

	var rej *driven.RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, http.StatusUnprocessableEntity, rej.StatusCode)
	assert.Equal(t, "ward_number is required", rej.Message)
}

func TestClient_Create_Rejection_MalformedErrorBody(t *testing.T) {
	client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>gateway error</html>"))
	}))
	signIn(t, sessions)

	_, err := client.Create(context.Background(), domain.Record{}, "k")
	assert.ErrorIs(t, err, domain.ErrServerRejected)

	var rej *driven.RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "", rej.Message)
}

func TestClient_Create_MalformedSuccessBody(t *testing.T) {
	client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("not json"))
	}))
	signIn(t, sessions)

	_, err := client.Create(context.Background(), domain.Record{}, "k")
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestClient_Create_Unreachable(t *testing.T) {
	sessions := memory.NewSessionStore()
	signIn(t, sessions)

	// A closed server is as good as no network.
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client, err := NewClient(Config{BaseURL: server.URL}, sessions)
	require.NoError(t, err)

	_, err = client.Create(context.Background(), domain.Record{}, "k")
	assert.ErrorIs(t, err, domain.ErrUnreachable)
}

func TestClient_Login_Success(t *testing.T) {
	expiry := time.Now().Add(8 * time.Hour).UTC().Truncate(time.Second)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "enumerator1", creds["username"])
		require.Equal(t, "secret", creds["password"])

		json.NewEncoder(w).Encode(map[string]any{
			"token":     "tok-456",
			"expiresAt": expiry,
		})
	}))

	session, err := client.Login(context.Background(), "enumerator1", "secret")
	require.NoError(t, err)
	assert.Equal(t, "enumerator1", session.Username)
	assert.Equal(t, "tok-456", session.Token.AccessToken)
	assert.Equal(t, "Bearer", session.Token.TokenType)
	assert.Equal(t, expiry, session.Token.Expiry.UTC().Truncate(time.Second))
	assert.True(t, session.Valid())
}

func TestClient_Login_BadCredentials(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.Login(context.Background(), "enumerator1", "wrong")
	assert.ErrorIs(t, err, domain.ErrAuthInvalid)
}

func TestClient_Login_MalformedBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))

	_, err := client.Login(context.Background(), "enumerator1", "secret")
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestClient_Health(t *testing.T) {
	healthy := true
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/health", r.URL.Path)
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))

	assert.NoError(t, client.Health(context.Background()))

	healthy = false
	assert.ErrorIs(t, client.Health(context.Background()), domain.ErrUnreachable)
}
