package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"toski_backend/internal/app"
	"toski_backend/internal/auth"
	"toski_backend/internal/config"
	"toski_backend/internal/jobs"
	"toski_backend/internal/match"
	"toski_backend/internal/moxfield"
	"toski_backend/internal/platform/database"
	"toski_backend/internal/platform/metrics"
	"toski_backend/internal/profile"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const adminUserID = "900000000000000001"

// fakeDiscord answers /users/@me from a fixed token table.
func fakeDiscord(t *testing.T, tokens map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/@me" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		id, ok := tokens[token]
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": id, "username": "user" + id})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// fakeMoxfield serves known accounts and decks; deck "renamed" answers with another publicId.
func fakeMoxfield(t *testing.T, accounts, decks []string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for _, a := range accounts {
		handle := a
		mux.HandleFunc("/v1/users/"+handle, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"userName": handle, "displayName": handle})
		})
	}
	for _, d := range decks {
		deckID := d
		mux.HandleFunc("/v3/decks/all/"+deckID, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"publicId": deckID, "name": "Deck " + deckID})
		})
	}
	mux.HandleFunc("/v3/decks/all/renamed", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"publicId": "something-else"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// formRecorder captures match form posts.
type formRecorder struct {
	mu     sync.Mutex
	posts  []url.Values
	status int
}

func (f *formRecorder) serve(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		f.mu.Lock()
		f.posts = append(f.posts, r.PostForm)
		status := f.status
		f.mu.Unlock()
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

type testEnv struct {
	handler http.Handler
	store   profile.Store
	forms   *formRecorder
	job     *jobs.DeckAuditJob
}

// newTestEnv assembles the full server over sqlite and fake providers.
func newTestEnv(t *testing.T, tokens map[string]string, accounts, decks []string, lenient bool) *testEnv {
	t.Helper()
	forms := &formRecorder{}
	cfg := &config.Config{
		GinMode:                "test",
		ServerHost:             "127.0.0.1",
		ServerPort:             "0",
		DBDriver:               "sqlite",
		DBSource:               "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		DBAutoMigrate:          true,
		LogLevel:               "silent",
		AdminUserID:            adminUserID,
		DiscordAPIBaseURL:      fakeDiscord(t, tokens).URL,
		MoxfieldAPIBaseURL:     fakeMoxfield(t, accounts, decks).URL,
		MoxfieldUserAgent:      "toski-integration",
		MatchFormSubmitURL:     forms.serve(t).URL,
		MatchSubmissionLenient: lenient,
		ExternalCallTimeout:    2 * time.Second,
		MetricsEnabled:         true,
	}
	logger := zap.NewNop()

	db, err := database.NewGORM(cfg, logger)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(cfg, db, logger, profile.Models()...))
	t.Cleanup(func() { database.Close(db, logger) })

	registry := metrics.NewRegistry()
	store := profile.NewGORMStore(db)
	verifier := auth.NewVerifier(auth.NewDiscordClient(cfg, registry), cfg, logger)
	moxClient := moxfield.NewClient(cfg, nil, registry, logger)
	resolver := moxfield.NewDeckResolver(moxClient, logger)
	profileSvc := profile.NewService(store, verifier, moxfield.NewAccountValidator(moxClient, logger), resolver, logger)
	matchSvc := match.NewService(match.NewGoogleFormsClient(cfg, registry), cfg, logger)
	job := jobs.NewDeckAuditJob(store, resolver, logger, cfg)

	server, err := app.NewServer(cfg, logger, registry, store,
		profile.NewHandler(profileSvc, logger),
		moxfield.NewHandler(moxClient, logger),
		match.NewHandler(matchSvc, logger),
		job,
	)
	require.NoError(t, err)

	return &testEnv{handler: server.Handler(), store: store, forms: forms, job: job}
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("access-token", token)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}
