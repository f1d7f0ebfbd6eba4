package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"cinelist/proj/internal/config"
	"cinelist/proj/internal/domain/models"
	"cinelist/proj/internal/services"
	"cinelist/proj/internal/services/accounts"
	"cinelist/proj/internal/services/comments"
	"cinelist/proj/internal/services/lists"
	"cinelist/proj/internal/storage"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/stretchr/testify/require"
)

// In-memory storage fakes mirroring the postgres models' error semantics:
// unique-pair violations surface as storage.ErrConflict, absent rows as
// storage.ErrNotFound.

type testListsStorage struct {
	mu      sync.Mutex
	entries map[string]*models.ListEntry
	nextID  int64
}

func listPairKey(kind, userID string, movieID int64) string {
	return fmt.Sprintf("%s|%s|%d", kind, userID, movieID)
}

func (f *testListsStorage) Insert(_ context.Context, kind, userID string, movieID int64, title, posterPath string) (*models.ListEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := listPairKey(kind, userID, movieID)
	if _, ok := f.entries[key]; ok {
		return nil, storage.ErrConflict
	}
	f.nextID++
	entry := &models.ListEntry{
		ID: f.nextID, Kind: kind, UserID: userID, MovieID: movieID,
		Title: title, PosterPath: posterPath, CreatedAt: time.Now(),
	}
	f.entries[key] = entry
	return entry, nil
}

func (f *testListsStorage) Get(_ context.Context, kind, userID string, movieID int64) (*models.ListEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[listPairKey(kind, userID, movieID)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return entry, nil
}

func (f *testListsStorage) ListForUser(_ context.Context, kind, userID string) ([]models.ListEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ListEntry
	for _, entry := range f.entries {
		if entry.Kind == kind && entry.UserID == userID {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (f *testListsStorage) Delete(_ context.Context, kind, userID string, movieID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := listPairKey(kind, userID, movieID)
	if _, ok := f.entries[key]; !ok {
		return storage.ErrNotFound
	}
	delete(f.entries, key)
	return nil
}

type testCommentsStorage struct {
	mu       sync.Mutex
	comments map[int64]*models.Comment
	nextID   int64
	now      time.Time
}

func (f *testCommentsStorage) Insert(_ context.Context, movieID int64, author, text string, rating int) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.now = f.now.Add(time.Second)
	comment := &models.Comment{
		ID: f.nextID, MovieID: movieID, Author: author, Text: text,
		Rating: rating, CreatedAt: f.now, UpdatedAt: f.now,
	}
	f.comments[comment.ID] = comment
	return comment, nil
}

func (f *testCommentsStorage) Get(_ context.Context, id int64) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *comment
	return &copied, nil
}

func (f *testCommentsStorage) ListForMovie(_ context.Context, movieID int64) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Comment
	for _, comment := range f.comments {
		if comment.MovieID == movieID {
			out = append(out, *comment)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *testCommentsStorage) Update(_ context.Context, id int64, text string, rating int) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	comment.Text = text
	comment.Rating = rating
	comment.UpdatedAt = comment.UpdatedAt.Add(time.Second)
	copied := *comment
	return &copied, nil
}

func (f *testCommentsStorage) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

type testUsersStorage struct {
	mu     sync.Mutex
	users  map[string]*models.User
	nextID int64
}

func (f *testUsersStorage) Insert(_ context.Context, name, email string, passwordHash []byte) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[email]; ok {
		return nil, storage.ErrConflict
	}
	f.nextID++
	user := &models.User{
		ID: f.nextID, Name: name, Email: email, PasswordHash: passwordHash,
		IsActive: true, CreatedAt: time.Now(),
	}
	f.users[email] = user
	return user, nil
}

func (f *testUsersStorage) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *testUsersStorage) Update(_ context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var stored *models.User
	for _, u := range f.users {
		if u.ID == user.ID {
			stored = u
			break
		}
	}
	if stored == nil {
		return nil, storage.ErrNotFound
	}
	if existing, ok := f.users[user.Email]; ok && existing.ID != user.ID {
		return nil, storage.ErrConflict
	}
	delete(f.users, stored.Email)
	copied := *user
	f.users[user.Email] = &copied
	result := copied
	return &result, nil
}

func (f *testUsersStorage) Delete(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[email]; !ok {
		return storage.ErrNotFound
	}
	delete(f.users, email)
	return nil
}

type noopMailer struct{}

func (noopMailer) Send(recipient string, tmplName string, tmplData any) error { return nil }

type inlineExecutor struct{}

func (inlineExecutor) Add(task func()) { task() }

func NewTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := &config.Config{
		Debug:     false,
		AppSecret: "test-secret",
		TokenTTL:  time.Hour,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	queryDecoder := schema.NewDecoder()
	queryDecoder.IgnoreUnknownKeys(true)
	usersStorage := &testUsersStorage{users: make(map[string]*models.User)}
	app := &Application{
		cfg:          cfg,
		log:          log,
		validator:    govalidator.New(govalidator.WithRequiredStructEnabled()),
		queryDecoder: queryDecoder,
		Services: &services.Services{
			Accounts: accounts.New(log, usersStorage, noopMailer{}, inlineExecutor{}, cfg.AppSecret, cfg.TokenTTL),
			Lists:    lists.New(log, &testListsStorage{entries: make(map[string]*models.ListEntry)}),
			Comments: comments.New(log, &testCommentsStorage{comments: make(map[int64]*models.Comment), now: time.Now()}),
		},
		Http: &Http{log: log, cfg: cfg},
	}
	return app
}

type testServer struct {
	app     *Application
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	app := NewTestApplication(t)
	return &testServer{app: app, handler: app.routes()}
}

// signup registers a user straight through the service layer and returns a
// valid session token for them.
func (ts *testServer) signup(t *testing.T, email string) string {
	t.Helper()
	_, err := ts.app.Services.Accounts.Register(context.Background(), "Test User", email, "s3cretpass")
	require.NoError(t, err)
	_, token, err := ts.app.Services.Accounts.Login(context.Background(), email, "s3cretpass")
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}
	request := httptest.NewRequest(method, path, reqBody)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	ts.handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}
