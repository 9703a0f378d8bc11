package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mmgblabel-png/bigharvestfarming/internal/codec"
	"github.com/mmgblabel-png/bigharvestfarming/internal/domain"
	"github.com/mmgblabel-png/bigharvestfarming/internal/store"
)

// MockStore mocks the store.Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context, profile string) (string, error) {
	args := m.Called(ctx, profile)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, profile, document string) error {
	return m.Called(ctx, profile, document).Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

func newFileStore(t *testing.T) (*store.FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := store.NewFileStore(dir)
	require.NoError(t, err)
	return s, dir
}

func decodeStatus(t *testing.T, body string) StatusResponse {
	t.Helper()
	var resp StatusResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return resp
}

func TestHandleHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	HandleHealth().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestHandleReadyz(t *testing.T) {
	t.Run("store reachable", func(t *testing.T) {
		s := &MockStore{}
		s.On("Ping", mock.Anything).Return(nil)

		w := httptest.NewRecorder()
		HandleReadyz(s).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		s.AssertExpectations(t)
	})

	t.Run("store down", func(t *testing.T) {
		s := &MockStore{}
		s.On("Ping", mock.Anything).Return(assert.AnError)

		w := httptest.NewRecorder()
		HandleReadyz(s).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, StatusUnavailable, decodeStatus(t, w.Body.String()).Status)
	})
}

func TestResolveProfile(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		header  string
		want    string
		wantErr bool
	}{
		{"query", "/api/state?profile=ue-test", "", "ue-test", false},
		{"header fallback", "/api/state", "qa", "qa", false},
		{"query wins over header", "/api/state?profile=p1", "p2", "p1", false},
		{"default", "/api/state", "", domain.FallbackProfile, false},
		{"sanitized", "/api/state?profile=dev%20test!!", "", "devtest", false},
		{"nothing left", "/api/state?profile=!!!", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set("X-Profile", tt.header)
			}

			got, err := ResolveProfile(req)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidProfile)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleGetState_DefaultsToMinimal(t *testing.T) {
	s, _ := newFileStore(t)

	w := httptest.NewRecorder()
	HandleGetState(s).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/state?profile=new", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, codec.MakeMinimal(0, 0), w.Body.String())
}

func TestSaveThenGet_RoundTrip(t *testing.T) {
	s, dir := newFileStore(t)
	doc := codec.MakeMinimal(777, 5)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/state", strings.NewReader(doc+"\n"))
	req.Header.Set("X-Profile", "ue-test")
	HandleSaveState(s).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, StatusOK, decodeStatus(t, w.Body.String()).Status)
	_, err := os.Stat(filepath.Join(dir, "ue-test.json"))
	require.NoError(t, err)

	w = httptest.NewRecorder()
	HandleGetState(s).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/state?profile=ue-test", nil))

	require.Equal(t, http.StatusOK, w.Code)
	state, err := codec.Decode(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, 777, state.Money)
	assert.Equal(t, 5, state.XP)
}

func TestHandleSaveState_RejectsInvalidJSON(t *testing.T) {
	for _, body := range []string{"not json", "[1,2]", "42", ""} {
		t.Run(body, func(t *testing.T) {
			s := &MockStore{}

			w := httptest.NewRecorder()
			HandleSaveState(s).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/state?profile=ue", strings.NewReader(body)))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, StatusError, decodeStatus(t, w.Body.String()).Status)
			s.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleSaveState_BodyTooLarge(t *testing.T) {
	s := &MockStore{}
	body := `{"pad":"` + strings.Repeat("x", 2048) + `"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/state", strings.NewReader(body))
	req.Body = http.MaxBytesReader(w, req.Body, 1024)
	HandleSaveState(s).ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestHandleSaveState_StoreFailure(t *testing.T) {
	s := &MockStore{}
	s.On("Save", mock.Anything, "ue", "{}").Return(errors.New("disk full"))

	w := httptest.NewRecorder()
	HandleSaveState(s).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/state?profile=ue", strings.NewReader("{}")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeStatus(t, w.Body.String())
	assert.Equal(t, ErrMsgGenericServerError, resp.Error)
	assert.NotContains(t, w.Body.String(), "disk full")
}

func TestHandleGetState_StoreFailure(t *testing.T) {
	s := &MockStore{}
	s.On("Load", mock.Anything, "ue").Return("", errors.New("connection refused"))

	w := httptest.NewRecorder()
	HandleGetState(s).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/state?profile=ue", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleReset(t *testing.T) {
	s, dir := newFileStore(t)

	w := httptest.NewRecorder()
	HandleReset(s).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/reset?profile=dev%20test!!", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
		State  struct {
			Money  *int            `json:"money"`
			XP     *int            `json:"xp"`
			Tiles  [][]interface{} `json:"tiles"`
			Quests []interface{}   `json:"quests"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, StatusOK, resp.Status)
	require.NotNil(t, resp.State.Money)
	require.NotNil(t, resp.State.XP)
	require.Len(t, resp.State.Tiles, 20)
	assert.Len(t, resp.State.Tiles[0], 20)
	assert.NotNil(t, resp.State.Quests)

	_, err := os.Stat(filepath.Join(dir, "devtest.json"))
	assert.NoError(t, err)
}

func TestHandlers_InvalidProfile(t *testing.T) {
	s := &MockStore{}
	handlers := map[string]http.HandlerFunc{
		http.MethodGet:  HandleGetState(s),
		http.MethodPost: HandleReset(s),
	}

	for method, h := range handlers {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(method, "/api/state?profile=%21%21", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, method)
		assert.Equal(t, ErrMsgInvalidProfile, decodeStatus(t, w.Body.String()).Error)
	}
	s.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

func TestBufferPool_DropsOversized(t *testing.T) {
	buf := getBuffer()
	buf.Grow(8 * initialBufferSize)
	putBuffer(buf)

	again := getBuffer()
	defer putBuffer(again)
	assert.Equal(t, 0, again.Len())
}
