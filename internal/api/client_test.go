package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dyike/widgetchat/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second)
}

func TestErrorDetailIsSurfaced(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Session not found"})
	})

	_, err := client.GetSession(context.Background(), 42)
	require.Error(t, err)
	require.True(t, IsNotFound(err))
	require.False(t, IsValidation(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Session not found", apiErr.Message)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestErrorWithoutDetailFallsBackToStatusText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("not json at all"))
	})

	_, err := client.ListWidgetTypes(context.Background())
	require.Error(t, err)
	require.True(t, IsValidation(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusText(http.StatusBadRequest), apiErr.Message)
}

func TestRequestsCarryIdentityHeaders(t *testing.T) {
	var gotUA, gotReqID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.ListWidgetTypes(context.Background())
	require.NoError(t, err)
	require.Equal(t, userAgent, gotUA)
	require.NotEmpty(t, gotReqID)
}

func TestSetBaseURLRetargetsRequests(t *testing.T) {
	hits := map[string]int{}
	makeServer := func(name string) *httptest.Server {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits[name]++
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
		}))
		t.Cleanup(server.Close)
		return server
	}
	first := makeServer("first")
	second := makeServer("second")

	client := NewClient(first.URL, 5*time.Second)
	_, err := client.ListWidgetTypes(context.Background())
	require.NoError(t, err)

	client.SetBaseURL(second.URL + "/")
	client.SetTimeout(time.Second)
	_, err = client.ListWidgetTypes(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, hits["first"])
	require.Equal(t, 1, hits["second"])
}

func TestListSessionsSendsUserFilter(t *testing.T) {
	var gotPath, gotUser string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser = r.URL.Query().Get("user_id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 7, "user_id": "alice"}]`))
	})

	sessions, err := client.ListSessions(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, "/chat/sessions", gotPath)
	require.Equal(t, "alice", gotUser)
	require.Len(t, sessions, 1)
	require.Equal(t, 7, sessions[0].ID)
}

func TestRefreshWidgetBody(t *testing.T) {
	var got models.WidgetRefreshRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/widgets/refresh", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "refresh scheduled"}`))
	})

	err := client.RefreshWidget(context.Background(), "w-123", true)
	require.NoError(t, err)
	require.Equal(t, "w-123", got.WidgetID)
	require.True(t, got.ForceRefresh)
}

func TestClearWidgetCacheScopesByType(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/widgets/cache", r.URL.Path)
		gotQuery = r.URL.Query().Get("widget_type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "cleared"}`))
	})

	require.NoError(t, client.ClearWidgetCache(context.Background(), "weather"))
	require.Equal(t, "weather", gotQuery)

	require.NoError(t, client.ClearWidgetCache(context.Background(), ""))
	require.Equal(t, "", gotQuery)
}

func TestFetchWidgetDataRoundTrip(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.WidgetDataRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "weather", req.WidgetType)
		require.Equal(t, "Paris", req.Params["location"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"widget_data": {"temperature": 18.5}, "cached": true, "expires_at": "2026-08-28T12:00:00Z"}`))
	})

	resp, err := client.FetchWidgetData(context.Background(), models.WidgetDataRequest{
		WidgetType: "weather",
		Params:     map[string]any{"location": "Paris"},
	})
	require.NoError(t, err)
	require.True(t, resp.Cached)
	require.NotNil(t, resp.ExpiresAt)
	require.JSONEq(t, `{"temperature": 18.5}`, string(resp.WidgetData))
}

func TestValidateConfigResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/widgets/types/clock/validate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"valid": false}`))
	})

	valid, err := client.ValidateConfig(context.Background(), "clock", models.WidgetConfig{Size: "huge"})
	require.NoError(t, err)
	require.False(t, valid)
}
