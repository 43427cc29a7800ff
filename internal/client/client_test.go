package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestClient creates a DefaultClient pointed at the given test server URL
// with a pre-established session token.
func newTestClient(t *testing.T, endpoint string) *DefaultClient {
	t.Helper()
	c, err := NewDefaultClient(ClientConfig{
		Endpoint:       endpoint,
		RequestTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewDefaultClient: %v", err)
	}
	c.sessionID = "test-session"
	return c
}

func TestNewDefaultClient_RequiresEndpoint(t *testing.T) {
	_, err := NewDefaultClient(ClientConfig{})
	if err == nil {
		t.Fatal("expected error for empty Endpoint")
	}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/session" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "operator@vsphere.local" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`"abc123token"`))
	}))
	defer srv.Close()

	c, err := NewDefaultClient(ClientConfig{
		Endpoint: srv.URL,
		Username: "operator@vsphere.local",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("NewDefaultClient: %v", err)
	}
	if err := c.Login(context.Background()); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if c.sessionID != "abc123token" {
		t.Errorf("sessionID = %q, want %q", c.sessionID, "abc123token")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.Login(context.Background())
	if err == nil {
		t.Fatal("expected error for rejected credentials")
	}
	var se *SessionError
	if !errors.As(err, &se) {
		t.Errorf("error type = %T, want *SessionError", err)
	}
}

func TestGetResyncSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/vsan/clusters/Cluster01/resync" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("vmware-api-session-id"); got != "test-session" {
			t.Errorf("session header = %q, want %q", got, "test-session")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cluster":"Cluster01","state":"Running","bytes_left_gb":133.0,"eta_minutes":95}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	sum, err := c.GetResyncSummary(context.Background(), "Cluster01")
	if err != nil {
		t.Fatalf("GetResyncSummary: %v", err)
	}
	if sum.Cluster != "Cluster01" {
		t.Errorf("Cluster = %q, want %q", sum.Cluster, "Cluster01")
	}
	if sum.BytesLeftGB != 133.0 {
		t.Errorf("BytesLeftGB = %v, want 133.0", sum.BytesLeftGB)
	}
	if sum.EtaMinutes == nil || *sum.EtaMinutes != 95 {
		t.Errorf("EtaMinutes = %v, want 95", sum.EtaMinutes)
	}
}

func TestGetResyncSummary_NoEta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cluster":"Cluster01","state":"Running","bytes_left_gb":12.5}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	sum, err := c.GetResyncSummary(context.Background(), "Cluster01")
	if err != nil {
		t.Fatalf("GetResyncSummary: %v", err)
	}
	if sum.EtaMinutes != nil {
		t.Errorf("EtaMinutes = %v, want nil", *sum.EtaMinutes)
	}
}

func TestGetResyncSummary_UnknownCluster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "cluster not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetResyncSummary(context.Background(), "NoSuchCluster")
	fe := AsFetchError(err)
	if fe == nil {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fe.Kind != FetchNotFound {
		t.Errorf("Kind = %v, want FetchNotFound", fe.Kind)
	}
}

func TestDoGet_ExpiredSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetObjectHealth(context.Background(), "Cluster01")
	fe := AsFetchError(err)
	if fe == nil {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fe.Kind != FetchUnauthorized {
		t.Errorf("Kind = %v, want FetchUnauthorized", fe.Kind)
	}
}

func TestDoGet_ServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetRunningTasks(context.Background(), "Cluster01")
	fe := AsFetchError(err)
	if fe == nil {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fe.Kind != FetchTransient {
		t.Errorf("Kind = %v, want FetchTransient", fe.Kind)
	}
}

func TestDoGet_ConnectionRefusedIsTransient(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetObjectHealth(context.Background(), "Cluster01")
	fe := AsFetchError(err)
	if fe == nil {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fe.Kind != FetchTransient {
		t.Errorf("Kind = %v, want FetchTransient", fe.Kind)
	}
}

func TestGetRunningTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("state") != "running" {
			t.Errorf("state = %q, want %q", q.Get("state"), "running")
		}
		if q.Get("scope") != "Datacenter01" {
			t.Errorf("scope = %q, want %q", q.Get("scope"), "Datacenter01")
		}
		_, _ = w.Write([]byte(`[
			{"id":"task-17","description":"Relocate VM","state":"RUNNING","progress_percent":40,"started_at":"2024-03-01T10:00:00Z"},
			{"id":"task-18","description":"Clone VM","state":"RUNNING","progress_percent":5,"started_at":"2024-03-01T10:05:00Z"}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	tasks, err := c.GetRunningTasks(context.Background(), "Datacenter01")
	if err != nil {
		t.Fatalf("GetRunningTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(tasks))
	}
	if tasks[0].ID != "task-17" {
		t.Errorf("tasks[0].ID = %q, want %q", tasks[0].ID, "task-17")
	}
	if tasks[0].ProgressPercent != 40 {
		t.Errorf("tasks[0].ProgressPercent = %v, want 40", tasks[0].ProgressPercent)
	}
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if !tasks[0].StartedAt.Equal(want) {
		t.Errorf("tasks[0].StartedAt = %v, want %v", tasks[0].StartedAt, want)
	}
}

func TestDoGet_MalformedBodyIsUnexpected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetResyncSummary(context.Background(), "Cluster01")
	fe := AsFetchError(err)
	if fe == nil {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fe.Kind != FetchUnexpected {
		t.Errorf("Kind = %v, want FetchUnexpected", fe.Kind)
	}
	if !strings.Contains(err.Error(), "GetResyncSummary") {
		t.Errorf("error %q does not name the operation", err.Error())
	}
}
