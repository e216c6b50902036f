// ABOUTME: Tests for the session store lifecycle
// ABOUTME: Covers login success/failure, logout idempotence, and overlap coalescing

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/clinica-gt/clinica-cli/internal/client"
)

// recordingNotifier counts notifications for assertions
type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func newTestStore(t *testing.T, serverURL string) (*Store, *TokenFile, *recordingNotifier) {
	t.Helper()
	creds := NewTokenFile(t.TempDir())
	notifier := &recordingNotifier{}
	api := client.New(serverURL, creds)
	return NewStore(api, creds, notifier), creds, notifier
}

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			t.Errorf("expected path /login, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.LoginResponse{Token: "abc", Username: "john"})
	}))
	defer server.Close()

	store, creds, notifier := newTestStore(t, server.URL)

	ok := store.Login(context.Background(), "john", "pw")
	if !ok {
		t.Fatal("expected login to succeed")
	}
	if creds.Token() != "abc" {
		t.Errorf("expected stored token abc, got %q", creds.Token())
	}
	if !store.Authenticated() {
		t.Error("expected authenticated state")
	}
	if user := store.CurrentUser(); user == nil || user.Username != "john" {
		t.Errorf("expected user john, got %+v", user)
	}
	if store.Loading() {
		t.Error("expected loading to be reset after login")
	}
	if len(notifier.successes) != 1 {
		t.Errorf("expected one success notification, got %d", len(notifier.successes))
	}
}

func TestLogin_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "bad credentials"})
	}))
	defer server.Close()

	store, creds, notifier := newTestStore(t, server.URL)
	if err := creds.Save("old-token", "prev"); err != nil {
		t.Fatal(err)
	}

	ok := store.Login(context.Background(), "john", "wrong")
	if ok {
		t.Fatal("expected login to fail")
	}
	if store.Authenticated() {
		t.Error("expected unauthenticated state after failure")
	}
	if creds.Token() != "old-token" {
		t.Errorf("expected stored token untouched on failure, got %q", creds.Token())
	}
	if store.Loading() {
		t.Error("expected loading to be reset after failure")
	}
	if len(notifier.errors) != 1 {
		t.Fatalf("expected exactly one error notification, got %d", len(notifier.errors))
	}
	if notifier.errors[0] != "bad credentials" {
		t.Errorf("expected server message in notification, got %q", notifier.errors[0])
	}
}

func TestLogin_TransportFailureNotifiesOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	store, _, notifier := newTestStore(t, url)

	if ok := store.Login(context.Background(), "john", "pw"); ok {
		t.Fatal("expected login to fail on transport error")
	}
	if len(notifier.errors) != 1 {
		t.Errorf("expected exactly one error notification, got %d", len(notifier.errors))
	}
}

func TestLogout_Idempotent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.LoginResponse{Token: "abc", Username: "john"})
	}))
	defer server.Close()

	store, creds, _ := newTestStore(t, server.URL)
	store.Login(context.Background(), "john", "pw")

	store.Logout()
	if store.Authenticated() {
		t.Error("expected unauthenticated state after logout")
	}
	if creds.Token() != "" {
		t.Error("expected token cleared after logout")
	}
	if store.CurrentUser() != nil {
		t.Error("expected no current user after logout")
	}

	// Second logout must land in the same final state
	store.Logout()
	if store.Authenticated() || creds.Token() != "" || store.CurrentUser() != nil {
		t.Error("expected logout to be idempotent")
	}
}

// blockingAuth is an authenticator double that parks every call until released
type blockingAuth struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (b *blockingAuth) Login(ctx context.Context, username, password string) (*client.LoginResponse, error) {
	b.calls.Add(1)
	b.entered <- struct{}{}
	<-b.release
	return &client.LoginResponse{Token: "abc", Username: "john"}, nil
}

func TestLogin_OverlappingCallsShareOneRoundTrip(t *testing.T) {
	auth := &blockingAuth{
		entered: make(chan struct{}, 2),
		release: make(chan struct{}),
	}
	store := NewStore(auth, NewTokenFile(t.TempDir()), &recordingNotifier{})

	var wg sync.WaitGroup
	results := make([]bool, 2)

	// First caller reaches the backend and blocks there
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = store.Login(context.Background(), "john", "pw")
	}()
	<-auth.entered

	// Second caller joins the in-flight attempt while the first is parked
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1] = store.Login(context.Background(), "john", "pw")
	}()
	for store.Loading() == false {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(10 * time.Millisecond)

	close(auth.release)
	wg.Wait()

	if auth.calls.Load() != 1 {
		t.Errorf("expected one backend round-trip, got %d", auth.calls.Load())
	}
	if !results[0] || !results[1] {
		t.Error("expected both callers to observe the shared success")
	}
}

func TestRestore_PicksUpPersistedSession(t *testing.T) {
	creds := NewTokenFile(t.TempDir())
	if err := creds.Save("abc", "john"); err != nil {
		t.Fatal(err)
	}

	store := NewStore(nil, creds, &recordingNotifier{})
	store.Restore()

	if !store.Authenticated() {
		t.Error("expected restored session to be authenticated")
	}
	if user := store.CurrentUser(); user == nil || user.Username != "john" {
		t.Errorf("expected restored user john, got %+v", user)
	}
}

func TestRestore_NoopWithoutToken(t *testing.T) {
	store := NewStore(nil, NewTokenFile(t.TempDir()), &recordingNotifier{})
	store.Restore()

	if store.Authenticated() {
		t.Error("expected no session without a stored token")
	}
}
