package spotify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"golang.org/x/oauth2"
)

func newTokenServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		id, secret, ok := r.BasicAuth()
		if !ok || id != "client-id" || secret != "client-secret" {
			t.Errorf("basic auth = %q/%q (ok=%v), want client-id/client-secret", id, secret, ok)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "client_credentials" {
			t.Errorf("grant_type = %q, want client_credentials", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestAuthenticate(t *testing.T) {
	server, calls := newTokenServer(t, http.StatusOK,
		`{"access_token":"abc123","token_type":"bearer","expires_in":3600}`)

	client := NewClient(
		Config{ClientID: "client-id", ClientSecret: "client-secret"},
		WithTokenURL(server.URL),
		WithHTTPClient(server.Client()),
	)

	token, err := client.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if token.AccessToken != "abc123" {
		t.Errorf("AccessToken = %q, want abc123", token.AccessToken)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("token endpoint called %d times, want 1", got)
	}
}

func TestAuthenticateMissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"both empty", Config{}},
		{"missing secret", Config{ClientID: "client-id"}},
		{"missing id", Config{ClientSecret: "client-secret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
			}))
			defer server.Close()

			client := NewClient(tt.cfg, WithTokenURL(server.URL))

			_, err := client.Authenticate(context.Background())
			if !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("Authenticate() error = %v, want ErrMissingCredentials", err)
			}
			if calls.Load() != 0 {
				t.Error("token endpoint was called without credentials")
			}
		})
	}
}

func TestAuthenticateRejected(t *testing.T) {
	server, calls := newTokenServer(t, http.StatusBadRequest,
		`{"error":"invalid_client","error_description":"Invalid client"}`)

	client := NewClient(
		Config{ClientID: "client-id", ClientSecret: "client-secret"},
		WithTokenURL(server.URL),
		WithHTTPClient(server.Client()),
	)

	_, err := client.Authenticate(context.Background())
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("token endpoint called %d times, want 1 (no retry)", got)
	}
}

func TestAuthenticateServerError(t *testing.T) {
	server, _ := newTokenServer(t, http.StatusInternalServerError, `{"error":"server_error"}`)

	client := NewClient(
		Config{ClientID: "client-id", ClientSecret: "client-secret"},
		WithTokenURL(server.URL),
		WithHTTPClient(server.Client()),
	)

	_, err := client.Authenticate(context.Background())
	if err == nil {
		t.Fatal("Authenticate() error = nil, want error")
	}
	if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrMissingCredentials) {
		t.Errorf("Authenticate() error = %v, want a non-credential error", err)
	}
}

const searchBody = `{
  "tracks": {
    "href": "https://api.spotify.com/v1/search",
    "limit": 12,
    "total": 2,
    "items": [
      {
        "id": "t1",
        "name": "First",
        "uri": "spotify:track:t1",
        "duration_ms": 125000,
        "artists": [{"name": "A"}, {"name": "B"}],
        "album": {"name": "Album", "images": [{"url": "https://i.scdn.co/image/1", "height": 640, "width": 640}]}
      },
      {
        "id": "t2",
        "name": "Second",
        "duration_ms": 3000,
        "artists": [{"name": "C"}],
        "album": {"name": "Other", "images": []}
      }
    ]
  }
}`

func TestSearch(t *testing.T) {
	var gotQuery, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, searchBody)
	}))
	defer server.Close()

	client := NewClient(Config{}, WithBaseURL(server.URL+"/"), WithHTTPClient(server.Client()))
	token := &oauth2.Token{AccessToken: "abc123", TokenType: "Bearer"}

	tracks, err := client.Search(context.Background(), token, "happy%20Upbeat%20R%26B", 12)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotQuery != "q=happy%20Upbeat%20R%26B&type=track&limit=12" {
		t.Errorf("raw query = %q", gotQuery)
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("Authorization = %q, want Bearer abc123", gotAuth)
	}

	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	if tracks[0].ID != "t1" || tracks[1].ID != "t2" {
		t.Errorf("track order = %s, %s, want t1, t2", tracks[0].ID, tracks[1].ID)
	}
	if tracks[0].Name != "First" {
		t.Errorf("Name = %q, want First", tracks[0].Name)
	}
	if int(tracks[0].Duration) != 125000 {
		t.Errorf("Duration = %d, want 125000", int(tracks[0].Duration))
	}
	if len(tracks[0].Album.Images) != 1 {
		t.Errorf("got %d album images, want 1", len(tracks[0].Album.Images))
	}
}

func TestSearchNoTracksPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	client := NewClient(Config{}, WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	tracks, err := client.Search(context.Background(), &oauth2.Token{AccessToken: "x"}, "q", 12)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if tracks == nil || len(tracks) != 0 {
		t.Errorf("Search() = %v, want empty non-nil slice", tracks)
	}
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus bool
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"status":401}}`, true},
		{"server error", http.StatusBadGateway, ``, true},
		{"malformed payload", http.StatusOK, `{"tracks": [`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer server.Close()

			client := NewClient(Config{}, WithBaseURL(server.URL), WithHTTPClient(server.Client()))

			_, err := client.Search(context.Background(), &oauth2.Token{AccessToken: "x"}, "q", 12)
			if err == nil {
				t.Fatal("Search() error = nil, want error")
			}
			if got := errors.Is(err, ErrUnexpectedStatus); got != tt.wantStatus {
				t.Errorf("errors.Is(err, ErrUnexpectedStatus) = %v, want %v (err = %v)", got, tt.wantStatus, err)
			}
			if got := calls.Load(); got != 1 {
				t.Errorf("server called %d times, want 1", got)
			}
		})
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{ClientID: "id", ClientSecret: "secret"})

	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
	if client.tokenURL != "https://accounts.spotify.com/api/token" {
		t.Errorf("tokenURL = %q", client.tokenURL)
	}
	if client.httpClient == nil {
		t.Error("httpClient is nil")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{ClientID: "id", ClientSecret: "secret"}).Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
	if err := (Config{ClientID: "id"}).Validate(); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("Validate() error = %v, want ErrMissingCredentials", err)
	}
}
