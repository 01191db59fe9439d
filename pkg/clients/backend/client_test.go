package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/config"
	"github.com/ntarasov/equiptrack/internal/domain/models"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(config.BackendConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, zap.NewNop())
	return c, srv
}

// writeJSON mirrors the backend: every body ships with a JSON content type.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginSendsFormAndStoresToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("expected form-encoded login, got %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if r.PostFormValue("username") != "operator" || r.PostFormValue("password") != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "tok-123", "token_type": "bearer"})
	})
	mux.HandleFunc("/api/devices/1", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("expected bearer header, got %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
		writeJSON(w, http.StatusOK, models.Device{ID: 1, SerialNumber: "SN1"})
	})

	c, _ := newTestClient(t, mux)

	if err := c.Login(context.Background(), "operator", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !c.Authenticated() {
		t.Fatal("expected client to hold a token after login")
	}

	if _, err := c.GetDevice(context.Background(), 1); err != nil {
		t.Fatalf("GetDevice: %v", err)
	}
}

func TestLoginFailureMapsToAuthError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"})
	})

	c, _ := newTestClient(t, mux)

	fired := false
	c.OnAuthExpired(func() { fired = true })

	err := c.Login(context.Background(), "operator", "wrong")
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
	if fired {
		t.Error("failed login must not fire the forced-logout callback")
	}
}

func TestUnauthorizedResponseExpiresToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/devices", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
	})

	c, _ := newTestClient(t, mux)
	if err := c.RestoreToken("stale-token"); err != nil {
		t.Fatalf("RestoreToken: %v", err)
	}

	fired := false
	c.OnAuthExpired(func() { fired = true })

	_, err := c.ListDevices(context.Background(), models.DeviceFilter{})
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
	if !fired {
		t.Error("expected forced-logout callback to fire on 401")
	}
	if c.Authenticated() {
		t.Error("expected token to be cleared after 401")
	}
}

func TestNotFoundKeepsDetail(t *testing.T) {
	mux := http.NewServeMux()
	// The client escapes the slash in the number, so register a prefix and
	// unescape the way the lookup round-trip test does.
	mux.HandleFunc("/api/devices/by-inventory/", func(w http.ResponseWriter, r *http.Request) {
		number := r.URL.Path[len("/api/devices/by-inventory/"):]
		writeJSON(w, http.StatusNotFound, map[string]string{
			"detail": "Device with inventory number " + number + " not found",
		})
	})

	c, _ := newTestClient(t, mux)

	_, err := c.GetDeviceByInventoryNumber(context.Background(), "WWP-02/0099")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatal("expected an *APIError in the chain")
	}
	if !strings.Contains(apiErr.Detail, "WWP-02/0099") {
		t.Errorf("expected backend detail to be preserved, got %q", apiErr.Detail)
	}
}

func TestCreateThenLookupByInventoryNumber(t *testing.T) {
	devices := map[string]models.Device{}
	nextID := int64(1)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/devices", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req models.DeviceCreate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		d := models.Device{
			ID:              nextID,
			SerialNumber:    req.SerialNumber,
			InventoryNumber: req.InventoryNumber,
			CreatedAt:       time.Now(),
		}
		nextID++
		devices[d.InventoryNumber] = d
		writeJSON(w, http.StatusCreated, d)
	})
	mux.HandleFunc("/api/devices/by-inventory/", func(w http.ResponseWriter, r *http.Request) {
		number := r.URL.Path[len("/api/devices/by-inventory/"):]
		d, ok := devices[number]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Device not found"})
			return
		}
		writeJSON(w, http.StatusOK, d)
	})

	c, _ := newTestClient(t, mux)

	created, err := c.CreateDevice(context.Background(), models.DeviceCreate{
		SerialNumber:    "SN-42",
		InventoryNumber: "ACME-01/0001",
	})
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}

	found, err := c.GetDeviceByInventoryNumber(context.Background(), "ACME-01/0001")
	if err != nil {
		t.Fatalf("GetDeviceByInventoryNumber: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("round-trip identifier mismatch: created %d, fetched %d", created.ID, found.ID)
	}
}

func TestTransportFailureMapsToNetworkError(t *testing.T) {
	c := New(config.BackendConfig{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}, zap.NewNop())

	_, err := c.Ping(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestRestoreExpiredTokenRejected(t *testing.T) {
	// HS256 token with exp in the past; signature is irrelevant for the
	// unverified parse.
	expired := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiJvcGVyYXRvciIsImV4cCI6MTAwMDAwMDAwMH0." +
		"invalid-signature"

	c := New(config.BackendConfig{BaseURL: "http://localhost:8000", Timeout: time.Second}, zap.NewNop())

	err := c.RestoreToken(expired)
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("expected ErrAuth for expired token, got %v", err)
	}
	if c.Authenticated() {
		t.Error("expired token must not be installed")
	}
}
