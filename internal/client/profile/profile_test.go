package profile

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

var testKey = []byte(strings.Repeat("k", MinKeyLen))

func newCache(t *testing.T, store Storage) *Cache {
	t.Helper()
	c, err := NewCache(store, testKey, zap.NewNop())
	if err != nil {
		t.Fatalf("NewCache failed: %v", err)
	}
	return c
}

type failingStorage struct{ err error }

func (f failingStorage) Get(string) (string, bool, error) { return "", false, f.err }
func (f failingStorage) Set(string, string) error         { return f.err }
func (f failingStorage) Remove(string) error              { return f.err }

func TestNewCache_WeakKey(t *testing.T) {
	if _, err := NewCache(&MemoryStorage{}, []byte("short"), nil); !errors.Is(err, ErrWeakKey) {
		t.Errorf("expected ErrWeakKey, got %v", err)
	}
}

func TestCache_SetAndHydrate(t *testing.T) {
	store := &MemoryStorage{}
	c := newCache(t, store)
	if err := c.Hydrate(); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}

	if err := c.Set(Profile{FirstName: " Tiger ", LastName: "Paw", Email: "tpaw@clemson.edu"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	raw, ok, _ := store.Get(StorageKey)
	if !ok || strings.Contains(raw, "Tiger") {
		t.Errorf("expected an encoded value, got %q", raw)
	}

	// a fresh cache over the same storage sees the profile
	other := newCache(t, store)
	if err := other.Hydrate(); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	got := other.Profile()
	if got.FirstName != "Tiger" || got.LastName != "Paw" || got.Email != "tpaw@clemson.edu" {
		t.Errorf("unexpected profile %+v", got)
	}
	if !other.LoggedIn() || other.DisplayName() != "Tiger Paw" {
		t.Errorf("LoggedIn=%v DisplayName=%q", other.LoggedIn(), other.DisplayName())
	}
}

func TestCache_HydrateMissing(t *testing.T) {
	c := newCache(t, &MemoryStorage{})
	if c.Hydrated() {
		t.Fatal("expected not hydrated before Hydrate")
	}
	if err := c.Hydrate(); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if !c.Hydrated() || c.LoggedIn() {
		t.Errorf("Hydrated=%v LoggedIn=%v", c.Hydrated(), c.LoggedIn())
	}
	if c.DisplayName() != DefaultDisplayName {
		t.Errorf("DisplayName = %q", c.DisplayName())
	}
}

func TestCache_HydrateMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain json", `{"firstName":"Tiger"}`},
		{"garbage", "not-a-cookie"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MemoryStorage{}
			_ = store.Set(StorageKey, tt.raw)

			core, logs := observer.New(zapcore.WarnLevel)
			c, _ := NewCache(store, testKey, zap.New(core))
			if err := c.Hydrate(); err != nil {
				t.Fatalf("Hydrate failed: %v", err)
			}
			if !c.Hydrated() || c.LoggedIn() {
				t.Errorf("Hydrated=%v LoggedIn=%v", c.Hydrated(), c.LoggedIn())
			}
			if logs.Len() == 0 {
				t.Error("expected a log entry for the malformed value")
			}
		})
	}
}

func TestCache_HydrateRejectsOtherKey(t *testing.T) {
	store := &MemoryStorage{}
	signer := newCache(t, store)
	_ = signer.Set(Profile{FirstName: "Tiger"})

	other, _ := NewCache(store, []byte(strings.Repeat("x", MinKeyLen)), zap.NewNop())
	_ = other.Hydrate()
	if other.LoggedIn() {
		t.Error("a value signed with another key must read as logged out")
	}
}

func TestCache_HydrateOnce(t *testing.T) {
	store := &MemoryStorage{}
	c := newCache(t, store)
	_ = c.Hydrate()

	writer := newCache(t, store)
	_ = writer.Set(Profile{FirstName: "Late"})

	_ = c.Hydrate()
	if c.LoggedIn() {
		t.Error("second Hydrate must not reload storage")
	}
}

func TestCache_HydrateStorageError(t *testing.T) {
	boom := errors.New("disk gone")
	c := newCache(t, failingStorage{err: boom})
	if err := c.Hydrate(); !errors.Is(err, boom) {
		t.Errorf("expected storage error, got %v", err)
	}
	if !c.Hydrated() {
		t.Error("expected hydrated after a failed read")
	}
}

func TestCache_SetEmptyRemoves(t *testing.T) {
	store := &MemoryStorage{}
	c := newCache(t, store)
	_ = c.Set(Profile{FirstName: "Tiger"})

	if err := c.Set(Profile{FirstName: "  "}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok, _ := store.Get(StorageKey); ok {
		t.Error("expected the stored value to be removed")
	}
	if c.LoggedIn() {
		t.Error("expected logged out")
	}
}

func TestCache_SetStorageErrorKeepsState(t *testing.T) {
	c := newCache(t, failingStorage{err: errors.New("full")})
	if err := c.Set(Profile{FirstName: "Tiger"}); err == nil {
		t.Fatal("expected an error")
	}
	if c.LoggedIn() {
		t.Error("failed Set must not change the cached profile")
	}
}

func TestCache_Logout(t *testing.T) {
	store := &MemoryStorage{}
	c := newCache(t, store)
	_ = c.Hydrate()
	_ = c.Set(Profile{FirstName: "Tiger", LastName: "Paw", Email: "tpaw@clemson.edu"})

	if err := c.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if c.LoggedIn() || c.DisplayName() != DefaultDisplayName {
		t.Errorf("LoggedIn=%v DisplayName=%q", c.LoggedIn(), c.DisplayName())
	}
	if _, ok, _ := store.Get(StorageKey); ok {
		t.Error("expected the stored value to be removed")
	}
	if !c.Hydrated() {
		t.Error("Logout must not reset hydration")
	}
}

func TestCache_DisplayName(t *testing.T) {
	tests := []struct {
		first, last string
		want        string
	}{
		{"Tiger", "Paw", "Tiger Paw"},
		{"Tiger", "", "Tiger"},
		{"", "Paw", "Paw"},
		{"", "", DefaultDisplayName},
	}
	for _, tt := range tests {
		c := newCache(t, &MemoryStorage{})
		_ = c.Set(Profile{FirstName: tt.first, LastName: tt.last})
		if got := c.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestRoute(t *testing.T) {
	c := newCache(t, &MemoryStorage{})
	if got := Route(c); got != RouteLoading {
		t.Errorf("before hydrate: %s", got)
	}
	_ = c.Hydrate()
	if got := Route(c); got != RouteLogin {
		t.Errorf("logged out: %s", got)
	}
	_ = c.Set(Profile{Email: "tpaw@clemson.edu"})
	if got := Route(c); got != RouteMain {
		t.Errorf("logged in: %s", got)
	}
	_ = c.Logout()
	if got := Route(c); got != RouteLogin {
		t.Errorf("after logout: %s", got)
	}
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name              string
		first, last, mail string
		wantMsg           string
	}{
		{"ok", "Tiger", "Paw", "tpaw@clemson.edu", ""},
		{"ok upper and spaces", " Tiger ", " Paw ", " TPaw@Clemson.EDU ", ""},
		{"missing first", " ", "Paw", "tpaw@clemson.edu", MsgFirstNameRequired},
		{"missing last", "Tiger", "", "tpaw@clemson.edu", MsgLastNameRequired},
		{"missing email", "Tiger", "Paw", "  ", MsgEmailRequired},
		{"other domain", "Tiger", "Paw", "tpaw@gmail.com", MsgEmailNotClemson},
		{"subdomain", "Tiger", "Paw", "tpaw@cs.clemson.edu", MsgEmailNotClemson},
		{"bad local part", "Tiger", "Paw", "t paw@clemson.edu", MsgEmailNotClemson},
		{"first checked first", "", "", "", MsgFirstNameRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ValidateLogin(tt.first, tt.last, tt.mail)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if p.FirstName != "Tiger" || p.LastName != "Paw" || p.Email != "tpaw@clemson.edu" {
					t.Errorf("unexpected profile %+v", p)
				}
				return
			}
			var fe *FormError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormError, got %v", err)
			}
			if fe.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", fe.Message, tt.wantMsg)
			}
		})
	}
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profile.json")
	fs := NewFileStorage(path)

	if _, ok, err := fs.Get("missing"); ok || err != nil {
		t.Fatalf("Get on missing file: ok=%v err=%v", ok, err)
	}
	if err := fs.Set("a", "1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := fs.Set("b", "2"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reopened := NewFileStorage(path)
	if v, ok, _ := reopened.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v", v, ok)
	}
	if err := reopened.Remove("a"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok, _ := fs.Get("a"); ok {
		t.Error("expected a to be removed")
	}
	if v, _, _ := fs.Get("b"); v != "2" {
		t.Errorf("Get(b) = %q", v)
	}
	if err := fs.Remove("never-set"); err != nil {
		t.Errorf("Remove of missing key: %v", err)
	}
}

func TestFileStorage_WithCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	c := newCache(t, NewFileStorage(path))
	_ = c.Hydrate()
	if err := c.Set(Profile{FirstName: "Tiger", LastName: "Paw"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	again := newCache(t, NewFileStorage(path))
	_ = again.Hydrate()
	if again.DisplayName() != "Tiger Paw" {
		t.Errorf("DisplayName = %q", again.DisplayName())
	}
}
