// internal/client/profile/profile.go
// Package profile caches the signed-in player's profile on the device and
// decides which screen the app should open on.
package profile

import (
	"errors"
	"strings"
	"sync"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

// StorageKey is the storage key holding the encoded profile.
const StorageKey = "cq:user-profile"

// MinKeyLen is the minimum HMAC key length accepted by NewCache.
const MinKeyLen = 32

// ErrWeakKey is returned by NewCache for short signing keys.
var ErrWeakKey = errors.New("profile: signing key must be at least 32 bytes")

// Profile is what the player entered on the login screen.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (p Profile) trimmed() Profile {
	return Profile{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Email:     strings.TrimSpace(p.Email),
	}
}

func (p Profile) empty() bool {
	return p.FirstName == "" && p.LastName == "" && p.Email == ""
}

// Cache holds the profile in memory and mirrors it into Storage.
type Cache struct {
	mu       sync.Mutex
	store    Storage
	codec    *securecookie.SecureCookie
	log      *zap.Logger
	profile  Profile
	hydrated bool
}

// NewCache returns a cache over store. Stored values are HMAC-signed with
// hashKey, so a blob edited outside the app reads as malformed.
func NewCache(store Storage, hashKey []byte, logger *zap.Logger) (*Cache, error) {
	if len(hashKey) < MinKeyLen {
		return nil, ErrWeakKey
	}
	if logger == nil {
		logger = zap.L()
	}
	codec := securecookie.New(hashKey, nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(0) // the profile lives until logout
	return &Cache{store: store, codec: codec, log: logger}, nil
}

// Hydrate loads the stored profile once. A missing or malformed value
// leaves the profile empty. The cache is marked hydrated even when the
// storage read fails; the error is returned.
func (c *Cache) Hydrate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hydrated {
		return nil
	}
	c.hydrated = true

	raw, ok, err := c.store.Get(StorageKey)
	if err != nil {
		c.log.Error("profile storage read failed", zap.Error(err))
		return err
	}
	if !ok || raw == "" {
		return nil
	}

	var p Profile
	if err := c.codec.Decode(StorageKey, raw, &p); err != nil {
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			c.log.Warn("stored profile invalid, starting logged out", zap.Error(err))
		} else {
			c.log.Error("stored profile unreadable, starting logged out", zap.Error(err))
		}
		return nil
	}
	c.profile = p.trimmed()
	return nil
}

// Hydrated reports whether Hydrate has run.
func (c *Cache) Hydrated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hydrated
}

// Profile returns the cached profile.
func (c *Cache) Profile() Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// Set persists p. An all-empty profile removes the stored value. The
// in-memory profile changes only after storage succeeds.
func (c *Cache) Set(p Profile) error {
	p = p.trimmed()

	c.mu.Lock()
	defer c.mu.Unlock()

	if p.empty() {
		if err := c.store.Remove(StorageKey); err != nil {
			return err
		}
		c.profile = Profile{}
		return nil
	}

	encoded, err := c.codec.Encode(StorageKey, p)
	if err != nil {
		return err
	}
	if err := c.store.Set(StorageKey, encoded); err != nil {
		return err
	}
	c.profile = p
	return nil
}

// Logout removes the stored profile and clears the cache.
func (c *Cache) Logout() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Remove(StorageKey); err != nil {
		return err
	}
	c.profile = Profile{}
	return nil
}

// LoggedIn reports whether any profile field is set.
func (c *Cache) LoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.profile.empty()
}

// DefaultDisplayName is shown when no name is cached.
const DefaultDisplayName = "Explorer"

// DisplayName is "first last", or DefaultDisplayName when both are empty.
func (c *Cache) DisplayName() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := strings.TrimSpace(c.profile.FirstName + " " + c.profile.LastName)
	if name == "" {
		return DefaultDisplayName
	}
	return name
}
