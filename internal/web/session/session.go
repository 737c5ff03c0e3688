// Package session keeps the server side session data in a fiber storage backend.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// CookieName is the cookie carrying the session id.
const CookieName = "session"

var (
	// Store is the global session store instance.
	Store *session.Store

	secureCookie bool

	// ErrNoSession is returned when the request carries no usable session.
	ErrNoSession = errors.New("no session")
)

// User is the part of the account kept in the session.
type User struct {
	ID       uint64
	Username string
	RoleID   uint
}

// Flash is a one-shot notification.
type Flash struct {
	Type    string
	Message string
}

// Data represents the session data structure.
type Data struct {
	User       User
	Flashes    []Flash           `json:",omitempty"`
	CSRFTokens map[string]string `json:",omitempty"`
}

// Write writes the session data for the given session ID.
func (s *Data) Write(sessionID string) error {
	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, Store.Expiration)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	if sessionID == "" {
		return ErrNoSession
	}

	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	// storages return nil for unknown or expired keys
	if byteData == nil {
		return ErrNoSession
	}

	return json.Unmarshal(byteData, s)
}

// Init initializes the session store. A nil storage selects fiber's in-memory storage.
// secure marks the cookie https only.
func Init(storage fiber.Storage, expiration time.Duration, secure bool) {
	secureCookie = secure
	Store = session.New(session.Config{
		Storage:        storage,
		Expiration:     expiration,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// FromCtx loads the session of the request.
func FromCtx(c *fiber.Ctx) (*Data, string, error) {
	sessionID := c.Cookies(CookieName)

	data := new(Data)
	if err := data.Read(sessionID); err != nil {
		return nil, sessionID, err
	}

	return data, sessionID, nil
}

// Start opens a new session for user and sets the cookie.
func Start(c *fiber.Ctx, user User) (*Data, error) {
	sessionID, err := GenerateSessionID()
	if err != nil {
		return nil, err
	}

	data := &Data{User: user}
	if err := data.Write(sessionID); err != nil {
		return nil, err
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(Store.Expiration),
		HTTPOnly: true,
		Secure:   secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return data, nil
}

// Destroy removes the stored session and expires the cookie.
func Destroy(c *fiber.Ctx) error {
	if sessionID := c.Cookies(CookieName); sessionID != "" {
		if err := Store.Storage.Delete(sessionID); err != nil {
			return err
		}
	}

	c.ClearCookie(CookieName)

	return nil
}
