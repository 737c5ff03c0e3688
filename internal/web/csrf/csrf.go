// Package csrf manages per-session tokens for state changing requests.
//
// Every token belongs to an intention, e.g. "delete-role", so a token rendered for
// one form can not be replayed against another one.
package csrf

import (
	"crypto/subtle"

	"github.com/dchest/uniuri"
	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"

	"github.com/roleadmin/roleadmin/internal/config"
	"github.com/roleadmin/roleadmin/internal/web/session"
)

// TokenLength of generated tokens.
const TokenLength = 32

// Result of a token check.
type Result int

const (
	// Valid token posted.
	Valid Result = iota
	// Invalid token posted.
	Invalid
	// Missing token field.
	Missing
)

func (r Result) String() string {
	switch r {
	case Valid:
		return "valid"
	case Missing:
		return "missing"
	default:
		return "invalid"
	}
}

// Manager issues and checks tokens.
type Manager struct {
	fieldName    string
	allowMissing bool
}

// NewManager creates a Manager from the CSRF configuration.
func NewManager(cfg config.CSRF) *Manager {
	field := cfg.FieldName
	if field == "" {
		field = config.DefaultCSRFFieldName
	}

	return &Manager{
		fieldName:    field,
		allowMissing: cfg.AllowsMissingToken(),
	}
}

// FieldName is the form field carrying the token.
func (m *Manager) FieldName() string {
	return m.fieldName
}

// ID builds the intention of action on entity, e.g. ID("delete", "Role") is "delete-role".
func ID(action, entity string) string {
	return action + "-" + slug.Make(entity)
}

// Token returns the token of id for the session of the request, creating it on first use.
func (m *Manager) Token(c *fiber.Ctx, id string) (string, error) {
	data, sessionID, err := session.FromCtx(c)
	if err != nil {
		return "", err
	}

	if token, ok := data.CSRFTokens[id]; ok {
		return token, nil
	}

	if data.CSRFTokens == nil {
		data.CSRFTokens = make(map[string]string)
	}

	token := uniuri.NewLen(TokenLength)
	data.CSRFTokens[id] = token

	if err := data.Write(sessionID); err != nil {
		return "", err
	}

	return token, nil
}

// Check compares the posted token with the one stored for id.
func (m *Manager) Check(c *fiber.Ctx, id string) Result {
	posted, ok := postedValue(c, m.fieldName)
	if !ok {
		return Missing
	}

	data, _, err := session.FromCtx(c)
	if err != nil {
		return Invalid
	}

	stored, ok := data.CSRFTokens[id]
	if !ok || posted == "" {
		return Invalid
	}

	if subtle.ConstantTimeCompare([]byte(posted), []byte(stored)) != 1 {
		return Invalid
	}

	return Valid
}

// IsValid reports whether the request may proceed. A missing token passes only
// while the legacy mode is enabled.
func (m *Manager) IsValid(c *fiber.Ctx, id string) bool {
	switch m.Check(c, id) {
	case Valid:
		return true
	case Missing:
		if m.allowMissing {
			return AcceptMissing(c, id)
		}

		return false
	default:
		return false
	}
}

func postedValue(c *fiber.Ctx, field string) (string, bool) {
	args := c.Request().PostArgs()
	if args.Has(field) {
		return string(args.Peek(field)), true
	}

	if form, err := c.MultipartForm(); err == nil {
		if values, ok := form.Value[field]; ok && len(values) > 0 {
			return values[0], true
		}
	}

	return "", false
}
