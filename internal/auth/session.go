package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/blessing250/Membership/internal/errors"
	"github.com/blessing250/Membership/internal/model"
)

// Session is the authenticated context for one member, derived from verified
// token claims. It is passed explicitly into every guarded service call; there
// is no package-level current user.
type Session struct {
	MemberID uuid.UUID
	Email    string
	Role     model.Role
	IssuedAt time.Time
}

// NewSessionFromClaims builds a Session from verified JWT claims.
func NewSessionFromClaims(claims *Claims) (*Session, error) {
	memberID, err := uuid.Parse(claims.MemberID)
	if err != nil {
		return nil, errors.ErrUnauthenticated
	}
	s := &Session{
		MemberID: memberID,
		Email:    claims.Email,
		Role:     model.Role(claims.Role),
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	return s, nil
}

// HasRole reports whether the session carries the given role.
func (s *Session) HasRole(role model.Role) bool {
	return s != nil && s.Role == role
}

// IsAdmin reports whether the session belongs to an admin.
func (s *Session) IsAdmin() bool {
	return s.HasRole(model.RoleAdmin)
}

// Authorize gates an operation on the session's role. A nil session fails
// with ErrUnauthenticated, a role mismatch with ErrForbidden; these are
// distinct so callers can tell a missing login from a denied one. With no
// required roles any authenticated session passes. Stateless: pure function
// of (session, roles), safe to call before every mutation.
func Authorize(s *Session, roles ...model.Role) (*Session, error) {
	if s == nil {
		return nil, errors.ErrUnauthenticated
	}
	if len(roles) == 0 {
		return s, nil
	}
	for _, role := range roles {
		if s.Role == role {
			return s, nil
		}
	}
	return nil, errors.ErrForbidden
}

const sessionContextKey = "membership.session"

// SetSession attaches a session to the echo request context.
func SetSession(c echo.Context, s *Session) {
	c.Set(sessionContextKey, s)
}

// SessionFromContext returns the session attached to the request, or nil.
func SessionFromContext(c echo.Context) *Session {
	s, _ := c.Get(sessionContextKey).(*Session)
	return s
}
