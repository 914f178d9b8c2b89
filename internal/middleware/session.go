package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session"

const identityKey = "identity"

// Identity is the session-attached user snapshot stored in the cookie at
// login time. It mirrors what routes need for rendering and authorization.
type Identity struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Role      string
}

func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}

// IssueSession signs an identity into a session token valid for ttl.
func IssueSession(identity Identity, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId":    identity.UserID,
		"firstName": identity.FirstName,
		"lastName":  identity.LastName,
		"email":     identity.Email,
		"role":      identity.Role,
		"exp":       time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSession validates a session token and recovers the identity.
func ParseSession(raw, secret string) (Identity, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errors.New("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid session claims")
	}

	userID, _ := claims["userId"].(string)
	if strings.TrimSpace(userID) == "" {
		return Identity{}, errors.New("userId claim missing")
	}

	firstName, _ := claims["firstName"].(string)
	lastName, _ := claims["lastName"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return Identity{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Role:      role,
	}, nil
}

// SetSessionCookie attaches the session token to the response.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", false, true)
}

// ClearSessionCookie removes the session token from the client.
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// AttachIdentity puts the session identity into the request context when a
// valid cookie is present, and does nothing otherwise. It never rejects.
func AttachIdentity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, err := identityFromCookie(c, secret); err == nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// RequireLogin redirects to the login page when no valid session is attached.
func RequireLogin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := identityFromCookie(c, secret)
		if err != nil {
			c.Redirect(http.StatusFound, "/users/login")
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// AdminOnly rejects the request unless the session identity carries the admin
// role. Missing sessions fail the same way, matching the admin surface.
func AdminOnly(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := identityFromCookie(c, secret)
		if err != nil || !identity.IsAdmin() {
			log.Println("[AUTH] [ERROR] admin access denied")
			c.String(http.StatusForbidden, "Access denied.")
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFromContext returns the identity stored by RequireLogin or AdminOnly.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}

func identityFromCookie(c *gin.Context, secret string) (Identity, error) {
	if value, ok := c.Get(identityKey); ok {
		if identity, ok := value.(Identity); ok {
			return identity, nil
		}
	}

	raw, err := c.Cookie(SessionCookie)
	if err != nil || strings.TrimSpace(raw) == "" {
		return Identity{}, errors.New("no session cookie")
	}

	return ParseSession(raw, secret)
}
