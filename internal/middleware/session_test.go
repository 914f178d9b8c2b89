package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sessionRequest(t *testing.T, guard gin.HandlerFunc, token string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/guarded", guard, func(c *gin.Context) {
		identity, _ := IdentityFromContext(c)
		c.String(http.StatusOK, identity.Email)
	})

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestSessionRoundTrip(t *testing.T) {
	identity := Identity{
		UserID:    "user-1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Role:      "customer",
	}

	token, err := IssueSession(identity, testSecret, time.Minute)
	require.NoError(t, err)

	parsed, err := ParseSession(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, identity, parsed)
}

func TestParseSessionRejectsWrongSecret(t *testing.T) {
	token, err := IssueSession(Identity{UserID: "user-1"}, testSecret, time.Minute)
	require.NoError(t, err)

	_, err = ParseSession(token, "other-secret")
	assert.Error(t, err)
}

func TestParseSessionRejectsExpired(t *testing.T) {
	token, err := IssueSession(Identity{UserID: "user-1"}, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseSession(token, testSecret)
	assert.Error(t, err)
}

func TestRequireLoginRedirectsWithoutSession(t *testing.T) {
	recorder := sessionRequest(t, RequireLogin(testSecret), "")

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/users/login", recorder.Header().Get("Location"))
}

func TestRequireLoginPassesValidSession(t *testing.T) {
	token, err := IssueSession(Identity{UserID: "user-1", Email: "ada@example.com", Role: "customer"}, testSecret, time.Minute)
	require.NoError(t, err)

	recorder := sessionRequest(t, RequireLogin(testSecret), token)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ada@example.com", recorder.Body.String())
}

func TestAdminOnlyRejectsCustomers(t *testing.T) {
	token, err := IssueSession(Identity{UserID: "user-1", Role: "customer"}, testSecret, time.Minute)
	require.NoError(t, err)

	recorder := sessionRequest(t, AdminOnly(testSecret), token)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "Access denied.", recorder.Body.String())
}

func TestAdminOnlyRejectsAnonymous(t *testing.T) {
	recorder := sessionRequest(t, AdminOnly(testSecret), "")

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestAdminOnlyPassesAdmins(t *testing.T) {
	token, err := IssueSession(Identity{UserID: "admin-1", Email: "admin@example.com", Role: "admin"}, testSecret, time.Minute)
	require.NoError(t, err)

	recorder := sessionRequest(t, AdminOnly(testSecret), token)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
