package auth_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lodgepole/gatehouse/internal/auth/store"
)

// TestSessionLifecycle walks an account through signup, login, token
// verification, logout and the post-logout rejections.
func TestSessionLifecycle(t *testing.T) {
	ts := setupServer(t)

	ts.signup(t, "alice@example.com", false)

	resp := ts.post(t, "/login", map[string]any{
		"email":    "alice@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token := ts.sessionToken(t)
	require.NotEmpty(t, token)

	resp = ts.post(t, "/verify-token", map[string]any{"token": token})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.post(t, "/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, ts.sessionToken(t), "logout should clear the cookie")

	// The revoked token is refused even though it has not expired.
	resp = ts.post(t, "/verify-token", map[string]any{"token": token})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Without a cookie a second logout has nothing to present.
	resp = ts.post(t, "/logout", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestTwoFactorLifecycle walks the code exchange end to end, including a
// failed attempt before the successful one.
func TestTwoFactorLifecycle(t *testing.T) {
	ts := setupServer(t)

	ts.signup(t, "bob@example.com", true)

	resp := ts.post(t, "/login", map[string]any{
		"email":    "bob@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusPartialContent, resp.StatusCode)
	require.Empty(t, ts.sessionToken(t), "no session before the second factor")

	body := decode[struct {
		Message        string `json:"message"`
		LoginAttemptID string `json:"loginAttemptId"`
	}](t, resp)
	require.Equal(t, "2FA required", body.Message)
	require.NotEmpty(t, body.LoginAttemptID)

	code := ts.sender.codeFor("bob@example.com")
	require.NotEmpty(t, code)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}
	resp = ts.post(t, "/verify-2fa", map[string]any{
		"email":          "bob@example.com",
		"loginAttemptId": body.LoginAttemptID,
		"2FACode":        wrong,
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The wrong guess did not burn the challenge.
	resp = ts.post(t, "/verify-2fa", map[string]any{
		"email":          "bob@example.com",
		"loginAttemptId": body.LoginAttemptID,
		"2FACode":        code,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, ts.sessionToken(t))

	// But completing it did.
	resp = ts.post(t, "/verify-2fa", map[string]any{
		"email":          "bob@example.com",
		"loginAttemptId": body.LoginAttemptID,
		"2FACode":        code,
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// TestChallengeExpiry fast-forwards redis past the challenge TTL and
// checks the pending login can no longer complete.
func TestChallengeExpiry(t *testing.T) {
	ts := setupServer(t)

	ts.signup(t, "bob@example.com", true)

	resp := ts.post(t, "/login", map[string]any{
		"email":    "bob@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusPartialContent, resp.StatusCode)

	body := decode[struct {
		LoginAttemptID string `json:"loginAttemptId"`
	}](t, resp)
	code := ts.sender.codeFor("bob@example.com")

	ts.redis.FastForward(store.ChallengeTTL + time.Second)

	resp = ts.post(t, "/verify-2fa", map[string]any{
		"email":          "bob@example.com",
		"loginAttemptId": body.LoginAttemptID,
		"2FACode":        code,
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// TestDuplicateSignup covers the conflict path against the real database.
func TestDuplicateSignup(t *testing.T) {
	ts := setupServer(t)

	ts.signup(t, "alice@example.com", false)

	resp := ts.post(t, "/signup", map[string]any{
		"email":       "alice@example.com",
		"password":    testPassword,
		"requires2FA": true,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

// TestDeleteUser removes the account and checks follow-up logins fail.
func TestDeleteUser(t *testing.T) {
	ts := setupServer(t)

	ts.signup(t, "alice@example.com", false)

	resp := ts.request(t, http.MethodDelete, "/delete-user", map[string]any{"email": "alice@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.post(t, "/login", map[string]any{
		"email":    "alice@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = ts.request(t, http.MethodDelete, "/delete-user", map[string]any{"email": "alice@example.com"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestHealthEndpoints checks both probes against the live stack.
func TestHealthEndpoints(t *testing.T) {
	ts := setupServer(t)

	resp := ts.request(t, http.MethodGet, "/livez", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.request(t, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	health := decode[struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
		} `json:"checks"`
	}](t, resp)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "ok", health.Checks.Database)
}
