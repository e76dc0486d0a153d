package gotrue

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"dose-agil/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T, h http.HandlerFunc) *Verifier {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := NewClient(Config{BaseURL: ts.URL, APIKey: "anon-key"})
	require.NoError(t, err)
	return NewVerifier(c)
}

func TestVerify_ReturnsUser(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":"user-1","email":"ana@example.com","aud":"authenticated"}`))
	})

	c, err := v.Verify(context.Background(), " tok ")
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "user-1", Email: "ana@example.com"}, c)
}

func TestVerify_Unauthorized(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"msg":"invalid JWT"}`, http.StatusUnauthorized)
	})

	_, err := v.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = v.Verify(context.Background(), " ")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_UpstreamError(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := v.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.NotErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)
	assert.False(t, c.IsConfigured())

	_, err = NewVerifier(c).Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
