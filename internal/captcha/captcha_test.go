package captcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ramdanolii14/nyantube-sub000/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T, handler http.HandlerFunc) *Verifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewVerifier(&config.CaptchaConfig{
		VerifyURL: srv.URL,
		Secret:    "test-secret",
		MinScore:  0.5,
		Timeout:   2,
	})
}

func TestVerifyAccepts(t *testing.T) {
	var gotToken, gotIP, gotSecret string
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotToken = r.FormValue("response")
		gotIP = r.FormValue("remoteip")
		gotSecret = r.FormValue("secret")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"score":   0.9,
		})
	})

	err := v.Verify(context.Background(), "tok-123", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", gotToken)
	assert.Equal(t, "10.0.0.1", gotIP)
	assert.Equal(t, "test-secret", gotSecret)
}

func TestVerifyRejectsFailure(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success":     false,
			"error-codes": []string{"invalid-input-response"},
		})
	})

	err := v.Verify(context.Background(), "bad", "")
	assert.ErrorIs(t, err, ErrCaptchaFailed)
}

func TestVerifyRejectsLowScore(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"score":   0.2,
		})
	})

	err := v.Verify(context.Background(), "suspicious", "")
	assert.ErrorIs(t, err, ErrCaptchaFailed)
}

func TestVerifyEndpointError(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := v.Verify(context.Background(), "tok", "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCaptchaFailed)
}
