package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ramdanolii14/nyantube-sub000/internal/config"
)

// ErrCaptchaFailed is returned when the token is rejected or scores below the
// configured threshold.
var ErrCaptchaFailed = errors.New("captcha verification failed")

// Verifier checks client captcha tokens against the third-party endpoint.
type Verifier struct {
	verifyURL string
	secret    string
	minScore  float64
	client    *http.Client
}

// NewVerifier builds a Verifier from config. A min_score of 0 falls back to
// the 0.5 threshold.
func NewVerifier(cfg *config.CaptchaConfig) *Verifier {
	minScore := cfg.MinScore
	if minScore == 0 {
		minScore = 0.5
	}
	return &Verifier{
		verifyURL: cfg.VerifyURL,
		secret:    cfg.Secret,
		minScore:  minScore,
		client:    &http.Client{Timeout: cfg.TimeoutDuration()},
	}
}

type verifyResponse struct {
	Success bool     `json:"success"`
	Score   float64  `json:"score"`
	Errors  []string `json:"error-codes"`
}

// Verify posts the token and remote IP to the verification endpoint. Tokens
// that fail, or that score below the threshold, return ErrCaptchaFailed.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) error {
	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("captcha verify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("captcha verify endpoint returned %d", resp.StatusCode)
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode captcha response: %w", err)
	}

	if !body.Success || body.Score < v.minScore {
		return ErrCaptchaFailed
	}

	return nil
}
