package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ramdanolii14/nyantube-sub000/internal/api/dto"
	"github.com/ramdanolii14/nyantube-sub000/internal/config"
	"github.com/ramdanolii14/nyantube-sub000/internal/model"
	"github.com/ramdanolii14/nyantube-sub000/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(env *testEnv, captcha CaptchaVerifier) *AuthService {
	return NewAuthService(env.userRepo, env.ipRepo, captcha)
}

func registerReq(n int) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:        fmt.Sprintf("user%d@example.com", n),
		Username:     fmt.Sprintf("user%d", n),
		DisplayName:  fmt.Sprintf("User %d", n),
		Password:     "hunter2hunter2",
		CaptchaToken: "token",
	}
}

func testJWTConfig() {
	config.Set(&config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
	})
}

func TestRegisterIPQuota(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env, &fakeCaptcha{})
	ctx := context.Background()

	// Two registrations from one address pass.
	_, err := svc.Register(ctx, registerReq(1), "10.0.0.1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, registerReq(2), "10.0.0.1")
	require.NoError(t, err)

	// The third is refused.
	_, err = svc.Register(ctx, registerReq(3), "10.0.0.1")
	assert.ErrorIs(t, err, ErrRegistrationQuota)

	// A different address is unaffected.
	_, err = svc.Register(ctx, registerReq(3), "10.0.0.2")
	assert.NoError(t, err)
}

func TestRegisterQuotaNotConsumedOnFailure(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env, &fakeCaptcha{})
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq(1), "10.0.0.1")
	require.NoError(t, err)

	// A duplicate-username attempt fails before the quota row is written.
	dup := registerReq(2)
	dup.Username = "user1"
	_, err = svc.Register(ctx, dup, "10.0.0.1")
	assert.ErrorIs(t, err, ErrUsernameExists)

	// Two more successful registrations still fit.
	_, err = svc.Register(ctx, registerReq(3), "10.0.0.1")
	assert.NoError(t, err)
	_, err = svc.Register(ctx, registerReq(4), "10.0.0.1")
	assert.ErrorIs(t, err, ErrRegistrationQuota)
}

func TestRegisterCaptchaRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env, &fakeCaptcha{err: fmt.Errorf("low score")})

	_, err := svc.Register(context.Background(), registerReq(1), "10.0.0.1")
	assert.ErrorIs(t, err, ErrCaptchaRejected)

	// Nothing was written.
	count, err2 := env.ipRepo.CountSince("10.0.0.1", quotaWindowStart(time.Now()))
	require.NoError(t, err2)
	assert.Equal(t, int64(0), count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env, &fakeCaptcha{})
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq(1), "10.0.0.1")
	require.NoError(t, err)

	dup := registerReq(2)
	dup.Email = "user1@example.com"
	_, err = svc.Register(ctx, dup, "10.0.0.2")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLoginFlow(t *testing.T) {
	testJWTConfig()
	env := newTestEnv(t)
	svc := newAuthService(env, &fakeCaptcha{})

	info, err := svc.Register(context.Background(), registerReq(1), "10.0.0.1")
	require.NoError(t, err)

	tokenData, err := svc.Login(&dto.LoginRequest{Username: "user1", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokenData.Token)
	assert.Equal(t, info.ID, tokenData.User.ID)

	claims, err := utils.ParseToken(tokenData.Token)
	require.NoError(t, err)
	assert.Equal(t, info.ID, claims.UserID)

	_, err = svc.Login(&dto.LoginRequest{Username: "user1", Password: "wrongwrong"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.Login(&dto.LoginRequest{Username: "nobody", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestBannedAccountCannotLogin(t *testing.T) {
	testJWTConfig()
	env := newTestEnv(t)
	svc := newAuthService(env, &fakeCaptcha{})

	info, err := svc.Register(context.Background(), registerReq(1), "10.0.0.1")
	require.NoError(t, err)

	_, err = env.userRepo.Update(info.ID, map[string]interface{}{
		"user_name": model.BannedHandle,
		"is_banned": true,
	})
	require.NoError(t, err)

	// The original handle no longer resolves, and the sentinel row is refused.
	_, err = svc.Login(&dto.LoginRequest{Username: "user1", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
	_, err = svc.Login(&dto.LoginRequest{Username: model.BannedHandle, Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestHandleFreedAfterBan(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env, &fakeCaptcha{})
	ctx := context.Background()

	info, err := svc.Register(ctx, registerReq(1), "10.0.0.1")
	require.NoError(t, err)

	_, err = env.userRepo.Update(info.ID, map[string]interface{}{
		"user_name": model.BannedHandle,
		"is_banned": true,
	})
	require.NoError(t, err)

	// The freed handle is registrable again from another address.
	again := registerReq(5)
	again.Username = "user1"
	_, err = svc.Register(ctx, again, "10.0.0.9")
	assert.NoError(t, err)
}

func TestUpdatePassword(t *testing.T) {
	testJWTConfig()
	env := newTestEnv(t)
	svc := newAuthService(env, &fakeCaptcha{})

	info, err := svc.Register(context.Background(), registerReq(1), "10.0.0.1")
	require.NoError(t, err)

	err = svc.UpdatePassword(info.ID, &dto.UpdatePasswordRequest{
		OldPassword: "wrongwrong", NewPassword: "newpassword",
	})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	err = svc.UpdatePassword(info.ID, &dto.UpdatePasswordRequest{
		OldPassword: "hunter2hunter2", NewPassword: "newpassword",
	})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Username: "user1", Password: "newpassword"})
	assert.NoError(t, err)
}
