package auth

import (
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"

	"socialhub/internal/common"
	"socialhub/internal/config"
	"socialhub/internal/dbmysql"
	"socialhub/internal/metrics"
)

const otpIssuer = "SocialHub"

var otpOpts = hotp.ValidateOpts{
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// OTPPolicy bounds how codes are issued and checked.
type OTPPolicy struct {
	Expiry         time.Duration
	ResendCooldown time.Duration
	MaxAttempts    int
}

func ProvideOTPPolicy(cfg *config.Config) OTPPolicy {
	return OTPPolicy{
		Expiry:         cfg.Auth.OTPExpiry,
		ResendCooldown: cfg.Auth.OTPResendCooldown,
		MaxAttempts:    cfg.Auth.MaxOTPAttempts,
	}
}

func DefaultOTPPolicy() OTPPolicy {
	return OTPPolicy{Expiry: 10 * time.Minute, ResendCooldown: time.Minute, MaxAttempts: 5}
}

// inCooldown reports whether a new code was requested too recently.
func (p OTPPolicy) inCooldown(state *dbmysql.OTPState, now time.Time) bool {
	return state.LastOTPRequest != nil && now.Sub(*state.LastOTPRequest) < p.ResendCooldown
}

// pending reports whether state holds an unexpired code for purpose.
func (p OTPPolicy) pending(state *dbmysql.OTPState, purpose common.OTPPurpose, now time.Time) bool {
	return state.OTPSecret != "" &&
		state.OTPPurpose == string(purpose) &&
		state.OTPExpiresAt != nil && now.Before(*state.OTPExpiresAt)
}

// issue stores a fresh secret on state and returns the 6-digit code derived from it.
func (p OTPPolicy) issue(state *dbmysql.OTPState, purpose common.OTPPurpose, account string, now time.Time) (string, error) {
	key, err := hotp.Generate(hotp.GenerateOpts{
		Issuer:      otpIssuer,
		AccountName: account,
		Digits:      otpOpts.Digits,
		Algorithm:   otpOpts.Algorithm,
	})
	if err != nil {
		return "", fmt.Errorf("generate otp secret: %w", err)
	}
	code, err := hotp.GenerateCodeCustom(key.Secret(), 0, otpOpts)
	if err != nil {
		return "", fmt.Errorf("generate otp code: %w", err)
	}

	expires := now.Add(p.Expiry)
	requested := now
	state.OTPSecret = key.Secret()
	state.OTPPurpose = string(purpose)
	state.OTPExpiresAt = &expires
	state.LastOTPRequest = &requested
	state.LoginAttempts = 0

	metrics.Get().OTPIssuedTotal.WithLabelValues(string(purpose)).Inc()
	return code, nil
}

// verify checks code against state. On success the code is consumed. A wrong
// code counts as an attempt and the code is dropped once MaxAttempts is reached.
// Callers must persist state whatever the outcome.
func (p OTPPolicy) verify(state *dbmysql.OTPState, purpose common.OTPPurpose, code string, now time.Time) error {
	if state.OTPSecret == "" || state.OTPPurpose != string(purpose) {
		return common.ErrOTPInvalid
	}
	if state.OTPExpiresAt == nil || !now.Before(*state.OTPExpiresAt) {
		state.ClearOTP()
		return common.ErrOTPInvalid
	}

	ok, err := hotp.ValidateCustom(code, 0, state.OTPSecret, otpOpts)
	if err != nil || !ok {
		state.LoginAttempts++
		if state.LoginAttempts >= p.MaxAttempts {
			state.ClearOTP()
		}
		return common.ErrOTPInvalid
	}

	state.ClearOTP()
	return nil
}
