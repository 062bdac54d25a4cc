package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
	"socialhub/internal/logger"
)

// TokenIssuer signs and parses session tokens.
type TokenIssuer interface {
	GenerateToken(principalID uint64, kind common.PrincipalKind, level common.ModLevel) (string, error)
	ValidToken(token string) (*common.Claims, error)
}

// AuthResult is the outcome of a login step. Token is empty when OTPRequired is set.
type AuthResult struct {
	Token       string               `json:"token,omitempty"`
	OTPRequired bool                 `json:"otp_required"`
	Kind        common.PrincipalKind `json:"kind"`
	PrincipalID uint64               `json:"principal_id,omitempty"`
	Username    string               `json:"username,omitempty"`
	ModLevel    common.ModLevel      `json:"mod_level,omitempty"`
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*dbmysql.User, error)
	VerifyRegistration(ctx context.Context, email, code string) (*AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
	ModeratorLogin(ctx context.Context, email, password string) (*AuthResult, error)
	VerifyLoginOTP(ctx context.Context, email, code string) (*AuthResult, error)
	ResendLoginOTP(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	RequestPasswordChangeOTP(ctx context.Context, userID uint64) error
	ChangePassword(ctx context.Context, userID uint64, current, newPassword, code string) error
	SetOTPEnabled(ctx context.Context, userID uint64, enabled, confirm bool) error
	RequestEmailUpdate(ctx context.Context, userID uint64, newEmail string) error
	VerifyEmailUpdate(ctx context.Context, userID uint64, code string) error
	CreateModerator(ctx context.Context, username, email, password string, level common.ModLevel) (*dbmysql.Moderator, error)
	ParseToken(token string) (*common.Claims, error)
}

type authService struct {
	repo   AccountRepository
	tokens TokenIssuer
	mailer common.EmailService
	policy OTPPolicy
	now    func() time.Time
}

func NewAuthService(repo AccountRepository, tokens TokenIssuer, mailer common.EmailService, policy OTPPolicy) AuthService {
	return &authService{repo: repo, tokens: tokens, mailer: mailer, policy: policy, now: time.Now}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*dbmysql.User, error) {
	username = strings.TrimSpace(username)
	email = common.NormalizeEmail(email)

	if err := common.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := common.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, err
	}

	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: username already taken", common.ErrConflict)
	}
	inUse, err := s.repo.EmailInUse(ctx, email)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, fmt.Errorf("%w: email already registered", common.ErrConflict)
	}

	hashed, err := common.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &dbmysql.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Visibility:   common.VisibilityPublic,
	}
	code, err := s.policy.issue(&user.OTPState, common.OTPRegistration, email, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username or email already registered", common.ErrConflict)
		}
		return nil, err
	}

	s.sendCode(ctx, email, common.OTPRegistration, code)
	return user, nil
}

func (s *authService) VerifyRegistration(ctx context.Context, email, code string) (*AuthResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		return nil, notFoundAs(err, common.ErrOTPInvalid)
	}
	if user.EmailVerified {
		return nil, fmt.Errorf("%w: account already verified", common.ErrConflict)
	}

	verr := s.policy.verify(&user.OTPState, common.OTPRegistration, code, s.now())
	if verr == nil {
		user.EmailVerified = true
	}
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	if verr != nil {
		return nil, verr
	}
	return s.userSession(user)
}

func (s *authService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", common.ErrInvalidInput)
	}

	user, err := s.repo.GetUserByUsername(ctx, identifier)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.repo.GetUserByEmail(ctx, common.NormalizeEmail(identifier))
	}
	if err != nil {
		return nil, notFoundAs(err, invalidCredentials())
	}

	if err := common.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, invalidCredentials()
	}
	if !user.EmailVerified {
		return nil, common.ErrEmailNotVerified
	}
	now := s.now()
	if user.IsDisabled(now) {
		return nil, fmt.Errorf("%w until %s", common.ErrAccountDisabled, user.DisabledUntil.UTC().Format(time.RFC3339))
	}

	if !user.OTPEnabled {
		return s.userSession(user)
	}

	if !(s.policy.pending(&user.OTPState, common.OTPLogin, now) && s.policy.inCooldown(&user.OTPState, now)) {
		code, err := s.policy.issue(&user.OTPState, common.OTPLogin, user.Email, now)
		if err != nil {
			return nil, err
		}
		if err := s.repo.UpdateUser(ctx, user); err != nil {
			return nil, err
		}
		s.sendCode(ctx, user.Email, common.OTPLogin, code)
	}
	return &AuthResult{OTPRequired: true, Kind: common.KindUser}, nil
}

func (s *authService) ModeratorLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	mod, err := s.repo.GetModeratorByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		return nil, notFoundAs(err, invalidCredentials())
	}
	if err := common.CheckPassword(password, mod.PasswordHash); err != nil {
		return nil, invalidCredentials()
	}

	now := s.now()
	if !(s.policy.pending(&mod.OTPState, common.OTPLogin, now) && s.policy.inCooldown(&mod.OTPState, now)) {
		code, err := s.policy.issue(&mod.OTPState, common.OTPLogin, mod.Email, now)
		if err != nil {
			return nil, err
		}
		if err := s.repo.UpdateModerator(ctx, mod); err != nil {
			return nil, err
		}
		s.sendCode(ctx, mod.Email, common.OTPLogin, code)
	}
	return &AuthResult{OTPRequired: true, Kind: common.KindModerator}, nil
}

// VerifyLoginOTP completes a pending login. A user with an outstanding login
// code wins over a moderator sharing the same address.
func (s *authService) VerifyLoginOTP(ctx context.Context, email, code string) (*AuthResult, error) {
	email = common.NormalizeEmail(email)
	now := s.now()

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if user != nil && user.OTPPurpose == string(common.OTPLogin) {
		verr := s.policy.verify(&user.OTPState, common.OTPLogin, code, now)
		if err := s.repo.UpdateUser(ctx, user); err != nil {
			return nil, err
		}
		if verr != nil {
			return nil, verr
		}
		if user.IsDisabled(now) {
			return nil, common.ErrAccountDisabled
		}
		return s.userSession(user)
	}

	mod, err := s.repo.GetModeratorByEmail(ctx, email)
	if err != nil {
		return nil, notFoundAs(err, common.ErrOTPInvalid)
	}
	verr := s.policy.verify(&mod.OTPState, common.OTPLogin, code, now)
	if err := s.repo.UpdateModerator(ctx, mod); err != nil {
		return nil, err
	}
	if verr != nil {
		return nil, verr
	}

	token, err := s.tokens.GenerateToken(mod.ID, common.KindModerator, mod.Level)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:       token,
		Kind:        common.KindModerator,
		PrincipalID: mod.ID,
		Username:    mod.Username,
		ModLevel:    mod.Level,
	}, nil
}

// ResendLoginOTP reissues the outstanding login code, or the registration code
// for accounts that are not verified yet.
func (s *authService) ResendLoginOTP(ctx context.Context, email string) error {
	email = common.NormalizeEmail(email)
	now := s.now()

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if user != nil {
		purpose := common.OTPLogin
		if !user.EmailVerified {
			purpose = common.OTPRegistration
		} else if user.OTPPurpose != string(common.OTPLogin) {
			return fmt.Errorf("%w: no login in progress", common.ErrInvalidInput)
		}
		if s.policy.inCooldown(&user.OTPState, now) {
			return common.ErrOTPCooldown
		}
		code, err := s.policy.issue(&user.OTPState, purpose, email, now)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateUser(ctx, user); err != nil {
			return err
		}
		s.sendCode(ctx, email, purpose, code)
		return nil
	}

	mod, err := s.repo.GetModeratorByEmail(ctx, email)
	if err != nil {
		return notFoundAs(err, common.ErrNotFound)
	}
	if mod.OTPPurpose != string(common.OTPLogin) {
		return fmt.Errorf("%w: no login in progress", common.ErrInvalidInput)
	}
	if s.policy.inCooldown(&mod.OTPState, now) {
		return common.ErrOTPCooldown
	}
	code, err := s.policy.issue(&mod.OTPState, common.OTPLogin, email, now)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateModerator(ctx, mod); err != nil {
		return err
	}
	s.sendCode(ctx, email, common.OTPLogin, code)
	return nil
}

// ForgotPassword never reveals whether the address belongs to an account.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	email = common.NormalizeEmail(email)
	now := s.now()

	if user, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		if s.policy.inCooldown(&user.OTPState, now) {
			return nil
		}
		code, err := s.policy.issue(&user.OTPState, common.OTPPasswordReset, email, now)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateUser(ctx, user); err != nil {
			return err
		}
		s.sendCode(ctx, email, common.OTPPasswordReset, code)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if mod, err := s.repo.GetModeratorByEmail(ctx, email); err == nil {
		if s.policy.inCooldown(&mod.OTPState, now) {
			return nil
		}
		code, err := s.policy.issue(&mod.OTPState, common.OTPPasswordReset, email, now)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateModerator(ctx, mod); err != nil {
			return err
		}
		s.sendCode(ctx, email, common.OTPPasswordReset, code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := common.ValidatePassword(newPassword); err != nil {
		return err
	}
	email = common.NormalizeEmail(email)
	hashed, err := common.HashPassword(newPassword)
	if err != nil {
		return err
	}
	now := s.now()

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if user != nil && user.OTPPurpose == string(common.OTPPasswordReset) {
		verr := s.policy.verify(&user.OTPState, common.OTPPasswordReset, code, now)
		if verr == nil {
			user.PasswordHash = hashed
		}
		if err := s.repo.UpdateUser(ctx, user); err != nil {
			return err
		}
		return verr
	}

	mod, err := s.repo.GetModeratorByEmail(ctx, email)
	if err != nil {
		return notFoundAs(err, common.ErrOTPInvalid)
	}
	verr := s.policy.verify(&mod.OTPState, common.OTPPasswordReset, code, now)
	if verr == nil {
		mod.PasswordHash = hashed
	}
	if err := s.repo.UpdateModerator(ctx, mod); err != nil {
		return err
	}
	return verr
}

func (s *authService) RequestPasswordChangeOTP(ctx context.Context, userID uint64) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	now := s.now()
	if s.policy.inCooldown(&user.OTPState, now) {
		return common.ErrOTPCooldown
	}
	code, err := s.policy.issue(&user.OTPState, common.OTPPasswordChange, user.Email, now)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return err
	}
	s.sendCode(ctx, user.Email, common.OTPPasswordChange, code)
	return nil
}

// ChangePassword requires the current password, and a password_change code when
// the account has OTP enabled.
func (s *authService) ChangePassword(ctx context.Context, userID uint64, current, newPassword, code string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := common.CheckPassword(current, user.PasswordHash); err != nil {
		return fmt.Errorf("%w: current password is incorrect", common.ErrUnauthorized)
	}
	if err := common.ValidatePassword(newPassword); err != nil {
		return err
	}
	hashed, err := common.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if user.OTPEnabled {
		verr := s.policy.verify(&user.OTPState, common.OTPPasswordChange, code, s.now())
		if verr != nil {
			if err := s.repo.UpdateUser(ctx, user); err != nil {
				return err
			}
			return verr
		}
	}
	user.PasswordHash = hashed
	return s.repo.UpdateUser(ctx, user)
}

func (s *authService) SetOTPEnabled(ctx context.Context, userID uint64, enabled, confirm bool) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if !enabled && !confirm {
		return fmt.Errorf("%w: disabling OTP requires confirmation", common.ErrInvalidInput)
	}
	if user.OTPEnabled == enabled {
		return nil
	}
	user.OTPEnabled = enabled
	if !enabled {
		user.ClearOTP()
	}
	return s.repo.UpdateUser(ctx, user)
}

func (s *authService) RequestEmailUpdate(ctx context.Context, userID uint64, newEmail string) error {
	newEmail = common.NormalizeEmail(newEmail)
	if err := common.ValidateEmail(newEmail); err != nil {
		return err
	}
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if newEmail == user.Email {
		return fmt.Errorf("%w: that is already your email", common.ErrInvalidInput)
	}
	inUse, err := s.repo.EmailInUse(ctx, newEmail)
	if err != nil {
		return err
	}
	if inUse {
		return fmt.Errorf("%w: email already registered", common.ErrConflict)
	}

	now := s.now()
	if s.policy.inCooldown(&user.OTPState, now) {
		return common.ErrOTPCooldown
	}
	code, err := s.policy.issue(&user.OTPState, common.OTPEmailUpdate, newEmail, now)
	if err != nil {
		return err
	}
	user.PendingEmail = &newEmail
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return err
	}
	s.sendCode(ctx, newEmail, common.OTPEmailUpdate, code)
	return nil
}

func (s *authService) VerifyEmailUpdate(ctx context.Context, userID uint64, code string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.PendingEmail == nil {
		return fmt.Errorf("%w: no email change pending", common.ErrInvalidInput)
	}

	verr := s.policy.verify(&user.OTPState, common.OTPEmailUpdate, code, s.now())
	if verr == nil {
		user.Email = *user.PendingEmail
		user.PendingEmail = nil
	}
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: email already registered", common.ErrConflict)
		}
		return err
	}
	return verr
}

func (s *authService) CreateModerator(ctx context.Context, username, email, password string, level common.ModLevel) (*dbmysql.Moderator, error) {
	email = common.NormalizeEmail(email)
	if !level.IsValid() {
		return nil, fmt.Errorf("%w: moderator level must be 1 or 2", common.ErrInvalidInput)
	}
	if err := common.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := common.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetModeratorByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: moderator email already registered", common.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := common.HashPassword(password)
	if err != nil {
		return nil, err
	}
	mod := &dbmysql.Moderator{
		Level:        level,
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		OTPState:     dbmysql.OTPState{OTPEnabled: true},
	}
	if err := s.repo.CreateModerator(ctx, mod); err != nil {
		return nil, err
	}
	return mod, nil
}

func (s *authService) ParseToken(token string) (*common.Claims, error) {
	claims, err := s.tokens.ValidToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnauthorized, err)
	}
	return claims, nil
}

func (s *authService) getUser(ctx context.Context, userID uint64) (*dbmysql.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, common.ErrNotFound)
	}
	return user, nil
}

func (s *authService) userSession(user *dbmysql.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(user.ID, common.KindUser, 0)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:       token,
		Kind:        common.KindUser,
		PrincipalID: user.ID,
		Username:    user.Username,
	}, nil
}

func (s *authService) sendCode(ctx context.Context, to string, purpose common.OTPPurpose, code string) {
	subject, body := otpMessage(purpose, code, int(s.policy.Expiry/time.Minute))
	if err := s.mailer.SendEmail(ctx, to, subject, body); err != nil {
		logger.Log.Warn("failed to send otp email",
			zap.String("purpose", string(purpose)),
			zap.Error(err),
		)
	}
}

func invalidCredentials() error {
	return fmt.Errorf("%w: invalid credentials", common.ErrUnauthorized)
}

// notFoundAs replaces gorm's record-not-found with target and passes other errors through.
func notFoundAs(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
