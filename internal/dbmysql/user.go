package dbmysql

import (
	"time"

	"socialhub/internal/common"
)

// OTPState is the one-time-code bookkeeping shared by users and moderators.
// Only a per-issue HOTP secret is stored, never the code itself.
type OTPState struct {
	OTPSecret      string     `gorm:"column:otp_secret;size:64" json:"-"`
	OTPExpiresAt   *time.Time `gorm:"column:otp_expires_at" json:"-"`
	OTPPurpose     string     `gorm:"column:otp_purpose;size:32" json:"-"`
	OTPEnabled     bool       `gorm:"column:otp_enabled;default:false" json:"otp_enabled"`
	LoginAttempts  int        `gorm:"column:login_attempts;default:0" json:"-"`
	LastOTPRequest *time.Time `gorm:"column:last_otp_request" json:"-"`
}

// ClearOTP forgets the outstanding code but keeps the OTPEnabled preference.
func (o *OTPState) ClearOTP() {
	o.OTPSecret = ""
	o.OTPExpiresAt = nil
	o.OTPPurpose = ""
	o.LoginAttempts = 0
}

type User struct {
	ID             uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string            `gorm:"column:username;uniqueIndex;size:50;not null" json:"username"`
	Email          string            `gorm:"column:email;uniqueIndex;size:255;not null" json:"email"`
	PasswordHash   string            `gorm:"column:password_hash;size:255;not null" json:"-"`
	Visibility     common.Visibility `gorm:"column:visibility;size:20;not null;default:'Public';index" json:"visibility"`
	Bio            string            `gorm:"column:bio;type:text" json:"bio"`
	ProfilePicture string            `gorm:"column:profile_picture;size:512" json:"profile_picture"`
	EmailVerified  bool              `gorm:"column:email_verified;default:false" json:"email_verified"`
	PendingEmail   *string           `gorm:"column:pending_email;size:255" json:"-"`
	DisabledUntil  *time.Time        `gorm:"column:disabled_until" json:"disabled_until,omitempty"`
	OTPState       `gorm:"embedded"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// IsDisabled reports whether a moderator suspension is still running at now.
func (u *User) IsDisabled(now time.Time) bool {
	return u.DisabledUntil != nil && u.DisabledUntil.After(now)
}

func (u *User) Summary() common.UserSummary {
	return common.UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		Visibility:     u.Visibility,
	}
}

type Moderator struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Level        common.ModLevel `gorm:"column:level;not null" json:"level"`
	Username     string          `gorm:"column:username;uniqueIndex;size:50;not null" json:"username"`
	Email        string          `gorm:"column:email;uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string          `gorm:"column:password_hash;size:255;not null" json:"-"`
	OTPState     `gorm:"embedded"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
