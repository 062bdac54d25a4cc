package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"socialhub/internal/common"
	"socialhub/internal/config"
	"socialhub/internal/logger"
)

// LogEmailSender writes outgoing mail to the structured log instead of delivering it.
type LogEmailSender struct {
	from string
}

func NewLogEmailSender(cfg *config.Config) *LogEmailSender {
	return &LogEmailSender{from: fmt.Sprintf("%s <%s>", cfg.Email.FromName, cfg.Email.FromEmail)}
}

func ProvideEmailService(cfg *config.Config) common.EmailService {
	return NewLogEmailSender(cfg)
}

func (s *LogEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	mail := common.EmailData{To: []string{to}, Subject: subject, Body: body}
	logger.Log.Info("email queued",
		logger.WithRequestID(common.RequestIDFromContext(ctx)),
		zap.String("from", s.from),
		zap.Strings("to", mail.To),
		zap.String("subject", mail.Subject),
		zap.String("body", mail.Body),
	)
	return nil
}

var otpSubjects = map[common.OTPPurpose]string{
	common.OTPRegistration:   "Verify your SocialHub account",
	common.OTPLogin:          "Your SocialHub login code",
	common.OTPPasswordReset:  "Reset your SocialHub password",
	common.OTPPasswordChange: "Confirm your SocialHub password change",
	common.OTPEmailUpdate:    "Confirm your new SocialHub e-mail address",
}

func otpMessage(purpose common.OTPPurpose, code string, minutes int) (string, string) {
	subject, ok := otpSubjects[purpose]
	if !ok {
		subject = "Your SocialHub code"
	}
	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, minutes)
	return subject, body
}
