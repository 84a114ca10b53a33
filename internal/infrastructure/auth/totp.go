package auth

import (
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/config"
)

// TOTP parameters shared with authenticator apps
const (
	totpPeriod = 30
	totpDigits = otp.DigitsSix
)

// TOTPService verifies and provisions time-based one-time passwords
type TOTPService struct {
	issuer string
	skew   uint
	now    func() time.Time
}

// NewTOTPService creates a new TOTPService
func NewTOTPService(cfg config.TOTPConfig) *TOTPService {
	return &TOTPService{
		issuer: cfg.Issuer,
		skew:   cfg.Skew,
		now:    time.Now,
	}
}

// Verify reports whether code is valid for secret at the current time,
// accepting codes up to skew periods away
func (s *TOTPService) Verify(secret, code string) bool {
	ok, err := totp.ValidateCustom(code, secret, s.now().UTC(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      s.skew,
		Digits:    totpDigits,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

// Generate creates a new secret for account and returns it with the
// otpauth:// URL authenticator apps scan
func (s *TOTPService) Generate(account string) (secret string, url string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: account,
		Period:      totpPeriod,
		Digits:      totpDigits,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", fmt.Errorf("generate totp secret: %w", err)
	}
	return key.Secret(), key.URL(), nil
}
