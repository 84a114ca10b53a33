package identity

// AuthLevel is the second-factor state of a logged-in session
type AuthLevel string

const (
	AuthLevelNone        AuthLevel = "none"
	AuthLevelPending2FA  AuthLevel = "pending_2fa"
	AuthLevelVerified2FA AuthLevel = "verified_2fa"
	AuthLevelSkipped2FA  AuthLevel = "skipped_2fa"
)

// IsValid checks if the level is a known AuthLevel
func (l AuthLevel) IsValid() bool {
	switch l {
	case AuthLevelNone, AuthLevelPending2FA, AuthLevelVerified2FA, AuthLevelSkipped2FA:
		return true
	}
	return false
}

// String returns the string representation of AuthLevel
func (l AuthLevel) String() string {
	return string(l)
}

// IsAuthenticated reports whether a password check has passed
func (l AuthLevel) IsAuthenticated() bool {
	return l == AuthLevelPending2FA || l == AuthLevelVerified2FA || l == AuthLevelSkipped2FA
}

// HasConcluded2FA reports whether the second-factor step is over, either
// by a verified code or by an explicit skip.
func (l AuthLevel) HasConcluded2FA() bool {
	return l == AuthLevelVerified2FA || l == AuthLevelSkipped2FA
}

// CanTransitionTo checks if the level can move to target.
// Skipped sessions may step up to verified without a new login.
func (l AuthLevel) CanTransitionTo(target AuthLevel) bool {
	switch l {
	case AuthLevelNone:
		return target == AuthLevelPending2FA || target == AuthLevelSkipped2FA
	case AuthLevelPending2FA:
		return target == AuthLevelVerified2FA || target == AuthLevelSkipped2FA
	case AuthLevelSkipped2FA:
		return target == AuthLevelVerified2FA
	case AuthLevelVerified2FA:
		return false
	}
	return false
}
