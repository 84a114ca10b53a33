package ordering

import (
	"fmt"

	"github.com/sannaclaudia/WebAPP/internal/domain/identity"
	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
)

// CancelPolicy decides which sessions may cancel an order
type CancelPolicy string

const (
	// CancelPolicyAlways requires a verified second factor for every cancellation
	CancelPolicyAlways CancelPolicy = "always"
	// CancelPolicyOrder2FA requires a verified second factor only for orders placed with one
	CancelPolicyOrder2FA CancelPolicy = "order_2fa"
)

// ErrCancelRequires2FA is returned when the session's second factor is not verified
var ErrCancelRequires2FA = shared.NewDomainError("FORBIDDEN", "Order cancellation requires 2FA authentication")

// ParseCancelPolicy parses a configured policy name
func ParseCancelPolicy(s string) (CancelPolicy, error) {
	switch CancelPolicy(s) {
	case CancelPolicyAlways, CancelPolicyOrder2FA:
		return CancelPolicy(s), nil
	case "":
		return CancelPolicyAlways, nil
	}
	return "", fmt.Errorf("unknown cancel policy %q", s)
}

// Authorize returns ErrCancelRequires2FA when level may not cancel order.
// A skipped second factor never authorizes cancelling an order placed
// with 2FA.
func (p CancelPolicy) Authorize(order *Order, level identity.AuthLevel) error {
	if level == identity.AuthLevelVerified2FA {
		return nil
	}
	if p == CancelPolicyOrder2FA && !order.Used2FA && level.HasConcluded2FA() {
		return nil
	}
	return ErrCancelRequires2FA
}
