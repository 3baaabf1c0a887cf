package order

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"

	"ordertracking/internal/pkg/errs"
)

// DeliveryCodeLength is the number of digits in a generated delivery code.
const DeliveryCodeLength = 4

// ErrInvalidDeliveryCode is returned when the supplied code does not match the order's code.
var ErrInvalidDeliveryCode = errors.New("delivery code is invalid")

// DeliveryCode is the one-time numeric code the customer shows the courier.
// The empty code means the order was placed without one.
type DeliveryCode string

// NewDeliveryCode draws a uniformly random DeliveryCodeLength-digit code,
// leading zeros included ("0731").
func NewDeliveryCode() (DeliveryCode, error) {
	limit := big.NewInt(1)
	for range DeliveryCodeLength {
		limit.Mul(limit, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate delivery code: %w", err)
	}

	return DeliveryCode(fmt.Sprintf("%0*d", DeliveryCodeLength, n.Int64())), nil
}

// ParseDeliveryCode accepts an empty string or a string of ASCII digits.
func ParseDeliveryCode(s string) (DeliveryCode, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", errs.NewValueIsInvalidErrorWithCause("delivery code", fmt.Errorf("%q is not numeric", s))
		}
	}
	return DeliveryCode(s), nil
}

// IsZero reports whether the order has no code.
func (c DeliveryCode) IsZero() bool {
	return c == ""
}

// Matches compares supplied against the code with exact string equality.
// An empty code matches nothing.
func (c DeliveryCode) Matches(supplied string) bool {
	if c.IsZero() {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c), []byte(supplied)) == 1
}

func (c DeliveryCode) String() string {
	return string(c)
}
