package order

import (
	"fmt"
	"strings"

	"ordertracking/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> InPreparation ──> OutForDelivery ──> Completed
//	   │            │               │                  │
//	   └────────────┴───────────────┴──────────────────┴──────> Cancelled
//
// Forward progression is the expected path but is not enforced: restaurant
// staff may move a non-terminal order to any status. Completed and Cancelled
// are terminal.
//
// On the wire a Status is encoded with its code (PENDENTE, CONFIRMADO, ...),
// the names the storefront and the restaurant panel already exchange.
type Status int

const (
	// Unknown represents an invalid or undefined status and catches uninitialized values.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order.
	Pending

	// Confirmed means the restaurant accepted the order.
	Confirmed

	// InPreparation means the kitchen is working on the order.
	InPreparation

	// OutForDelivery means a courier picked the order up.
	OutForDelivery

	// Completed means the courier received the correct delivery code. Terminal.
	Completed

	// Cancelled means the order will not be delivered. Terminal.
	Cancelled
)

type statusNames struct {
	name string
	code string
}

func getStatusNames() map[Status]statusNames {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]statusNames{
		Pending:        {name: "Pending", code: "PENDENTE"},
		Confirmed:      {name: "Confirmed", code: "CONFIRMADO"},
		InPreparation:  {name: "InPreparation", code: "EM_PREPARO"},
		OutForDelivery: {name: "OutForDelivery", code: "SAIU_PARA_ENTREGA"},
		Completed:      {name: "Completed", code: "CONCLUIDO"},
		Cancelled:      {name: "Cancelled", code: "CANCELADO"},
	}
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, InPreparation, OutForDelivery, Completed, Cancelled}
}

// ParseStatus resolves a status from its wire code ("EM_PREPARO") or its
// name ("InPreparation"). Matching is case-insensitive.
//
// Returns a ValueIsInvalidError when s names no status.
func ParseStatus(s string) (Status, error) {
	needle := strings.TrimSpace(s)
	for status, names := range getStatusNames() {
		if strings.EqualFold(needle, names.code) || strings.EqualFold(needle, names.name) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate returns a ValueIsInvalidError for Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getStatusNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the English name ("OutForDelivery"), or "Unknown" for invalid values.
func (s Status) String() string {
	if names, ok := getStatusNames()[s]; ok {
		return names.name
	}
	return "Unknown"
}

// Code returns the wire code ("SAIU_PARA_ENTREGA"), or "UNKNOWN" for invalid values.
func (s Status) Code() string {
	if names, ok := getStatusNames()[s]; ok {
		return names.code
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is accepted from s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Transition computes the status that results from asking s to move to target.
//
// Returns:
//   - (target, true, nil) when s is not terminal
//   - (s, false, nil) when s is terminal; the request is ignored
//   - (Unknown, false, error) when target is not a valid status
//
// Example:
//
//	next, changed, err := order.OutForDelivery.Transition(order.Cancelled)
//	// next == order.Cancelled, changed == true
//
//	next, changed, err = order.Completed.Transition(order.Pending)
//	// next == order.Completed, changed == false
func (s Status) Transition(target Status) (Status, bool, error) {
	if err := target.Validate(); err != nil {
		return Unknown, false, err
	}
	if s.IsTerminal() {
		return s, false, nil
	}
	return target, true, nil
}

// MarshalText encodes the status as its wire code.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.Code()), nil
}

// UnmarshalText decodes a wire code or name.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
