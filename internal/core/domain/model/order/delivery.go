package order

import (
	"errors"
	"fmt"
	"strings"

	"ordertracking/internal/pkg/errs"
)

// DeliveryType selects how the order reaches the customer. It is fixed at placement.
type DeliveryType int

const (
	// UnknownDeliveryType catches uninitialized values.
	UnknownDeliveryType DeliveryType = iota
	Normal
	Express
	Scheduled
)

func getDeliveryTypeCodes() map[DeliveryType]string {
	//nolint:exhaustive // UnknownDeliveryType is intentionally excluded as it's invalid
	return map[DeliveryType]string{
		Normal:    "NORMAL",
		Express:   "EXPRESS",
		Scheduled: "SCHEDULED",
	}
}

// ParseDeliveryType resolves a delivery type from its code, case-insensitively.
func ParseDeliveryType(s string) (DeliveryType, error) {
	for t, code := range getDeliveryTypeCodes() {
		if strings.EqualFold(strings.TrimSpace(s), code) {
			return t, nil
		}
	}
	return UnknownDeliveryType, errs.NewValueIsInvalidErrorWithCause(
		"delivery type is invalid",
		fmt.Errorf("%q is not a valid delivery type", s),
	)
}

// Validate returns a ValueIsInvalidError for unknown values.
func (t DeliveryType) Validate() error {
	if _, ok := getDeliveryTypeCodes()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery type is invalid",
			fmt.Errorf("%d is not a valid delivery type", t),
		)
	}
	return nil
}

// String returns the code ("EXPRESS"), or "UNKNOWN".
func (t DeliveryType) String() string {
	if code, ok := getDeliveryTypeCodes()[t]; ok {
		return code
	}
	return "UNKNOWN"
}

// MarshalText encodes the delivery type as its code.
func (t DeliveryType) MarshalText() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a delivery type code.
func (t *DeliveryType) UnmarshalText(text []byte) error {
	parsed, err := ParseDeliveryType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Delivery couples the delivery type with the requested time of a scheduled
// delivery. The time is kept as the customer supplied it.
type Delivery struct {
	deliveryType  DeliveryType
	scheduledTime string
}

// NewDelivery validates that scheduledTime is present exactly when t is Scheduled.
func NewDelivery(t DeliveryType, scheduledTime string) (Delivery, error) {
	if err := t.Validate(); err != nil {
		return Delivery{}, err
	}

	scheduledTime = strings.TrimSpace(scheduledTime)
	switch {
	case t == Scheduled && scheduledTime == "":
		return Delivery{}, errs.NewValueIsRequiredErrorWithCause(
			"scheduled time",
			errors.New("scheduled deliveries need a time"),
		)
	case t != Scheduled && scheduledTime != "":
		return Delivery{}, errs.NewValueIsInvalidErrorWithCause(
			"scheduled time",
			fmt.Errorf("%s deliveries cannot carry a scheduled time", t),
		)
	}

	return Delivery{deliveryType: t, scheduledTime: scheduledTime}, nil
}

// Type returns the delivery type.
func (d Delivery) Type() DeliveryType {
	return d.deliveryType
}

// ScheduledTime returns the requested time, empty unless the type is Scheduled.
func (d Delivery) ScheduledTime() string {
	return d.scheduledTime
}

// Validate rejects a zero-value Delivery.
func (d Delivery) Validate() error {
	return d.deliveryType.Validate()
}
