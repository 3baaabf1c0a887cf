package commands

import (
	"errors"

	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/pkg/guard"
)

var ErrVerifyDeliveryCodeCommandIsNotConstructed = errors.New(
	"VerifyDeliveryCodeCommand must be created via NewVerifyDeliveryCodeCommand constructor",
)

// VerifyDeliveryCodeCommand carries the code a courier typed in at the door.
//
// The code is kept verbatim; any non-matching string, empty included, is
// rejected by the handler as ErrInvalidDeliveryCode rather than here, so a
// malformed code and a wrong code look the same to the caller.
type VerifyDeliveryCodeCommand struct { //nolint:recvcheck //using for validation
	orderID order.ID
	code    string

	guard guard.ConstructorGuard
}

// NewVerifyDeliveryCodeCommand validates the order id.
func NewVerifyDeliveryCodeCommand(orderID order.ID, code string) (VerifyDeliveryCodeCommand, error) {
	if err := orderID.Validate(); err != nil {
		return VerifyDeliveryCodeCommand{}, err
	}

	return VerifyDeliveryCodeCommand{
		orderID: orderID,
		code:    code,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyDeliveryCodeCommand) Validate() error {
	return c.guard.Validate(ErrVerifyDeliveryCodeCommandIsNotConstructed)
}

func (c VerifyDeliveryCodeCommand) OrderID() order.ID {
	return c.orderID
}

func (c VerifyDeliveryCodeCommand) Code() string {
	return c.code
}
