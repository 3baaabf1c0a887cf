package order

import (
	"errors"
	"fmt"

	"ordertracking/internal/pkg/errs"
)

const maxItemQuantity = 99

// Item is one product line of an order. UnitPrice is the catalog price in cents
// at the moment the order was placed; later catalog changes never touch it.
type Item struct {
	productID      int64
	quantity       int
	unitPriceCents int64
}

// NewItem validates the product reference, a quantity in [1, 99] and a positive price.
func NewItem(productID int64, quantity int, unitPriceCents int64) (Item, error) {
	if err := errors.Join(
		validateProductID(productID),
		validateQuantity(quantity),
		validateUnitPrice(unitPriceCents),
	); err != nil {
		return Item{}, err
	}

	return Item{productID: productID, quantity: quantity, unitPriceCents: unitPriceCents}, nil
}

func (i Item) ProductID() int64 {
	return i.productID
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPriceCents() int64 {
	return i.unitPriceCents
}

// SubtotalCents returns quantity times the snapshotted unit price.
func (i Item) SubtotalCents() int64 {
	return int64(i.quantity) * i.unitPriceCents
}

func validateProductID(productID int64) error {
	if productID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("product id", fmt.Errorf("%d is not greater than 0", productID))
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity < 1 || quantity > maxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}
	return nil
}

func validateUnitPrice(unitPriceCents int64) error {
	if unitPriceCents <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"unit price",
			fmt.Errorf("%d is not greater than 0", unitPriceCents),
		)
	}
	return nil
}
