package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordertracking/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when an order is placed without product lines.
	ErrOrderHasNoItems = errors.New("order must contain at least one item")
)

// ID is the numeric order identifier assigned by the order store.
type ID int64

// Validate rejects zero and negative identifiers.
func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id is invalid", fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}

func (id ID) String() string {
	return fmt.Sprintf("%d", int64(id))
}

// Order is the aggregate root of the order lifecycle.
//
// Order follows these invariants:
//   - id, delivery, items and total price never change after placement
//   - the delivery code is assigned at placement and never reassigned
//   - status changes only through ApplyStatus, which ignores requests once terminal
//   - the total equals the item subtotals plus the delivery surcharge
type Order struct {
	id           ID
	restaurantID string

	// recipient is the customer's e-mail address used for notifications
	recipient string

	status       Status
	deliveryCode DeliveryCode
	delivery     Delivery
	items        []Item

	// totalPriceCents is computed once in NewOrder
	totalPriceCents int64

	createdAt time.Time

	isConstructed bool
}

// NewOrder places a new order in Pending status.
//
// Parameters:
//   - id: identifier reserved from the order store
//   - restaurantID: the restaurant fulfilling the order
//   - recipient: customer e-mail (placeholder addresses are allowed)
//   - delivery: delivery type and scheduled time
//   - items: at least one product line with snapshotted prices
//   - surchargeCents: delivery surcharge added to the item subtotals
//   - code: the one-time delivery code
//   - createdAt: placement time
//
// Returns every validation failure joined into one error.
//
// Example:
//
//	item, _ := order.NewItem(7, 2, 1990)
//	delivery, _ := order.NewDelivery(order.Express, "")
//	code, _ := order.NewDeliveryCode()
//	o, err := order.NewOrder(42, "place-123", "ana@example.com", delivery, []order.Item{item}, 500, code, time.Now())
func NewOrder(
	id ID,
	restaurantID string,
	recipient string,
	delivery Delivery,
	items []Item,
	surchargeCents int64,
	code DeliveryCode,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		deliveryCode:  code,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setRecipient(recipient),
		o.setDelivery(delivery),
		o.setItems(items),
		o.setTotal(surchargeCents),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// State is the full persisted state of an order, used by RestoreOrder to
// rehydrate an aggregate from storage.
type State struct {
	ID              ID
	RestaurantID    string
	Recipient       string
	Status          Status
	DeliveryCode    DeliveryCode
	Delivery        Delivery
	Items           []Item
	TotalPriceCents int64
	CreatedAt       time.Time
}

// RestoreOrder rebuilds an aggregate from persisted state without recomputing
// the total. It validates identity, status and delivery but trusts the stored price.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		status:          s.Status,
		deliveryCode:    s.DeliveryCode,
		totalPriceCents: s.TotalPriceCents,
		createdAt:       s.CreatedAt.UTC(),
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setRestaurantID(s.RestaurantID),
		o.setRecipient(s.Recipient),
		o.setDelivery(s.Delivery),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.items = append([]Item(nil), s.Items...)

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() ID {
	return o.id
}

func (o *Order) RestaurantID() string {
	return o.restaurantID
}

func (o *Order) Recipient() string {
	return o.recipient
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) DeliveryCode() DeliveryCode {
	return o.deliveryCode
}

func (o *Order) Delivery() Delivery {
	return o.delivery
}

// Items returns a copy of the product lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

func (o *Order) TotalPriceCents() int64 {
	return o.totalPriceCents
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ApplyStatus moves the order to target unless it is already terminal.
//
// Returns:
//   - (true, nil) when the status was set
//   - (false, nil) when the order is terminal; nothing changed
//   - (false, error) when target is not a valid status
//
// Example:
//
//	changed, err := o.ApplyStatus(order.Confirmed)
//	if err != nil {
//	    return err
//	}
//	if !changed {
//	    // already Completed or Cancelled
//	}
func (o *Order) ApplyStatus(target Status) (bool, error) {
	next, changed, err := o.status.Transition(target)
	if err != nil {
		return false, err
	}
	o.status = next
	return changed, nil
}

// CheckDeliveryCode returns ErrInvalidDeliveryCode unless supplied equals the
// order's code. It does not look at the status; callers decide what a match
// means for a terminal order.
func (o *Order) CheckDeliveryCode(supplied string) error {
	if !o.deliveryCode.Matches(supplied) {
		return ErrInvalidDeliveryCode
	}
	return nil
}

func (o *Order) setID(id ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRestaurantID(restaurantID string) error {
	if strings.TrimSpace(restaurantID) == "" {
		return errs.NewValueIsRequiredError("restaurant id")
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setRecipient(recipient string) error {
	if !strings.Contains(recipient, "@") {
		return errs.NewValueIsInvalidErrorWithCause("recipient", fmt.Errorf("%q is not an e-mail address", recipient))
	}
	o.recipient = recipient
	return nil
}

func (o *Order) setDelivery(delivery Delivery) error {
	if err := delivery.Validate(); err != nil {
		return err
	}
	o.delivery = delivery
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	o.items = append([]Item(nil), items...)
	return nil
}

func (o *Order) setTotal(surchargeCents int64) error {
	if surchargeCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("surcharge", fmt.Errorf("%d is negative", surchargeCents))
	}
	total := surchargeCents
	for _, item := range o.items {
		total += item.SubtotalCents()
	}
	o.totalPriceCents = total
	return nil
}
