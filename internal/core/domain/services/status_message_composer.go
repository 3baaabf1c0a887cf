package services

import (
	"fmt"

	"ordertracking/internal/core/domain/model/order"
)

// EventKind distinguishes the order events a customer is told about.
type EventKind int

const (
	// UnknownEvent catches uninitialized values.
	UnknownEvent EventKind = iota

	// OrderPlaced is sent once, right after the order was stored.
	OrderPlaced

	// StatusChanged is sent after every committed status transition.
	StatusChanged
)

func (k EventKind) String() string {
	switch k {
	case OrderPlaced:
		return "order_placed"
	case StatusChanged:
		return "status_changed"
	default:
		return "unknown"
	}
}

// Event carries what the composer needs to know about one order event.
type Event struct {
	Kind            EventKind
	Status          order.Status
	DeliveryCode    order.DeliveryCode
	TotalPriceCents int64
}

// NewOrderPlacedEvent describes the placement of o. It is the only event that
// carries the delivery code.
func NewOrderPlacedEvent(o *order.Order) Event {
	return Event{
		Kind:            OrderPlaced,
		Status:          o.Status(),
		DeliveryCode:    o.DeliveryCode(),
		TotalPriceCents: o.TotalPriceCents(),
	}
}

// NewStatusChangedEvent describes a transition into status.
func NewStatusChangedEvent(status order.Status) Event {
	return Event{Kind: StatusChanged, Status: status}
}

// Message is a rendered notification.
type Message struct {
	Subject string
	Body    string
}

// StatusMessageComposer renders one message template per status plus the
// placement message.
//
// Business rules:
//   - the delivery code appears only in the OrderPlaced message
//   - a status without a template falls back to "status changed to <status>"
//
// Example:
//
//	composer := services.NewStatusMessageComposer()
//	msg := composer.Compose(42, services.NewStatusChangedEvent(order.OutForDelivery))
//	// msg.Subject == "Order #42 is on its way"
type StatusMessageComposer struct{}

// NewStatusMessageComposer creates a new StatusMessageComposer instance.
func NewStatusMessageComposer() StatusMessageComposer {
	return StatusMessageComposer{}
}

type template struct {
	subject string
	body    string
}

func getStatusTemplates() map[order.Status]template {
	//nolint:exhaustive // Unknown falls back to the generic message
	return map[order.Status]template{
		order.Pending: {
			subject: "Order #%d received",
			body:    "Your order #%d is waiting for the restaurant to confirm it.",
		},
		order.Confirmed: {
			subject: "Order #%d confirmed",
			body:    "The restaurant confirmed your order #%d.",
		},
		order.InPreparation: {
			subject: "Order #%d is being prepared",
			body:    "The kitchen started preparing your order #%d.",
		},
		order.OutForDelivery: {
			subject: "Order #%d is on its way",
			body:    "Your order #%d left the restaurant. Have your delivery code ready for the courier.",
		},
		order.Completed: {
			subject: "Order #%d delivered",
			body:    "Your order #%d was delivered. Enjoy your meal!",
		},
		order.Cancelled: {
			subject: "Order #%d cancelled",
			body:    "Your order #%d was cancelled.",
		},
	}
}

// Compose renders the message for event on order orderID.
func (StatusMessageComposer) Compose(orderID order.ID, event Event) Message {
	if event.Kind == OrderPlaced {
		return Message{
			Subject: fmt.Sprintf("Order #%d placed", orderID),
			Body: fmt.Sprintf(
				"We received your order #%d. Total: %s. Your delivery code is %s; show it to the courier on arrival.",
				orderID, formatCents(event.TotalPriceCents), event.DeliveryCode,
			),
		}
	}

	if t, ok := getStatusTemplates()[event.Status]; ok {
		return Message{
			Subject: fmt.Sprintf(t.subject, orderID),
			Body:    fmt.Sprintf(t.body, orderID),
		}
	}

	return Message{
		Subject: fmt.Sprintf("Order #%d updated", orderID),
		Body:    fmt.Sprintf("Your order #%d: status changed to %s.", orderID, event.Status),
	}
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sR$ %d,%02d", sign, cents/100, cents%100)
}
