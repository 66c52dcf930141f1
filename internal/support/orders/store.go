// Package orders is the order-lookup collaborator: a small in-memory table
// keyed by order id, with human-readable formatting for chat replies.
package orders

import (
	"fmt"
	"strings"
)

// Status values an order can be in.
const (
	StatusProcessing     = "Processing"
	StatusShipped        = "Shipped"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
)

// Order is one order record.
type Order struct {
	ID                string
	CustomerName      string
	Items             []string
	Total             float64
	Status            string
	Tracking          string
	OrderDate         string
	EstimatedDelivery string
	DeliveredDate     string
	CancelledDate     string
	RefundStatus      string
}

// Store holds orders keyed by normalized id. Seeded at startup; lookups are
// read-only.
type Store struct {
	orders map[string]*Order
}

func NewStore(seed []Order) *Store {
	s := &Store{orders: make(map[string]*Order, len(seed))}
	for i := range seed {
		o := seed[i]
		s.orders[normalizeID(o.ID)] = &o
	}
	return s
}

func normalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// Get looks up an order by id; a bare numeric id is retried with the ORD-
// prefix so "12345" finds "ORD-12345".
func (s *Store) Get(id string) (*Order, bool) {
	clean := normalizeID(id)
	if o, ok := s.orders[clean]; ok {
		return o, true
	}
	if !strings.HasPrefix(clean, "ORD-") {
		if o, ok := s.orders["ORD-"+clean]; ok {
			return o, true
		}
	}
	return nil, false
}

// ByTracking finds the order carrying the given tracking number.
func (s *Store) ByTracking(tracking string) (*Order, bool) {
	tracking = normalizeID(tracking)
	for _, o := range s.orders {
		if o.Tracking != "" && strings.ToUpper(o.Tracking) == tracking {
			return o, true
		}
	}
	return nil, false
}

// Len returns the number of stored orders.
func (s *Store) Len() int {
	return len(s.orders)
}

// FormatOrder renders an order as a chat reply.
func FormatOrder(o *Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Order Details**\n\n")
	fmt.Fprintf(&b, "**Order ID:** %s\n", o.ID)
	fmt.Fprintf(&b, "**Status:** %s\n", o.Status)
	fmt.Fprintf(&b, "**Items:** %s\n", strings.Join(o.Items, ", "))
	fmt.Fprintf(&b, "**Total:** $%.2f\n", o.Total)
	fmt.Fprintf(&b, "**Order Date:** %s", o.OrderDate)

	if o.Tracking != "" {
		fmt.Fprintf(&b, "\n**Tracking:** %s", o.Tracking)
	}

	switch o.Status {
	case StatusDelivered:
		fmt.Fprintf(&b, "\n**Delivered:** %s", orDefault(o.DeliveredDate, "N/A"))
	case StatusCancelled:
		fmt.Fprintf(&b, "\n**Cancelled:** %s", orDefault(o.CancelledDate, "N/A"))
		fmt.Fprintf(&b, "\n**Refund:** %s", orDefault(o.RefundStatus, "Pending"))
	default:
		fmt.Fprintf(&b, "\n**Est. Delivery:** %s", orDefault(o.EstimatedDelivery, "N/A"))
	}

	return b.String()
}

// FormatTracking renders a tracking-focused reply for an order.
func FormatTracking(o *Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Tracking Information**\n\n")
	fmt.Fprintf(&b, "**Order ID:** %s\n", o.ID)
	fmt.Fprintf(&b, "**Tracking Number:** %s\n", orDefault(o.Tracking, "Not yet assigned"))
	fmt.Fprintf(&b, "**Status:** %s\n\n", o.Status)
	b.WriteString("**Shipping Updates:**")

	switch o.Status {
	case StatusDelivered:
		fmt.Fprintf(&b, "\n- %s - Delivered to recipient", orDefault(o.DeliveredDate, "N/A"))
		fmt.Fprintf(&b, "\n- %s - Package picked up", o.OrderDate)
		fmt.Fprintf(&b, "\n- %s - Shipping label created", o.OrderDate)
	case StatusOutForDelivery:
		b.WriteString("\n- Today - Out for delivery")
		b.WriteString("\n- Yesterday - Arrived at local facility")
		fmt.Fprintf(&b, "\n- %s - Package picked up", o.OrderDate)
	case StatusShipped:
		b.WriteString("\n- In transit to destination")
		fmt.Fprintf(&b, "\n- %s - Package picked up", o.OrderDate)
		fmt.Fprintf(&b, "\n- %s - Shipping label created", o.OrderDate)
	case StatusProcessing:
		b.WriteString("\n- Order is being prepared for shipment")
	default:
		b.WriteString("\n- No tracking updates available")
	}

	if o.EstimatedDelivery != "" {
		fmt.Fprintf(&b, "\n\n**Estimated Delivery:** %s", o.EstimatedDelivery)
	}

	return b.String()
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// SampleOrders returns the demo order table.
func SampleOrders() []Order {
	return []Order{
		{
			ID:                "ORD-12345",
			CustomerName:      "John Smith",
			Items:             []string{"Wireless Headphones", "Phone Case"},
			Total:             89.99,
			Status:            StatusShipped,
			Tracking:          "1Z999AA10123456784",
			OrderDate:         "2026-01-15",
			EstimatedDelivery: "2026-01-20",
		},
		{
			ID:                "ORD-67890",
			CustomerName:      "Sarah Johnson",
			Items:             []string{"Laptop Stand", "USB-C Hub", "Webcam"},
			Total:             156.50,
			Status:            StatusProcessing,
			OrderDate:         "2026-01-17",
			EstimatedDelivery: "2026-01-24",
		},
		{
			ID:                "ORD-11111",
			CustomerName:      "Mike Brown",
			Items:             []string{"Gaming Mouse"},
			Total:             49.99,
			Status:            StatusDelivered,
			Tracking:          "1Z999AA10123456001",
			OrderDate:         "2026-01-10",
			EstimatedDelivery: "2026-01-14",
			DeliveredDate:     "2026-01-13",
		},
		{
			ID:                "ORD-22222",
			CustomerName:      "Emily Davis",
			Items:             []string{"Mechanical Keyboard", "Desk Mat"},
			Total:             124.00,
			Status:            StatusOutForDelivery,
			Tracking:          "1Z999AA10123456002",
			OrderDate:         "2026-01-16",
			EstimatedDelivery: "2026-01-18",
		},
		{
			ID:            "ORD-33333",
			CustomerName:  "Alex Wilson",
			Items:         []string{"Monitor Light Bar", "Cable Management Kit"},
			Total:         78.99,
			Status:        StatusCancelled,
			OrderDate:     "2026-01-14",
			CancelledDate: "2026-01-15",
			RefundStatus:  "Processed",
		},
	}
}
