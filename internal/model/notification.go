package model

type EventType string

const (
	EventCustomerCreated  EventType = "CUSTOMER_CREATED"
	EventPaymentCreated   EventType = "PAYMENT_CREATED"
	EventPaymentReceived  EventType = "PAYMENT_RECEIVED"
	EventPaymentConfirmed EventType = "PAYMENT_CONFIRMED"
)

func (t EventType) String() string { return string(t) }

// Notification is the webhook payload Asaas posts for every lifecycle event.
// Payment and Customer are optional depending on the event.
type Notification struct {
	Event    EventType `json:"event"`
	Payment  *Payment  `json:"payment,omitempty"`
	Customer *Customer `json:"customer,omitempty"`
}

type Payment struct {
	ID          string    `json:"id"`
	Description string    `json:"description,omitempty"`
	Value       float64   `json:"value"`
	Customer    *Customer `json:"customer,omitempty"`
}

type Customer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
