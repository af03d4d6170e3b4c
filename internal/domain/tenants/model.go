package tenants

import "time"

// SubscriptionStatus define los estados de suscripción soportados.
// @Enum active, past_due, canceled
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// Tenant representa un restaurante (la unidad de aislamiento de datos).
type Tenant struct {
	ID        string
	Name      string
	Subdomain string

	Active             bool
	SubscriptionStatus SubscriptionStatus

	// Perfil público básico
	Address string
	Phone   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
