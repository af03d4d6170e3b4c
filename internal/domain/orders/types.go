package orders

// Status define el ciclo de vida de una orden.
// @Enum placed, accepted, preparing, ready, served, paid, cancelled
type Status string

const (
	StatusPlaced    Status = "placed"
	StatusAccepted  Status = "accepted"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusServed    Status = "served"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// transitions: desde cada estado, a dónde se puede ir.
// Cancelable solo hasta que cocina empieza (placed/accepted).
var transitions = map[Status][]Status{
	StatusPlaced:    {StatusAccepted, StatusCancelled},
	StatusAccepted:  {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady},
	StatusReady:     {StatusServed},
	StatusServed:    {StatusPaid},
	StatusPaid:      {},
	StatusCancelled: {},
}

func ValidStatus(s Status) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition valida un paso del ciclo de vida.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
