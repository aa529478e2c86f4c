package models

// OrderStatus adalah enum tertutup untuk lifecycle order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderCancelled OrderStatus = "cancelled"
)

// orderTransitions -> tabel transisi yang sah. Status terminal tidak punya entry.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderServed, OrderCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderServed, OrderCancelled:
		return true
	}
	return false
}

// Terminal -> served dan cancelled tidak bisa ditransisikan lagi
func (s OrderStatus) Terminal() bool {
	return s == OrderServed || s == OrderCancelled
}

// CanTransitionTo -> cek transisi terhadap tabel, bukan string compare ad hoc
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Display -> label untuk UI, diturunkan dari enum
func (s OrderStatus) Display() string {
	switch s {
	case OrderPending:
		return "Pending"
	case OrderPreparing:
		return "Preparing"
	case OrderReady:
		return "Ready"
	case OrderServed:
		return "Served"
	case OrderCancelled:
		return "Cancelled"
	}
	return "Unknown"
}

// TableStatus adalah enum tertutup untuk status okupansi meja.
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved:
		return true
	}
	return false
}

func (s TableStatus) Display() string {
	switch s {
	case TableAvailable:
		return "Available"
	case TableOccupied:
		return "Occupied"
	case TableReserved:
		return "Reserved"
	}
	return "Unknown"
}
