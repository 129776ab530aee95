package enum

// ── Group A: State machines ──

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusInKitchen OrderStatus = "in-kitchen"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusWaitList  OrderStatus = "wait-list"
	OrderStatusDineIn    OrderStatus = "dine-in"
	OrderStatusTakeAway  OrderStatus = "take-away"
)

type TableStatus string

const (
	TableStatusAvailable TableStatus = "available"
	TableStatusReserved  TableStatus = "reserved"
	TableStatusOccupied  TableStatus = "occupied"
)

type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusArrived   ReservationStatus = "arrived"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusNoShow    ReservationStatus = "no-show"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// ── Group B: Configurable labels ──

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodMobile PaymentMethod = "mobile"
)

type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleManager UserRole = "manager"
	UserRoleWaiter  UserRole = "waiter"
	UserRoleCashier UserRole = "cashier"
	UserRoleChef    UserRole = "chef"
)

// Display order for status pickers and legends.
var (
	OrderStatuses = []OrderStatus{
		OrderStatusNew, OrderStatusInKitchen, OrderStatusReady, OrderStatusServed,
		OrderStatusCompleted, OrderStatusCancelled, OrderStatusWaitList,
		OrderStatusDineIn, OrderStatusTakeAway,
	}
	TableStatuses = []TableStatus{
		TableStatusAvailable, TableStatusReserved, TableStatusOccupied,
	}
	ReservationStatuses = []ReservationStatus{
		ReservationStatusConfirmed, ReservationStatusArrived,
		ReservationStatusCancelled, ReservationStatusNoShow,
	}
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusInKitchen, OrderStatusReady, OrderStatusServed,
		OrderStatusCompleted, OrderStatusCancelled, OrderStatusWaitList,
		OrderStatusDineIn, OrderStatusTakeAway:
		return true
	}
	return false
}

// Terminal reports whether no further status change is defined for the order.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func (s TableStatus) Valid() bool {
	switch s {
	case TableStatusAvailable, TableStatusReserved, TableStatusOccupied:
		return true
	}
	return false
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusConfirmed, ReservationStatusArrived,
		ReservationStatusCancelled, ReservationStatusNoShow:
		return true
	}
	return false
}

func (s ReservationStatus) Terminal() bool {
	return s == ReservationStatusArrived || s == ReservationStatusCancelled || s == ReservationStatusNoShow
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodMobile:
		return true
	}
	return false
}

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleManager, UserRoleWaiter, UserRoleCashier, UserRoleChef:
		return true
	}
	return false
}
