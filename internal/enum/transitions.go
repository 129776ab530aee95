package enum

// allowedOrderTransitions maps a current status to the statuses it may move to.
// Completed and Cancelled have no entry: they are terminal.
var allowedOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusNew:       {OrderStatusInKitchen, OrderStatusCancelled},
	OrderStatusWaitList:  {OrderStatusInKitchen, OrderStatusCancelled},
	OrderStatusDineIn:    {OrderStatusInKitchen, OrderStatusCancelled},
	OrderStatusTakeAway:  {OrderStatusInKitchen, OrderStatusCancelled},
	OrderStatusInKitchen: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusServed, OrderStatusCancelled},
	OrderStatusServed:    {OrderStatusCompleted, OrderStatusCancelled},
}

var allowedReservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusConfirmed: {ReservationStatusArrived, ReservationStatusCancelled, ReservationStatusNoShow},
}

// CanTransitionOrder reports whether an order may move from current to next.
func CanTransitionOrder(current, next OrderStatus) bool {
	for _, s := range allowedOrderTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// CanTransitionReservation reports whether a reservation may move from current to next.
func CanTransitionReservation(current, next ReservationStatus) bool {
	for _, s := range allowedReservationTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// InitialOrderStatus reports whether s may be used when a ticket is opened.
func InitialOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusNew, OrderStatusWaitList, OrderStatusDineIn, OrderStatusTakeAway:
		return true
	}
	return false
}
