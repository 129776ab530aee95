package enum

// StatusStyle is the display treatment a front end applies to a status badge.
type StatusStyle struct {
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

var neutralStyle = StatusStyle{Label: "Unknown", Tone: "gray"}

var OrderStatusStyles = map[OrderStatus]StatusStyle{
	OrderStatusNew:       {Label: "New", Tone: "blue"},
	OrderStatusInKitchen: {Label: "In Kitchen", Tone: "yellow"},
	OrderStatusReady:     {Label: "Ready", Tone: "green"},
	OrderStatusServed:    {Label: "Served", Tone: "purple"},
	OrderStatusCompleted: {Label: "Completed", Tone: "gray"},
	OrderStatusCancelled: {Label: "Cancelled", Tone: "red"},
	OrderStatusWaitList:  {Label: "Wait List", Tone: "orange"},
	OrderStatusDineIn:    {Label: "Dine In", Tone: "teal"},
	OrderStatusTakeAway:  {Label: "Take Away", Tone: "teal"},
}

var TableStatusStyles = map[TableStatus]StatusStyle{
	TableStatusAvailable: {Label: "Available", Tone: "teal"},
	TableStatusReserved:  {Label: "Reserved", Tone: "blue"},
	TableStatusOccupied:  {Label: "Occupied", Tone: "orange"},
}

var ReservationStatusStyles = map[ReservationStatus]StatusStyle{
	ReservationStatusConfirmed: {Label: "Confirmed", Tone: "blue"},
	ReservationStatusArrived:   {Label: "Arrived", Tone: "green"},
	ReservationStatusCancelled: {Label: "Cancelled", Tone: "red"},
	ReservationStatusNoShow:    {Label: "No Show", Tone: "gray"},
}

func (s OrderStatus) Style() StatusStyle {
	if st, ok := OrderStatusStyles[s]; ok {
		return st
	}
	return neutralStyle
}

func (s TableStatus) Style() StatusStyle {
	if st, ok := TableStatusStyles[s]; ok {
		return st
	}
	return neutralStyle
}

func (s ReservationStatus) Style() StatusStyle {
	if st, ok := ReservationStatusStyles[s]; ok {
		return st
	}
	return neutralStyle
}
