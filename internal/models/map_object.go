package models

// ObjectKind names a point-object table on the floor plan. Peripherals,
// utilities, pantries, rooms and emergency equipment are structurally
// identical: a typed point with an icon on one of the two floors.
type ObjectKind string

const (
	KindPeripheral ObjectKind = "Peripheral"
	KindUtility    ObjectKind = "Utility"
	KindPantry     ObjectKind = "Pantry"
	KindRoom       ObjectKind = "Room"
	KindEmergency  ObjectKind = "Emergency"
)

// MapObject represents one non-personnel marker on a floor plan.
type MapObject struct {
	ID        int64      `json:"id"`
	Kind      ObjectKind `json:"kind"`
	Type      string     `json:"type"`
	Floor     int     `json:"floor"`
	IconID    string  `json:"icon_id"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// NumFloors is the number of fixed coordinate planes the office spans.
const NumFloors = 2
