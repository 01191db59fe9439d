package models

import "time"

// Movement is an immutable custody-change record. The from fields are nil for
// a device's first-ever placement; the device's current location always
// equals the to fields of its most recent movement.
type Movement struct {
	ID               int64         `json:"id"`
	DeviceID         int64         `json:"device_id"`
	FromLocationType *LocationType `json:"from_location_type,omitempty"`
	FromLocationID   *int64        `json:"from_location_id,omitempty"`
	ToLocationType   LocationType  `json:"to_location_type"`
	ToLocationID     int64         `json:"to_location_id"`
	MovedAt          time.Time     `json:"moved_at"`
	MovedBy          int64         `json:"moved_by"`
}

// MovementCreate requests a custody change. The backend derives the from
// location from the device's current state.
type MovementCreate struct {
	DeviceID       int64        `json:"device_id"`
	ToLocationType LocationType `json:"to_location_type"`
	ToLocationID   int64        `json:"to_location_id"`
}
