package models

import "time"

// SessionStatus is the inventory session lifecycle state. Completed and
// cancelled are terminal; the backend rejects record writes once a session
// has left active, and the client treats that as authoritative.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// Terminal reports whether the status accepts no further transitions.
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionCancelled
}

// InventorySession is a bounded reconciliation exercise over all devices
// whose type was in scope at creation time (the scope is a snapshot; devices
// added to those types later are not retrofitted).
type InventorySession struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      SessionStatus `json:"status"`
	DeviceTypes []DeviceType  `json:"device_types"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

type SessionCreate struct {
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	DeviceTypeIDs []int64 `json:"device_type_ids"`
}

type SessionUpdate struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *SessionStatus `json:"status,omitempty"`
}

// InventoryRecord is the per-device checklist entry within a session.
// CheckedAt is non-nil exactly when Checked is true.
type InventoryRecord struct {
	ID        int64      `json:"id"`
	SessionID int64      `json:"inventory_session_id"`
	DeviceID  int64      `json:"device_id"`
	Checked   bool       `json:"checked"`
	CheckedAt *time.Time `json:"checked_at,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Device    *Device    `json:"device,omitempty"`
}

// RecordUpsert sets a record's checked state, keyed server-side by
// (session, device) so repeated submissions are idempotent.
type RecordUpsert struct {
	DeviceID int64  `json:"device_id"`
	Checked  bool   `json:"checked"`
	Notes    string `json:"notes,omitempty"`
}

// InventoryStatistics is derived from current record state, never maintained
// incrementally.
type InventoryStatistics struct {
	TotalDevices     int     `json:"total_devices"`
	CheckedDevices   int     `json:"checked_devices"`
	RemainingDevices int     `json:"remaining_devices"`
	ProgressPercent  float64 `json:"progress_percent"`
}
