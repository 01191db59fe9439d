package models

import "time"

// LocationType discriminates the two custody location kinds a device can be
// in. A device is always held by exactly one employee or one warehouse.
type LocationType string

const (
	LocationEmployee  LocationType = "employee"
	LocationWarehouse LocationType = "warehouse"
)

// Device mirrors the backend device resource.
type Device struct {
	ID                  int64        `json:"id"`
	CompanyID           int64        `json:"company_id"`
	DeviceTypeID        int64        `json:"device_type_id"`
	BrandID             int64        `json:"brand_id"`
	ModelID             int64        `json:"model_id"`
	SerialNumber        string       `json:"serial_number"`
	InventoryNumber     string       `json:"inventory_number"`
	CurrentLocationType LocationType `json:"current_location_type"`
	CurrentLocationID   int64        `json:"current_location_id"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           *time.Time   `json:"updated_at,omitempty"`
}

// DeviceCreate is the payload for registering a device. InventoryNumber is
// optional; the backend generates one in its COMPANY-TYPE/NNNN scheme when
// the field is empty.
type DeviceCreate struct {
	CompanyID           int64        `json:"company_id"`
	DeviceTypeID        int64        `json:"device_type_id"`
	BrandID             int64        `json:"brand_id"`
	ModelID             int64        `json:"model_id"`
	SerialNumber        string       `json:"serial_number"`
	InventoryNumber     string       `json:"inventory_number,omitempty"`
	CurrentLocationType LocationType `json:"current_location_type"`
	CurrentLocationID   int64        `json:"current_location_id"`
}

// DeviceUpdate carries the mutable device fields. Nil pointers mean
// "leave unchanged".
type DeviceUpdate struct {
	DeviceTypeID    *int64  `json:"device_type_id,omitempty"`
	BrandID         *int64  `json:"brand_id,omitempty"`
	ModelID         *int64  `json:"model_id,omitempty"`
	SerialNumber    *string `json:"serial_number,omitempty"`
	InventoryNumber *string `json:"inventory_number,omitempty"`
}

// DeviceFilter narrows device listings and reports.
type DeviceFilter struct {
	DeviceTypeID int64
	BrandID      int64
	LocationType LocationType
	LocationID   int64
}
