package models

import "time"

// Reference entities are the lookup tables devices point into. All
// authoritative validation (code format, uniqueness, referential integrity)
// happens server-side; these structs only mirror the wire shapes.

type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

type CompanyCreate struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type DeviceType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type DeviceTypeCreate struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BrandCreate struct {
	Name string `json:"name"`
}

type DeviceModel struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	BrandID int64  `json:"brand_id"`
}

type DeviceModelCreate struct {
	Name    string `json:"name"`
	BrandID int64  `json:"brand_id"`
}

// Employee statuses.
const (
	EmployeeStatusActive = "active"
	EmployeeStatusFired  = "fired"
)

type Employee struct {
	ID             int64  `json:"id"`
	FullName       string `json:"full_name"`
	PhoneExtension string `json:"phone_extension,omitempty"`
	Status         string `json:"status"`
}

type EmployeeCreate struct {
	FullName       string `json:"full_name"`
	PhoneExtension string `json:"phone_extension,omitempty"`
}

type Warehouse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

type WarehouseCreate struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}
