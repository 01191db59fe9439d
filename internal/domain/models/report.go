package models

// LocationReport is one entry of the what-is-where report: a location and
// the devices currently in its custody.
type LocationReport struct {
	LocationType   LocationType    `json:"location_type"`
	LocationID     int64           `json:"location_id"`
	LocationName   string          `json:"location_name"`
	PhoneExtension string          `json:"phone_extension,omitempty"`
	DeviceCount    int             `json:"device_count"`
	Devices        []DeviceSummary `json:"devices"`
}

// DeviceSummary is the trimmed device shape used inside reports.
type DeviceSummary struct {
	ID              int64  `json:"id"`
	InventoryNumber string `json:"inventory_number"`
	SerialNumber    string `json:"serial_number"`
}

// CSVExport is a downloaded report blob.
type CSVExport struct {
	Filename string
	Data     []byte
}
