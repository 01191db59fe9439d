package models

// LabelData is the content printed on a physical asset tag. QRCode is a
// data URI (PNG) rendered by the backend from the inventory number.
type LabelData struct {
	DeviceID        int64  `json:"device_id"`
	InventoryNumber string `json:"inventory_number"`
	SerialNumber    string `json:"serial_number"`
	ModelName       string `json:"model_name"`
	QRCode          string `json:"qr_code"`
}

// QRCode is the standalone QR response for a device.
type QRCode struct {
	DeviceID        int64  `json:"device_id"`
	InventoryNumber string `json:"inventory_number"`
	QRCode          string `json:"qr_code"`
}
