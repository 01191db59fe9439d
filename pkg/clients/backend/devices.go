package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ntarasov/equiptrack/internal/domain/models"
)

// ListDevices returns devices matching the filter. Zero-value filter fields
// are omitted from the query.
func (c *Client) ListDevices(ctx context.Context, f models.DeviceFilter) ([]models.Device, error) {
	var out []models.Device
	if err := c.get(ctx, "/api/devices", deviceQuery(f), &out); err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	return out, nil
}

// GetDevice returns a device by its identifier.
func (c *Client) GetDevice(ctx context.Context, id int64) (*models.Device, error) {
	out := new(models.Device)
	if err := c.get(ctx, fmt.Sprintf("/api/devices/%d", id), nil, out); err != nil {
		return nil, fmt.Errorf("getting device %d: %w", id, err)
	}
	return out, nil
}

// GetDeviceByInventoryNumber resolves a scanned inventory number to its
// device record.
func (c *Client) GetDeviceByInventoryNumber(ctx context.Context, number string) (*models.Device, error) {
	out := new(models.Device)
	path := "/api/devices/by-inventory/" + url.PathEscape(number)
	if err := c.get(ctx, path, nil, out); err != nil {
		return nil, fmt.Errorf("looking up inventory number %s: %w", number, err)
	}
	return out, nil
}

// CreateDevice registers a device. When req.InventoryNumber is empty the
// backend generates one.
func (c *Client) CreateDevice(ctx context.Context, req models.DeviceCreate) (*models.Device, error) {
	out := new(models.Device)
	if err := c.post(ctx, "/api/devices", req, out); err != nil {
		return nil, fmt.Errorf("creating device: %w", err)
	}
	return out, nil
}

// UpdateDevice changes device attributes. Custody is changed through
// movements, never here.
func (c *Client) UpdateDevice(ctx context.Context, id int64, req models.DeviceUpdate) (*models.Device, error) {
	out := new(models.Device)
	if err := c.put(ctx, fmt.Sprintf("/api/devices/%d", id), req, out); err != nil {
		return nil, fmt.Errorf("updating device %d: %w", id, err)
	}
	return out, nil
}

// DeleteDevice removes a device.
func (c *Client) DeleteDevice(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/api/devices/%d", id)); err != nil {
		return fmt.Errorf("deleting device %d: %w", id, err)
	}
	return nil
}

func deviceQuery(f models.DeviceFilter) map[string]string {
	query := map[string]string{}
	if f.DeviceTypeID > 0 {
		query["device_type_id"] = strconv.FormatInt(f.DeviceTypeID, 10)
	}
	if f.BrandID > 0 {
		query["brand_id"] = strconv.FormatInt(f.BrandID, 10)
	}
	if f.LocationType != "" {
		query["location_type"] = string(f.LocationType)
	}
	if f.LocationID > 0 {
		query["location_id"] = strconv.FormatInt(f.LocationID, 10)
	}
	return query
}
