package backend

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ntarasov/equiptrack/internal/domain/models"
)

// GetLabelData fetches the content for one asset tag: text fields plus the
// QR image as a data URI.
func (c *Client) GetLabelData(ctx context.Context, deviceID int64) (*models.LabelData, error) {
	out := new(models.LabelData)
	if err := c.get(ctx, fmt.Sprintf("/api/labels/label-data/%d", deviceID), nil, out); err != nil {
		return nil, fmt.Errorf("getting label data for device %d: %w", deviceID, err)
	}
	return out, nil
}

// GetQRCode fetches the standalone QR image for a device.
func (c *Client) GetQRCode(ctx context.Context, deviceID int64, size int) (*models.QRCode, error) {
	query := map[string]string{}
	if size > 0 {
		query["size"] = strconv.Itoa(size)
	}

	out := new(models.QRCode)
	if err := c.get(ctx, fmt.Sprintf("/api/labels/qr/%d", deviceID), query, out); err != nil {
		return nil, fmt.Errorf("getting qr code for device %d: %w", deviceID, err)
	}
	return out, nil
}

// GetPrintPage fetches the backend's server-rendered A4 label sheet for the
// given devices. The local auto-fit renderer in internal/service/labels is
// the preferred path; this exists for parity with the backend surface.
func (c *Client) GetPrintPage(ctx context.Context, deviceIDs []int64, format string) (string, error) {
	ids := make([]string, len(deviceIDs))
	for i, id := range deviceIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"device_ids": strings.Join(ids, ","),
			"format":     format,
		}).
		SetError(&apiError{}).
		Get("/api/labels/print")
	if err := c.wrap(resp, err, "/api/labels/print"); err != nil {
		return "", fmt.Errorf("fetching print page: %w", err)
	}
	return resp.String(), nil
}
