package backend

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/ntarasov/equiptrack/internal/domain/models"
)

// DevicesReport returns the filtered device list from the reporting endpoint.
func (c *Client) DevicesReport(ctx context.Context, f models.DeviceFilter) ([]models.Device, error) {
	var out []models.Device
	if err := c.get(ctx, "/api/reports/devices", deviceQuery(f), &out); err != nil {
		return nil, fmt.Errorf("fetching devices report: %w", err)
	}
	return out, nil
}

// ExportDevicesCSV downloads the devices report as a CSV blob. The filename
// comes from the Content-Disposition header when present.
func (c *Client) ExportDevicesCSV(ctx context.Context, f models.DeviceFilter) (*models.CSVExport, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(deviceQuery(f)).
		SetError(&apiError{}).
		Get("/api/reports/devices/export")
	if err := c.wrap(resp, err, "/api/reports/devices/export"); err != nil {
		return nil, fmt.Errorf("exporting devices report: %w", err)
	}

	filename := "devices_report.csv"
	if cd := resp.Header().Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			filename = params["filename"]
		}
	}

	return &models.CSVExport{
		Filename: filename,
		Data:     append([]byte(nil), resp.Body()...),
	}, nil
}

// LocationsReport returns the what-is-where report, optionally limited to
// one location kind.
func (c *Client) LocationsReport(ctx context.Context, locationType models.LocationType) ([]models.LocationReport, error) {
	query := map[string]string{}
	if locationType != "" {
		query["location_type"] = strings.ToLower(string(locationType))
	}

	var out []models.LocationReport
	if err := c.get(ctx, "/api/reports/locations", query, &out); err != nil {
		return nil, fmt.Errorf("fetching locations report: %w", err)
	}
	return out, nil
}
