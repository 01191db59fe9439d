package backend

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ntarasov/equiptrack/internal/domain/models"
)

// CreateMovement appends a custody-change record. The backend derives the
// from location from the device's current state and rejects moves into the
// location the device is already in.
func (c *Client) CreateMovement(ctx context.Context, req models.MovementCreate) (*models.Movement, error) {
	out := new(models.Movement)
	if err := c.post(ctx, "/api/movements", req, out); err != nil {
		return nil, fmt.Errorf("creating movement: %w", err)
	}
	return out, nil
}

// ListMovements returns movement history, newest first, optionally limited
// to one device.
func (c *Client) ListMovements(ctx context.Context, deviceID int64) ([]models.Movement, error) {
	query := map[string]string{}
	if deviceID > 0 {
		query["device_id"] = strconv.FormatInt(deviceID, 10)
	}

	var out []models.Movement
	if err := c.get(ctx, "/api/movements", query, &out); err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}
	return out, nil
}
