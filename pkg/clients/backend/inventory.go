package backend

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ntarasov/equiptrack/internal/domain/models"
)

// CreateInventorySession opens a reconciliation session. The backend snapshots
// every device of the requested types into session records at this moment.
func (c *Client) CreateInventorySession(ctx context.Context, req models.SessionCreate) (*models.InventorySession, error) {
	out := new(models.InventorySession)
	if err := c.post(ctx, "/api/inventory/sessions", req, out); err != nil {
		return nil, fmt.Errorf("creating inventory session: %w", err)
	}
	return out, nil
}

// ListInventorySessions returns sessions, newest first, optionally filtered
// to one status.
func (c *Client) ListInventorySessions(ctx context.Context, status *models.SessionStatus) ([]models.InventorySession, error) {
	query := map[string]string{}
	if status != nil {
		query["status"] = string(*status)
	}

	var out []models.InventorySession
	if err := c.get(ctx, "/api/inventory/sessions", query, &out); err != nil {
		return nil, fmt.Errorf("listing inventory sessions: %w", err)
	}
	return out, nil
}

// GetInventorySession returns a session by ID.
func (c *Client) GetInventorySession(ctx context.Context, id int64) (*models.InventorySession, error) {
	out := new(models.InventorySession)
	if err := c.get(ctx, fmt.Sprintf("/api/inventory/sessions/%d", id), nil, out); err != nil {
		return nil, fmt.Errorf("getting inventory session %d: %w", id, err)
	}
	return out, nil
}

// UpdateInventorySession changes session metadata or status.
func (c *Client) UpdateInventorySession(ctx context.Context, id int64, req models.SessionUpdate) (*models.InventorySession, error) {
	out := new(models.InventorySession)
	if err := c.put(ctx, fmt.Sprintf("/api/inventory/sessions/%d", id), req, out); err != nil {
		return nil, fmt.Errorf("updating inventory session %d: %w", id, err)
	}
	return out, nil
}

// ListSessionRecords returns the session's checklist entries, each joined
// with its device. Pass checked to keep only (un)checked entries.
func (c *Client) ListSessionRecords(ctx context.Context, sessionID int64, checked *bool) ([]models.InventoryRecord, error) {
	query := map[string]string{}
	if checked != nil {
		query["checked"] = strconv.FormatBool(*checked)
	}

	var out []models.InventoryRecord
	if err := c.get(ctx, fmt.Sprintf("/api/inventory/sessions/%d/devices", sessionID), query, &out); err != nil {
		return nil, fmt.Errorf("listing records of session %d: %w", sessionID, err)
	}
	return out, nil
}

// GetSessionStatistics returns progress derived from current record state.
func (c *Client) GetSessionStatistics(ctx context.Context, sessionID int64) (*models.InventoryStatistics, error) {
	out := new(models.InventoryStatistics)
	if err := c.get(ctx, fmt.Sprintf("/api/inventory/sessions/%d/statistics", sessionID), nil, out); err != nil {
		return nil, fmt.Errorf("getting statistics of session %d: %w", sessionID, err)
	}
	return out, nil
}

// UpsertSessionRecord sets a device's checked state in a session. The write
// is idempotent: the backend keys it by (session, device).
func (c *Client) UpsertSessionRecord(ctx context.Context, sessionID int64, req models.RecordUpsert) (*models.InventoryRecord, error) {
	out := new(models.InventoryRecord)
	if err := c.post(ctx, fmt.Sprintf("/api/inventory/sessions/%d/records", sessionID), req, out); err != nil {
		return nil, fmt.Errorf("upserting record in session %d: %w", sessionID, err)
	}
	return out, nil
}
