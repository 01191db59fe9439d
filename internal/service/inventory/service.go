// Package inventory implements the reconciliation session workflow: session
// lifecycle, per-device check/uncheck, and derived progress statistics. State
// lives in the backend; this service adds client-side validation, the
// invalidate-on-write query cache, and lifecycle guards. Every write is an
// idempotent upsert keyed by (session, device) and every read recomputes from
// current record state, so concurrent scanners and out-of-order completions
// cannot lose updates or drift.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/cache"
	"github.com/ntarasov/equiptrack/internal/domain/models"
	"github.com/ntarasov/equiptrack/pkg/clients/backend"
)

// ErrSessionClosed rejects writes and transitions against a session that has
// already left the active state. Completed and cancelled are terminal.
var ErrSessionClosed = errors.New("inventory session is not active")

// API is the slice of backend operations the workflow needs.
type API interface {
	CreateInventorySession(ctx context.Context, req models.SessionCreate) (*models.InventorySession, error)
	ListInventorySessions(ctx context.Context, status *models.SessionStatus) ([]models.InventorySession, error)
	GetInventorySession(ctx context.Context, id int64) (*models.InventorySession, error)
	UpdateInventorySession(ctx context.Context, id int64, req models.SessionUpdate) (*models.InventorySession, error)
	ListSessionRecords(ctx context.Context, sessionID int64, checked *bool) ([]models.InventoryRecord, error)
	GetSessionStatistics(ctx context.Context, sessionID int64) (*models.InventoryStatistics, error)
	UpsertSessionRecord(ctx context.Context, sessionID int64, req models.RecordUpsert) (*models.InventoryRecord, error)
}

// Service orchestrates reconciliation sessions on top of the backend client.
type Service struct {
	api    API
	cache  *cache.Cache
	logger *zap.Logger
}

// NewService wires a new workflow service.
func NewService(api API, c *cache.Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, cache: c, logger: logger}
}

// CreateSession opens a session scoped to all devices whose type is in the
// given set at this moment. The scope is a snapshot: devices added to those
// types later are not retrofitted.
func (s *Service) CreateSession(ctx context.Context, req models.SessionCreate) (*models.InventorySession, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: session name is required", backend.ErrValidation)
	}
	if len(req.DeviceTypeIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one device type is required", backend.ErrValidation)
	}

	sess, err := s.api.CreateInventorySession(ctx, req)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(sessionsPrefix + "|")
	s.logger.Info("inventory session created",
		zap.Int64("session_id", sess.ID),
		zap.String("name", sess.Name),
		zap.Int("device_types", len(req.DeviceTypeIDs)))
	return sess, nil
}

// ListSessions returns sessions, optionally filtered to one status.
func (s *Service) ListSessions(ctx context.Context, status *models.SessionStatus) ([]models.InventorySession, error) {
	filter := "all"
	if status != nil {
		filter = string(*status)
	}
	key := cache.Key(sessionsPrefix, filter)

	if v, ok := s.cache.Get(key); ok {
		return v.([]models.InventorySession), nil
	}

	sessions, err := s.api.ListInventorySessions(ctx, status)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, sessions)
	return sessions, nil
}

// GetSession returns one session with its device-type scope.
func (s *Service) GetSession(ctx context.Context, id int64) (*models.InventorySession, error) {
	key := sessionKey(id)
	if v, ok := s.cache.Get(key); ok {
		return v.(*models.InventorySession), nil
	}

	sess, err := s.api.GetInventorySession(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, sess)
	return sess, nil
}

// CompleteSession transitions a session to completed. One-way.
func (s *Service) CompleteSession(ctx context.Context, id int64) (*models.InventorySession, error) {
	return s.transition(ctx, id, models.SessionCompleted)
}

// CancelSession transitions a session to cancelled. One-way.
func (s *Service) CancelSession(ctx context.Context, id int64) (*models.InventorySession, error) {
	return s.transition(ctx, id, models.SessionCancelled)
}

func (s *Service) transition(ctx context.Context, id int64, to models.SessionStatus) (*models.InventorySession, error) {
	// Fast local guard on fresh state. The backend remains authoritative:
	// a stale read that slips through surfaces the server's rejection the
	// same way.
	current, err := s.api.GetInventorySession(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.Terminal() {
		return nil, fmt.Errorf("%w: session %d is already %s", ErrSessionClosed, id, current.Status)
	}

	sess, err := s.api.UpdateInventorySession(ctx, id, models.SessionUpdate{Status: &to})
	if err != nil {
		return nil, mapClosed(err)
	}

	s.cache.Invalidate(sessionsPrefix+"|", sessionPrefix(id)+"|")
	s.logger.Info("inventory session transitioned",
		zap.Int64("session_id", id),
		zap.String("status", string(to)))
	return sess, nil
}

// SessionRecords returns the session's checklist entries joined with their
// devices, optionally filtered by checked state.
func (s *Service) SessionRecords(ctx context.Context, sessionID int64, checked *bool) ([]models.InventoryRecord, error) {
	filter := "all"
	if checked != nil {
		filter = strconv.FormatBool(*checked)
	}
	key := cache.Key(recordsPrefix(sessionID), filter)

	if v, ok := s.cache.Get(key); ok {
		return v.([]models.InventoryRecord), nil
	}

	records, err := s.api.ListSessionRecords(ctx, sessionID, checked)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, records)
	return records, nil
}

// CheckDevice idempotently sets a device's checked state within a session.
// The backend stamps checked_at on the transition to checked and clears it on
// the transition to unchecked. Both the record list and the statistics of the
// session are invalidated so no read can lag the write.
func (s *Service) CheckDevice(ctx context.Context, sessionID, deviceID int64, checked bool, notes string) (*models.InventoryRecord, error) {
	record, err := s.api.UpsertSessionRecord(ctx, sessionID, models.RecordUpsert{
		DeviceID: deviceID,
		Checked:  checked,
		Notes:    notes,
	})
	if err != nil {
		return nil, mapClosed(err)
	}

	s.cache.Invalidate(sessionsPrefix+"|", recordsPrefix(sessionID)+"|", statsPrefix(sessionID)+"|")
	s.logger.Debug("inventory record upserted",
		zap.Int64("session_id", sessionID),
		zap.Int64("device_id", deviceID),
		zap.Bool("checked", checked))
	return record, nil
}

// Statistics returns progress derived from current record state. Cached under
// the session key, so any check/uncheck drops it before the next read.
func (s *Service) Statistics(ctx context.Context, sessionID int64) (*models.InventoryStatistics, error) {
	key := statsKey(sessionID)
	if v, ok := s.cache.Get(key); ok {
		return v.(*models.InventoryStatistics), nil
	}

	stats, err := s.api.GetSessionStatistics(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, stats)
	return stats, nil
}

// Aggregate recomputes statistics from a record slice the caller already
// holds. Zero records yield zero progress, never a division by zero.
func Aggregate(records []models.InventoryRecord) models.InventoryStatistics {
	stats := models.InventoryStatistics{TotalDevices: len(records)}
	for _, r := range records {
		if r.Checked {
			stats.CheckedDevices++
		}
	}
	stats.RemainingDevices = stats.TotalDevices - stats.CheckedDevices
	if stats.TotalDevices > 0 {
		p := float64(stats.CheckedDevices) / float64(stats.TotalDevices) * 100
		stats.ProgressPercent = math.Round(p*100) / 100
	}
	return stats
}

// mapClosed translates the backend's rejection of writes against a
// non-active session into ErrSessionClosed.
func mapClosed(err error) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Status == 400 && strings.Contains(apiErr.Detail, "non-active session") {
		return fmt.Errorf("%w: %s", ErrSessionClosed, apiErr.Detail)
	}
	return err
}

const sessionsPrefix = "inventory|sessions"

func sessionPrefix(id int64) string {
	return cache.Key("inventory", "session", strconv.FormatInt(id, 10))
}

func sessionKey(id int64) string {
	return cache.Key(sessionPrefix(id), "detail")
}

func recordsPrefix(id int64) string {
	return cache.Key("inventory", "records", strconv.FormatInt(id, 10))
}

func statsPrefix(id int64) string {
	return cache.Key("inventory", "stats", strconv.FormatInt(id, 10))
}

func statsKey(id int64) string {
	return cache.Key(statsPrefix(id), "current")
}
