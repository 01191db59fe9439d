package inventory

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/ntarasov/equiptrack/internal/cache"
	"github.com/ntarasov/equiptrack/internal/domain/models"
	"github.com/ntarasov/equiptrack/pkg/clients/backend"
)

// mockAPI emulates the backend's session semantics in memory: snapshot scope
// at creation, idempotent record upserts keyed by (session, device), writes
// rejected once the session leaves active.
type mockAPI struct {
	mu            sync.Mutex
	devicesByType map[int64][]int64
	sessions      map[int64]*models.InventorySession
	records       map[int64]map[int64]*models.InventoryRecord
	nextSession   int64
	nextRecord    int64
	statsCalls    int
}

func newMockAPI(devicesByType map[int64][]int64) *mockAPI {
	return &mockAPI{
		devicesByType: devicesByType,
		sessions:      map[int64]*models.InventorySession{},
		records:       map[int64]map[int64]*models.InventoryRecord{},
		nextSession:   1,
		nextRecord:    1,
	}
}

func (m *mockAPI) CreateInventorySession(_ context.Context, req models.SessionCreate) (*models.InventorySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := &models.InventorySession{
		ID:        m.nextSession,
		Name:      req.Name,
		Status:    models.SessionActive,
		CreatedAt: time.Now(),
	}
	m.nextSession++
	m.sessions[sess.ID] = sess

	// Snapshot: one record per device of the requested types.
	recs := map[int64]*models.InventoryRecord{}
	for _, typeID := range req.DeviceTypeIDs {
		for _, deviceID := range m.devicesByType[typeID] {
			recs[deviceID] = &models.InventoryRecord{
				ID:        m.nextRecord,
				SessionID: sess.ID,
				DeviceID:  deviceID,
			}
			m.nextRecord++
		}
	}
	m.records[sess.ID] = recs
	return sess, nil
}

func (m *mockAPI) ListInventorySessions(_ context.Context, status *models.SessionStatus) ([]models.InventorySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.InventorySession
	for _, s := range m.sessions {
		if status == nil || s.Status == *status {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockAPI) GetInventorySession(_ context.Context, id int64) (*models.InventorySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, &backend.APIError{Status: http.StatusNotFound, Detail: "Inventory session not found"}
	}
	out := *s
	return &out, nil
}

func (m *mockAPI) UpdateInventorySession(_ context.Context, id int64, req models.SessionUpdate) (*models.InventorySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, &backend.APIError{Status: http.StatusNotFound, Detail: "Inventory session not found"}
	}
	if req.Status != nil {
		s.Status = *req.Status
	}
	out := *s
	return &out, nil
}

func (m *mockAPI) ListSessionRecords(_ context.Context, sessionID int64, checked *bool) ([]models.InventoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.InventoryRecord
	for _, r := range m.records[sessionID] {
		if checked == nil || r.Checked == *checked {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockAPI) GetSessionStatistics(_ context.Context, sessionID int64) (*models.InventoryStatistics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsCalls++

	var records []models.InventoryRecord
	for _, r := range m.records[sessionID] {
		records = append(records, *r)
	}
	stats := Aggregate(records)
	return &stats, nil
}

func (m *mockAPI) UpsertSessionRecord(_ context.Context, sessionID int64, req models.RecordUpsert) (*models.InventoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, &backend.APIError{Status: http.StatusNotFound, Detail: "Inventory session not found"}
	}
	if s.Status != models.SessionActive {
		return nil, &backend.APIError{Status: http.StatusBadRequest, Detail: "Cannot modify records in a non-active session"}
	}

	r, ok := m.records[sessionID][req.DeviceID]
	if !ok {
		return nil, &backend.APIError{Status: http.StatusNotFound, Detail: "Device not found"}
	}

	r.Checked = req.Checked
	r.Notes = req.Notes
	if req.Checked {
		now := time.Now()
		r.CheckedAt = &now
	} else {
		r.CheckedAt = nil
	}
	out := *r
	return &out, nil
}

func newTestService(api API) *Service {
	return NewService(api, cache.New(time.Minute), nil)
}

func TestCreateSessionValidation(t *testing.T) {
	svc := newTestService(newMockAPI(nil))
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, models.SessionCreate{Name: "  ", DeviceTypeIDs: []int64{1}})
	if !errors.Is(err, backend.ErrValidation) {
		t.Errorf("expected ErrValidation for empty name, got %v", err)
	}

	_, err = svc.CreateSession(ctx, models.SessionCreate{Name: "Jan 2025"})
	if !errors.Is(err, backend.ErrValidation) {
		t.Errorf("expected ErrValidation for empty device type set, got %v", err)
	}
}

func TestSessionScenario(t *testing.T) {
	api := newMockAPI(map[int64][]int64{1: {10, 11, 12, 13}})
	svc := newTestService(api)
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx, models.SessionCreate{Name: "Jan 2025", DeviceTypeIDs: []int64{1}})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	stats, err := svc.Statistics(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.TotalDevices != 4 || stats.CheckedDevices != 0 || stats.RemainingDevices != 4 || stats.ProgressPercent != 0 {
		t.Fatalf("unexpected initial statistics: %+v", stats)
	}

	if _, err := svc.CheckDevice(ctx, sess.ID, 10, true, ""); err != nil {
		t.Fatalf("CheckDevice: %v", err)
	}

	stats, err = svc.Statistics(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Statistics after check: %v", err)
	}
	if stats.CheckedDevices != 1 || stats.RemainingDevices != 3 || stats.ProgressPercent != 25 {
		t.Errorf("unexpected statistics after check: %+v", stats)
	}

	// The first read was cached; the check must have invalidated it.
	if api.statsCalls != 2 {
		t.Errorf("expected 2 backend statistics calls, got %d", api.statsCalls)
	}
}

func TestScopeIsSnapshot(t *testing.T) {
	api := newMockAPI(map[int64][]int64{1: {10, 11}})
	svc := newTestService(api)
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx, models.SessionCreate{Name: "Q1", DeviceTypeIDs: []int64{1}})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	// A device registered after session creation stays out of scope.
	api.mu.Lock()
	api.devicesByType[1] = append(api.devicesByType[1], 12)
	api.mu.Unlock()

	stats, err := svc.Statistics(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.TotalDevices != 2 {
		t.Errorf("expected snapshot scope of 2 devices, got %d", stats.TotalDevices)
	}
}

func TestMultipleTypeScope(t *testing.T) {
	api := newMockAPI(map[int64][]int64{1: {10, 11, 12}, 2: {20, 21}})
	svc := newTestService(api)

	sess, err := svc.CreateSession(context.Background(), models.SessionCreate{Name: "Full", DeviceTypeIDs: []int64{1, 2}})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	stats, err := svc.Statistics(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.TotalDevices != 5 {
		t.Errorf("expected 5 devices across both types, got %d", stats.TotalDevices)
	}
}

func TestCheckIdempotentAndUncheckClears(t *testing.T) {
	api := newMockAPI(map[int64][]int64{1: {10}})
	svc := newTestService(api)
	ctx := context.Background()

	sess, _ := svc.CreateSession(ctx, models.SessionCreate{Name: "S", DeviceTypeIDs: []int64{1}})

	first, err := svc.CheckDevice(ctx, sess.ID, 10, true, "shelf 3")
	if err != nil {
		t.Fatalf("first check: %v", err)
	}
	if !first.Checked || first.CheckedAt == nil {
		t.Fatalf("expected checked record with timestamp, got %+v", first)
	}

	second, err := svc.CheckDevice(ctx, sess.ID, 10, true, "shelf 3")
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected the same record on re-check, got %d and %d", first.ID, second.ID)
	}

	records, _ := svc.SessionRecords(ctx, sess.ID, nil)
	if len(records) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(records))
	}

	unchecked, err := svc.CheckDevice(ctx, sess.ID, 10, false, "")
	if err != nil {
		t.Fatalf("uncheck: %v", err)
	}
	if unchecked.Checked || unchecked.CheckedAt != nil {
		t.Errorf("expected uncheck to clear checked_at, got %+v", unchecked)
	}
}

func TestCheckRejectedOnClosedSession(t *testing.T) {
	api := newMockAPI(map[int64][]int64{1: {10, 11}})
	svc := newTestService(api)
	ctx := context.Background()

	sess, _ := svc.CreateSession(ctx, models.SessionCreate{Name: "S", DeviceTypeIDs: []int64{1}})
	if _, err := svc.CheckDevice(ctx, sess.ID, 10, true, ""); err != nil {
		t.Fatalf("CheckDevice: %v", err)
	}

	if _, err := svc.CompleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}

	_, err := svc.CheckDevice(ctx, sess.ID, 11, true, "")
	if !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}

	// Records must be unchanged by the rejected write.
	stats, _ := svc.Statistics(ctx, sess.ID)
	if stats.CheckedDevices != 1 {
		t.Errorf("expected statistics unchanged, got %+v", stats)
	}
}

func TestTransitionsAreOneWay(t *testing.T) {
	api := newMockAPI(map[int64][]int64{1: {10}})
	svc := newTestService(api)
	ctx := context.Background()

	sess, _ := svc.CreateSession(ctx, models.SessionCreate{Name: "S", DeviceTypeIDs: []int64{1}})

	if _, err := svc.CompleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}

	if _, err := svc.CancelSession(ctx, sess.ID); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed on cancel after complete, got %v", err)
	}
	if _, err := svc.CompleteSession(ctx, sess.ID); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed on repeated complete, got %v", err)
	}
}

func TestCheckUnknownDevice(t *testing.T) {
	api := newMockAPI(map[int64][]int64{1: {10}})
	svc := newTestService(api)
	ctx := context.Background()

	sess, _ := svc.CreateSession(ctx, models.SessionCreate{Name: "S", DeviceTypeIDs: []int64{1}})

	_, err := svc.CheckDevice(ctx, sess.ID, 999, true, "")
	if !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("expected ErrNotFound for device outside scope, got %v", err)
	}
}

func TestAggregate(t *testing.T) {
	if got := Aggregate(nil); got.ProgressPercent != 0 || got.TotalDevices != 0 {
		t.Errorf("expected zero statistics for no records, got %+v", got)
	}

	records := []models.InventoryRecord{
		{Checked: true}, {Checked: false}, {Checked: false},
	}
	got := Aggregate(records)
	if got.CheckedDevices+got.RemainingDevices != got.TotalDevices {
		t.Errorf("checked + remaining != total: %+v", got)
	}
	if got.ProgressPercent != 33.33 {
		t.Errorf("expected 33.33%%, got %v", got.ProgressPercent)
	}
}
