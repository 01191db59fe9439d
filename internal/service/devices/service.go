package devices

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/cache"
	"github.com/ntarasov/equiptrack/internal/domain/models"
	"github.com/ntarasov/equiptrack/pkg/clients/backend"
)

// API is the slice of the backend client the device service needs.
type API interface {
	ListDevices(ctx context.Context, f models.DeviceFilter) ([]models.Device, error)
	GetDevice(ctx context.Context, id int64) (*models.Device, error)
	GetDeviceByInventoryNumber(ctx context.Context, number string) (*models.Device, error)
	CreateDevice(ctx context.Context, req models.DeviceCreate) (*models.Device, error)
	UpdateDevice(ctx context.Context, id int64, req models.DeviceUpdate) (*models.Device, error)
	DeleteDevice(ctx context.Context, id int64) error
}

// Service wraps the device catalog with read caching. Lookups by inventory
// number are never cached: scan flows need the live state.
type Service struct {
	api    API
	cache  *cache.Cache
	logger *zap.Logger
}

func NewService(api API, c *cache.Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, cache: c, logger: logger}
}

func (s *Service) List(ctx context.Context, f models.DeviceFilter) ([]models.Device, error) {
	key := listKey(f)
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.Device), nil
	}

	devices, err := s.api.ListDevices(ctx, f)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, devices)
	return devices, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Device, error) {
	key := cache.Key("devices", "id", strconv.FormatInt(id, 10))
	if v, ok := s.cache.Get(key); ok {
		d := v.(models.Device)
		return &d, nil
	}

	device, err := s.api.GetDevice(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, *device)
	return device, nil
}

// FindByInventoryNumber resolves a scanned or typed inventory number,
// bypassing the cache.
func (s *Service) FindByInventoryNumber(ctx context.Context, number string) (*models.Device, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, fmt.Errorf("%w: inventory number is required", backend.ErrValidation)
	}
	return s.api.GetDeviceByInventoryNumber(ctx, number)
}

func (s *Service) Create(ctx context.Context, req models.DeviceCreate) (*models.Device, error) {
	device, err := s.api.CreateDevice(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	s.logger.Info("device created",
		zap.Int64("device_id", device.ID),
		zap.String("inventory_number", device.InventoryNumber))
	return device, nil
}

func (s *Service) Update(ctx context.Context, id int64, req models.DeviceUpdate) (*models.Device, error) {
	device, err := s.api.UpdateDevice(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return device, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteDevice(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	s.logger.Info("device deleted", zap.Int64("device_id", id))
	return nil
}

func (s *Service) invalidate() {
	s.cache.Invalidate("devices|", "reports|")
}

func listKey(f models.DeviceFilter) string {
	parts := []string{"devices", "list"}
	if f.DeviceTypeID != 0 {
		parts = append(parts, "type="+strconv.FormatInt(f.DeviceTypeID, 10))
	}
	if f.BrandID != 0 {
		parts = append(parts, "brand="+strconv.FormatInt(f.BrandID, 10))
	}
	if f.LocationType != "" {
		parts = append(parts, "loc="+string(f.LocationType))
	}
	if f.LocationID != 0 {
		parts = append(parts, "loc_id="+strconv.FormatInt(f.LocationID, 10))
	}
	return cache.Key(parts...)
}
