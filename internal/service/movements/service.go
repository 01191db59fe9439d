package movements

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/cache"
	"github.com/ntarasov/equiptrack/internal/domain/models"
	"github.com/ntarasov/equiptrack/pkg/clients/backend"
)

// API is the slice of the backend client the movement service needs.
type API interface {
	CreateMovement(ctx context.Context, req models.MovementCreate) (*models.Movement, error)
	ListMovements(ctx context.Context, deviceID int64) ([]models.Movement, error)
}

// Service records custody changes. A movement implicitly updates the
// device's current location, so creating one drops the device caches too.
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

func (s *Service) Move(ctx context.Context, req models.MovementCreate) (*models.Movement, error) {
	if req.DeviceID == 0 {
		return nil, fmt.Errorf("%w: device is required", backend.ErrValidation)
	}
	if req.ToLocationType != models.LocationEmployee && req.ToLocationType != models.LocationWarehouse {
		return nil, fmt.Errorf("%w: unknown location type %q", backend.ErrValidation, req.ToLocationType)
	}
	if req.ToLocationID == 0 {
		return nil, fmt.Errorf("%w: target location is required", backend.ErrValidation)
	}

	movement, err := s.api.CreateMovement(ctx, req)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate("devices|", "movements|", "reports|")
	s.logger.Info("device moved",
		zap.Int64("device_id", movement.DeviceID),
		zap.String("to_type", string(movement.ToLocationType)),
		zap.Int64("to_id", movement.ToLocationID))
	return movement, nil
}

// History lists a device's movements, newest first per the backend ordering.
func (s *Service) History(ctx context.Context, deviceID int64) ([]models.Movement, error) {
	key := cache.Key("movements", "device", strconv.FormatInt(deviceID, 10))
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.Movement), nil
	}

	history, err := s.api.ListMovements(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, history)
	return history, nil
}
