package references

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/cache"
	"github.com/ntarasov/equiptrack/internal/domain/models"
	"github.com/ntarasov/equiptrack/pkg/clients/backend"
)

// Kind names one reference catalog. Kinds double as URL path segments.
type Kind string

const (
	KindCompanies   Kind = "companies"
	KindDeviceTypes Kind = "device-types"
	KindBrands      Kind = "brands"
	KindModels      Kind = "models"
	KindEmployees   Kind = "employees"
	KindWarehouses  Kind = "warehouses"
)

// Resource is the uniform CRUD surface every reference catalog implements.
// Payloads arrive as raw JSON so one handler can serve every kind; each
// implementation decodes into its own create type.
type Resource interface {
	List(ctx context.Context) (any, error)
	Create(ctx context.Context, payload json.RawMessage) (any, error)
	Update(ctx context.Context, id int64, payload json.RawMessage) (any, error)
	Delete(ctx context.Context, id int64) error
}

// API is the slice of the backend client the reference catalogs need.
type API interface {
	ListCompanies(ctx context.Context) ([]models.Company, error)
	CreateCompany(ctx context.Context, req models.CompanyCreate) (*models.Company, error)
	UpdateCompany(ctx context.Context, id int64, req models.CompanyCreate) (*models.Company, error)
	DeleteCompany(ctx context.Context, id int64) error

	ListDeviceTypes(ctx context.Context) ([]models.DeviceType, error)
	CreateDeviceType(ctx context.Context, req models.DeviceTypeCreate) (*models.DeviceType, error)
	UpdateDeviceType(ctx context.Context, id int64, req models.DeviceTypeCreate) (*models.DeviceType, error)
	DeleteDeviceType(ctx context.Context, id int64) error

	ListBrands(ctx context.Context) ([]models.Brand, error)
	CreateBrand(ctx context.Context, req models.BrandCreate) (*models.Brand, error)
	UpdateBrand(ctx context.Context, id int64, req models.BrandCreate) (*models.Brand, error)
	DeleteBrand(ctx context.Context, id int64) error

	ListModels(ctx context.Context, brandID int64) ([]models.DeviceModel, error)
	CreateModel(ctx context.Context, req models.DeviceModelCreate) (*models.DeviceModel, error)
	UpdateModel(ctx context.Context, id int64, req models.DeviceModelCreate) (*models.DeviceModel, error)
	DeleteModel(ctx context.Context, id int64) error

	ListEmployees(ctx context.Context) ([]models.Employee, error)
	ListEmployeeDevices(ctx context.Context, employeeID int64) ([]models.Device, error)
	CreateEmployee(ctx context.Context, req models.EmployeeCreate) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, req models.EmployeeCreate) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error

	ListWarehouses(ctx context.Context) ([]models.Warehouse, error)
	CreateWarehouse(ctx context.Context, req models.WarehouseCreate) (*models.Warehouse, error)
	UpdateWarehouse(ctx context.Context, id int64, req models.WarehouseCreate) (*models.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id int64) error
}

// Service exposes every reference catalog through one registry keyed by
// Kind, instead of a per-kind branch in each caller.
type Service struct {
	api      API
	cache    *cache.Cache
	registry map[Kind]Resource
}

func NewService(api API, c *cache.Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, cache: c, registry: map[Kind]Resource{
		KindCompanies: &catalog[models.Company, models.CompanyCreate]{
			kind: KindCompanies, cache: c, logger: logger,
			list: api.ListCompanies, create: api.CreateCompany,
			update: api.UpdateCompany, remove: api.DeleteCompany,
		},
		KindDeviceTypes: &catalog[models.DeviceType, models.DeviceTypeCreate]{
			kind: KindDeviceTypes, cache: c, logger: logger,
			list: api.ListDeviceTypes, create: api.CreateDeviceType,
			update: api.UpdateDeviceType, remove: api.DeleteDeviceType,
		},
		KindBrands: &catalog[models.Brand, models.BrandCreate]{
			kind: KindBrands, cache: c, logger: logger,
			list: api.ListBrands, create: api.CreateBrand,
			update: api.UpdateBrand, remove: api.DeleteBrand,
		},
		KindModels: &catalog[models.DeviceModel, models.DeviceModelCreate]{
			kind: KindModels, cache: c, logger: logger,
			list: func(ctx context.Context) ([]models.DeviceModel, error) {
				return api.ListModels(ctx, 0)
			},
			create: api.CreateModel,
			update: api.UpdateModel, remove: api.DeleteModel,
		},
		KindEmployees: &catalog[models.Employee, models.EmployeeCreate]{
			kind: KindEmployees, cache: c, logger: logger,
			list: api.ListEmployees, create: api.CreateEmployee,
			update: api.UpdateEmployee, remove: api.DeleteEmployee,
		},
		KindWarehouses: &catalog[models.Warehouse, models.WarehouseCreate]{
			kind: KindWarehouses, cache: c, logger: logger,
			list: api.ListWarehouses, create: api.CreateWarehouse,
			update: api.UpdateWarehouse, remove: api.DeleteWarehouse,
		},
	}}
}

// Resource resolves a catalog by kind.
func (s *Service) Resource(kind Kind) (Resource, error) {
	r, ok := s.registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown reference kind %q", backend.ErrValidation, kind)
	}
	return r, nil
}

// Kinds returns the registered catalog kinds in stable order, backing the
// reference discovery endpoint.
func (s *Service) Kinds() []Kind {
	out := make([]Kind, 0, len(s.registry))
	for k := range s.registry {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ModelsByBrand narrows the model catalog to one brand, a filter the generic
// Resource surface does not carry.
func (s *Service) ModelsByBrand(ctx context.Context, brandID int64) ([]models.DeviceModel, error) {
	key := cache.Key("references", string(KindModels), "brand", fmt.Sprintf("%d", brandID))
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.DeviceModel), nil
	}

	items, err := s.api.ListModels(ctx, brandID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, items)
	return items, nil
}

// EmployeeDevices lists the devices currently held by one employee.
func (s *Service) EmployeeDevices(ctx context.Context, employeeID int64) ([]models.Device, error) {
	return s.api.ListEmployeeDevices(ctx, employeeID)
}

// catalog adapts one set of typed backend calls to the Resource interface.
// T is the entity, C the create/update payload.
type catalog[T any, C any] struct {
	kind   Kind
	cache  *cache.Cache
	logger *zap.Logger
	list   func(ctx context.Context) ([]T, error)
	create func(ctx context.Context, req C) (*T, error)
	update func(ctx context.Context, id int64, req C) (*T, error)
	remove func(ctx context.Context, id int64) error
}

func (c *catalog[T, C]) List(ctx context.Context) (any, error) {
	key := cache.Key("references", string(c.kind))
	if v, ok := c.cache.Get(key); ok {
		return v.([]T), nil
	}

	items, err := c.list(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, items)
	return items, nil
}

func (c *catalog[T, C]) Create(ctx context.Context, payload json.RawMessage) (any, error) {
	req, err := decode[C](payload)
	if err != nil {
		return nil, err
	}

	item, err := c.create(ctx, req)
	if err != nil {
		return nil, err
	}
	c.invalidate()
	c.logger.Info("reference created", zap.String("kind", string(c.kind)))
	return item, nil
}

func (c *catalog[T, C]) Update(ctx context.Context, id int64, payload json.RawMessage) (any, error) {
	req, err := decode[C](payload)
	if err != nil {
		return nil, err
	}

	item, err := c.update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	c.invalidate()
	return item, nil
}

func (c *catalog[T, C]) Delete(ctx context.Context, id int64) error {
	if err := c.remove(ctx, id); err != nil {
		return err
	}
	c.invalidate()
	c.logger.Info("reference deleted",
		zap.String("kind", string(c.kind)),
		zap.Int64("id", id))
	return nil
}

// Reference names appear inside cached device listings and reports, so
// catalog writes drop those too.
func (c *catalog[T, C]) invalidate() {
	c.cache.Invalidate(cache.Key("references", string(c.kind)), "devices|", "reports|")
}

func decode[C any](payload json.RawMessage) (C, error) {
	var req C
	if err := json.Unmarshal(payload, &req); err != nil {
		return req, fmt.Errorf("%w: %v", backend.ErrValidation, err)
	}
	return req, nil
}
