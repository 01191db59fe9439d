package backend

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ntarasov/equiptrack/internal/domain/models"
)

// Reference entity endpoints. Each maps 1:1 onto the backend's CRUD surface;
// validation (code format, uniqueness, in-use checks) happens server-side.

func (c *Client) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var out []models.Company
	if err := c.get(ctx, "/api/companies", nil, &out); err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	return out, nil
}

func (c *Client) CreateCompany(ctx context.Context, req models.CompanyCreate) (*models.Company, error) {
	out := new(models.Company)
	if err := c.post(ctx, "/api/companies", req, out); err != nil {
		return nil, fmt.Errorf("creating company: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateCompany(ctx context.Context, id int64, req models.CompanyCreate) (*models.Company, error) {
	out := new(models.Company)
	if err := c.put(ctx, fmt.Sprintf("/api/companies/%d", id), req, out); err != nil {
		return nil, fmt.Errorf("updating company %d: %w", id, err)
	}
	return out, nil
}

func (c *Client) DeleteCompany(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/api/companies/%d", id)); err != nil {
		return fmt.Errorf("deleting company %d: %w", id, err)
	}
	return nil
}

func (c *Client) ListDeviceTypes(ctx context.Context) ([]models.DeviceType, error) {
	var out []models.DeviceType
	if err := c.get(ctx, "/api/device-types", nil, &out); err != nil {
		return nil, fmt.Errorf("listing device types: %w", err)
	}
	return out, nil
}

func (c *Client) CreateDeviceType(ctx context.Context, req models.DeviceTypeCreate) (*models.DeviceType, error) {
	out := new(models.DeviceType)
	if err := c.post(ctx, "/api/device-types", req, out); err != nil {
		return nil, fmt.Errorf("creating device type: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateDeviceType(ctx context.Context, id int64, req models.DeviceTypeCreate) (*models.DeviceType, error) {
	out := new(models.DeviceType)
	if err := c.put(ctx, fmt.Sprintf("/api/device-types/%d", id), req, out); err != nil {
		return nil, fmt.Errorf("updating device type %d: %w", id, err)
	}
	return out, nil
}

func (c *Client) DeleteDeviceType(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/api/device-types/%d", id)); err != nil {
		return fmt.Errorf("deleting device type %d: %w", id, err)
	}
	return nil
}

func (c *Client) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var out []models.Brand
	if err := c.get(ctx, "/api/brands", nil, &out); err != nil {
		return nil, fmt.Errorf("listing brands: %w", err)
	}
	return out, nil
}

func (c *Client) CreateBrand(ctx context.Context, req models.BrandCreate) (*models.Brand, error) {
	out := new(models.Brand)
	if err := c.post(ctx, "/api/brands", req, out); err != nil {
		return nil, fmt.Errorf("creating brand: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateBrand(ctx context.Context, id int64, req models.BrandCreate) (*models.Brand, error) {
	out := new(models.Brand)
	if err := c.put(ctx, fmt.Sprintf("/api/brands/%d", id), req, out); err != nil {
		return nil, fmt.Errorf("updating brand %d: %w", id, err)
	}
	return out, nil
}

func (c *Client) DeleteBrand(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/api/brands/%d", id)); err != nil {
		return fmt.Errorf("deleting brand %d: %w", id, err)
	}
	return nil
}

// ListModels returns device models, optionally limited to one brand.
func (c *Client) ListModels(ctx context.Context, brandID int64) ([]models.DeviceModel, error) {
	query := map[string]string{}
	if brandID > 0 {
		query["brand_id"] = strconv.FormatInt(brandID, 10)
	}

	var out []models.DeviceModel
	if err := c.get(ctx, "/api/models", query, &out); err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	return out, nil
}

func (c *Client) CreateModel(ctx context.Context, req models.DeviceModelCreate) (*models.DeviceModel, error) {
	out := new(models.DeviceModel)
	if err := c.post(ctx, "/api/models", req, out); err != nil {
		return nil, fmt.Errorf("creating model: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateModel(ctx context.Context, id int64, req models.DeviceModelCreate) (*models.DeviceModel, error) {
	out := new(models.DeviceModel)
	if err := c.put(ctx, fmt.Sprintf("/api/models/%d", id), req, out); err != nil {
		return nil, fmt.Errorf("updating model %d: %w", id, err)
	}
	return out, nil
}

func (c *Client) DeleteModel(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/api/models/%d", id)); err != nil {
		return fmt.Errorf("deleting model %d: %w", id, err)
	}
	return nil
}

func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	if err := c.get(ctx, "/api/employees", nil, &out); err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	return out, nil
}

// ListEmployeeDevices returns the devices currently in an employee's custody.
func (c *Client) ListEmployeeDevices(ctx context.Context, employeeID int64) ([]models.Device, error) {
	var out []models.Device
	if err := c.get(ctx, fmt.Sprintf("/api/employees/%d/devices", employeeID), nil, &out); err != nil {
		return nil, fmt.Errorf("listing devices of employee %d: %w", employeeID, err)
	}
	return out, nil
}

func (c *Client) CreateEmployee(ctx context.Context, req models.EmployeeCreate) (*models.Employee, error) {
	out := new(models.Employee)
	if err := c.post(ctx, "/api/employees", req, out); err != nil {
		return nil, fmt.Errorf("creating employee: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, id int64, req models.EmployeeCreate) (*models.Employee, error) {
	out := new(models.Employee)
	if err := c.put(ctx, fmt.Sprintf("/api/employees/%d", id), req, out); err != nil {
		return nil, fmt.Errorf("updating employee %d: %w", id, err)
	}
	return out, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/api/employees/%d", id)); err != nil {
		return fmt.Errorf("deleting employee %d: %w", id, err)
	}
	return nil
}

func (c *Client) ListWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	var out []models.Warehouse
	if err := c.get(ctx, "/api/warehouses", nil, &out); err != nil {
		return nil, fmt.Errorf("listing warehouses: %w", err)
	}
	return out, nil
}

func (c *Client) CreateWarehouse(ctx context.Context, req models.WarehouseCreate) (*models.Warehouse, error) {
	out := new(models.Warehouse)
	if err := c.post(ctx, "/api/warehouses", req, out); err != nil {
		return nil, fmt.Errorf("creating warehouse: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateWarehouse(ctx context.Context, id int64, req models.WarehouseCreate) (*models.Warehouse, error) {
	out := new(models.Warehouse)
	if err := c.put(ctx, fmt.Sprintf("/api/warehouses/%d", id), req, out); err != nil {
		return nil, fmt.Errorf("updating warehouse %d: %w", id, err)
	}
	return out, nil
}

func (c *Client) DeleteWarehouse(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/api/warehouses/%d", id)); err != nil {
		return fmt.Errorf("deleting warehouse %d: %w", id, err)
	}
	return nil
}
