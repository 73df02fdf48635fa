package memory

import (
	"context"
	"sort"

	"github.com/hashicorp/go-memdb"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

type companyRepo struct{ v view }

func (r *companyRepo) Create(ctx context.Context, c *entity.Company) error {
	return r.v.write(ctx, "create company", func(txn *memdb.Txn) error {
		existing, err := first[entity.Company](txn, tableCompanies, "id", c.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrConflict
		}
		row := *c
		return insert(txn, tableCompanies, &row)
	})
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.v.read(ctx, "get company", func(txn *memdb.Txn) error {
		c, err := first[entity.Company](txn, tableCompanies, "id", id)
		if c != nil {
			cp := *c
			out = &cp
		}
		return err
	})
	return out, err
}

func (r *companyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	var out []*entity.Company
	err := r.v.read(ctx, "list companies", func(txn *memdb.Txn) error {
		rows, err := all[entity.Company](txn, tableCompanies, "id")
		if err != nil {
			return err
		}
		list := make([]*entity.Company, 0, len(rows))
		for _, c := range rows {
			cp := *c
			list = append(list, &cp)
		}
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		})
		out = page(list, limit, offset)
		return nil
	})
	return out, err
}

// requireCompany valida la referencia a la empresa dentro de la misma transacción.
func requireCompany(txn *memdb.Txn, companyID string) error {
	c, err := first[entity.Company](txn, tableCompanies, "id", companyID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrCompanyNotFound
	}
	return nil
}

type warehouseRepo struct{ v view }

func (r *warehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	return r.v.write(ctx, "create warehouse", func(txn *memdb.Txn) error {
		if err := requireCompany(txn, w.CompanyID); err != nil {
			return err
		}
		existing, err := first[entity.Warehouse](txn, tableWarehouses, "id", w.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrConflict
		}
		row := *w
		return insert(txn, tableWarehouses, &row)
	})
}

func (r *warehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.v.read(ctx, "get warehouse", func(txn *memdb.Txn) error {
		w, err := first[entity.Warehouse](txn, tableWarehouses, "id", id)
		if w != nil {
			cp := *w
			out = &cp
		}
		return err
	})
	return out, err
}

func (r *warehouseRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	err := r.v.read(ctx, "list warehouses", func(txn *memdb.Txn) error {
		rows, err := all[entity.Warehouse](txn, tableWarehouses, "company", companyID)
		if err != nil {
			return err
		}
		list := make([]*entity.Warehouse, 0, len(rows))
		for _, w := range rows {
			cp := *w
			list = append(list, &cp)
		}
		sort.Slice(list, func(i, j int) bool {
			return list[i].Name < list[j].Name || (list[i].Name == list[j].Name && list[i].ID < list[j].ID)
		})
		out = page(list, limit, offset)
		return nil
	})
	return out, err
}

type supplierRepo struct{ v view }

func (r *supplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	return r.v.write(ctx, "create supplier", func(txn *memdb.Txn) error {
		if err := requireCompany(txn, s.CompanyID); err != nil {
			return err
		}
		existing, err := first[entity.Supplier](txn, tableSuppliers, "id", s.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrConflict
		}
		row := *s
		return insert(txn, tableSuppliers, &row)
	})
}

func (r *supplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.v.read(ctx, "get supplier", func(txn *memdb.Txn) error {
		s, err := first[entity.Supplier](txn, tableSuppliers, "id", id)
		if s != nil {
			cp := *s
			out = &cp
		}
		return err
	})
	return out, err
}

func (r *supplierRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.v.read(ctx, "list suppliers", func(txn *memdb.Txn) error {
		rows, err := all[entity.Supplier](txn, tableSuppliers, "company", companyID)
		if err != nil {
			return err
		}
		list := make([]*entity.Supplier, 0, len(rows))
		for _, s := range rows {
			cp := *s
			list = append(list, &cp)
		}
		sort.Slice(list, func(i, j int) bool {
			return list[i].Name < list[j].Name || (list[i].Name == list[j].Name && list[i].ID < list[j].ID)
		})
		out = page(list, limit, offset)
		return nil
	})
	return out, err
}

type productRepo struct{ v view }

// copyProduct evita compartir punteros y slices con el objeto indexado.
func copyProduct(p entity.Product) *entity.Product {
	if p.SupplierID != nil {
		s := *p.SupplierID
		p.SupplierID = &s
	}
	if p.BundleComponents != nil {
		p.BundleComponents = append([]entity.BundleComponent(nil), p.BundleComponents...)
	}
	return &p
}

// Create consulta el índice único de sku dentro de la transacción de escritura antes de insertar.
func (r *productRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.v.write(ctx, "create product", func(txn *memdb.Txn) error {
		if p.SKU != "" {
			dup, err := first[entity.Product](txn, tableProducts, "sku", p.SKU)
			if err != nil {
				return err
			}
			if dup != nil {
				return domain.ErrDuplicateSKU
			}
		}
		existing, err := first[entity.Product](txn, tableProducts, "id", p.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrConflict
		}
		return insert(txn, tableProducts, copyProduct(*p))
	})
}

func (r *productRepo) get(ctx context.Context, op, index, arg string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(ctx, op, func(txn *memdb.Txn) error {
		p, err := first[entity.Product](txn, tableProducts, index, arg)
		if p != nil {
			out = copyProduct(*p)
		}
		return err
	})
	return out, err
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, "get product", "id", id)
}

func (r *productRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.get(ctx, "get product by sku", "sku", sku)
}

// List ordena por sku.
func (r *productRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.read(ctx, "list products", func(txn *memdb.Txn) error {
		rows, err := all[entity.Product](txn, tableProducts, "id")
		if err != nil {
			return err
		}
		list := make([]*entity.Product, 0, len(rows))
		for _, p := range rows {
			list = append(list, copyProduct(*p))
		}
		sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
		out = page(list, limit, offset)
		return nil
	})
	return out, err
}
