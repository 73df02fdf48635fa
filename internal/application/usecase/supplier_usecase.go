package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// SupplierUseCase registro y consulta de proveedores de una empresa.
type SupplierUseCase struct {
	repo        repository.SupplierRepository
	companyRepo repository.CompanyRepository
	timeout     time.Duration
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, companyRepo repository.CompanyRepository, timeout time.Duration) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, companyRepo: companyRepo, timeout: timeout}
}

// Create registra un proveedor en la empresa.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	email := strings.TrimSpace(in.ContactEmail)
	if email != "" && !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("contact_email", "no es un correo válido")
	}
	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	if err := requireCompany(ctx, uc.companyRepo, companyID); err != nil {
		return nil, err
	}
	supplier := &entity.Supplier{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         name,
		ContactEmail: email,
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List lista proveedores de la empresa.
func (uc *SupplierUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	if err := requireCompany(ctx, uc.companyRepo, companyID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		CompanyID:    s.CompanyID,
		Name:         s.Name,
		ContactEmail: s.ContactEmail,
		ContactPhone: s.ContactPhone,
		CreatedAt:    s.CreatedAt,
	}
}
