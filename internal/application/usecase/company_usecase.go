package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Fletes-api/internal/application/dto"
	"github.com/jhoicas/Fletes-api/internal/domain"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	"github.com/jhoicas/Fletes-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas transportistas.
type CompanyUseCase struct {
	repo repository.CompanyRepository
	now  func() time.Time
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, now: time.Now}
}

// Create registra una empresa. El identificador se guarda en mayúsculas y la secuencia de
// pagos arranca en 1. Devuelve domain.ErrDuplicate si el identificador ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	identifier := strings.ToUpper(strings.TrimSpace(in.Identifier))
	name := strings.TrimSpace(in.Name)
	if !entity.ValidIdentifier(identifier) || name == "" {
		return nil, fmt.Errorf("%w: identifier de %d caracteres alfanuméricos y name son requeridos",
			domain.ErrInvalidInput, entity.IdentifierLength)
	}
	pct, err := decimal.NewFromString(strings.TrimSpace(in.CapitalPercentage))
	if err != nil {
		return nil, fmt.Errorf("%w: capital_percentage %q no es numérico", domain.ErrInvalidInput, in.CapitalPercentage)
	}

	existing, err := uc.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := uc.now().UTC()
	company := &entity.Company{
		ID:                uuid.New().String(),
		Identifier:        identifier,
		Name:              name,
		CapitalPercentage: pct,
		CurrentPaymentSeq: 1,
		Status:            entity.CompanyStatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if !company.ValidCapitalPercentage() {
		return nil, fmt.Errorf("%w: capital_percentage debe estar en (0, 100] con a lo sumo %d decimales",
			domain.ErrInvalidInput, entity.CapitalPercentagePlaces)
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID; (nil, nil) si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                c.ID,
		Identifier:        c.Identifier,
		Name:              c.Name,
		CapitalPercentage: c.CapitalPercentage.String(),
		CurrentPaymentSeq: c.CurrentPaymentSeq,
		LastPaymentYear:   c.LastPaymentYear,
		Status:            c.Status,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
