package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	"github.com/jhoicas/Fletes-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, identifier, name, capital_percentage, current_payment_seq,
		last_payment_year, status, created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Identifier, c.Name, c.CapitalPercentage, c.CurrentPaymentSeq,
		c.LastPaymentYear, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert company", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, "get company", `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetByIdentifier obtiene una empresa por identificador de 3 caracteres.
func (r *CompanyRepo) GetByIdentifier(ctx context.Context, identifier string) (*entity.Company, error) {
	return r.getOne(ctx, "get company by identifier",
		`SELECT `+companyColumns+` FROM companies WHERE identifier = $1`, identifier)
}

// GetForUpdate obtiene la empresa bloqueando la fila hasta el fin de la transacción.
func (r *CompanyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, "lock company",
		`SELECT `+companyColumns+` FROM companies WHERE id = $1 FOR UPDATE`, id)
}

// UpdatePaymentSequence persiste el próximo número de pago y su año.
func (r *CompanyRepo) UpdatePaymentSequence(ctx context.Context, id string, nextSeq, year int) error {
	query := `
		UPDATE companies
		   SET current_payment_seq = $2, last_payment_year = $3, updated_at = now()
		 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, nextSeq, year)
	if err != nil {
		return fmt.Errorf("update payment sequence: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update payment sequence: empresa %s no existe", id)
	}
	return nil
}

// List devuelve empresas con paginación, por identificador.
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	return r.getMany(ctx, "list companies",
		`SELECT `+companyColumns+` FROM companies ORDER BY identifier LIMIT $1 OFFSET $2`, limit, offset)
}

// ListActive devuelve todas las empresas activas.
func (r *CompanyRepo) ListActive(ctx context.Context) ([]*entity.Company, error) {
	return r.getMany(ctx, "list active companies",
		`SELECT `+companyColumns+` FROM companies WHERE status = $1 ORDER BY identifier`, entity.CompanyStatusActive)
}

func (r *CompanyRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (r *CompanyRepo) getMany(ctx context.Context, op, query string, args ...any) ([]*entity.Company, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Identifier, &c.Name, &c.CapitalPercentage, &c.CurrentPaymentSeq,
		&c.LastPaymentYear, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
