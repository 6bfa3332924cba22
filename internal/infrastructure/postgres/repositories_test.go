package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Fletes-api/internal/domain"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	"github.com/jhoicas/Fletes-api/internal/infrastructure/postgres"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var companyCols = []string{
	"id", "identifier", "name", "capital_percentage", "current_payment_seq",
	"last_payment_year", "status", "created_at", "updated_at",
}

func TestCompanyRepo_GetByIdentifier(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`FROM companies WHERE identifier = \$1`).
		WithArgs("MVT").
		WillReturnRows(pgxmock.NewRows(companyCols).
			AddRow("c-1", "MVT", "Transportes MVT", decimal.RequireFromString("5.00"), 8, 2025, entity.CompanyStatusActive, now, now))

	c, err := postgres.NewCompanyRepository(mock).GetByIdentifier(context.Background(), "MVT")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Transportes MVT", c.Name)
	assert.True(t, c.CapitalPercentage.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 8, c.CurrentPaymentSeq)
	assert.Equal(t, 2025, c.LastPaymentYear)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepo_GetByID_NoExiste(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM companies WHERE id = \$1`).WithArgs("nope").WillReturnError(pgx.ErrNoRows)

	c, err := postgres.NewCompanyRepository(mock).GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepo_Create_IdentificadorDuplicado(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO companies`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "ux_companies_identifier"})

	err = postgres.NewCompanyRepository(mock).Create(context.Background(), &entity.Company{
		ID: "c-2", Identifier: "MVT", Name: "Otra", CapitalPercentage: decimal.NewFromInt(3),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepo_UpdatePaymentSequence(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE companies`).
		WithArgs("c-1", 2, 2025).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE companies`).
		WithArgs("c-9", 2, 2025).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := postgres.NewCompanyRepository(mock)
	require.NoError(t, repo.UpdatePaymentSequence(context.Background(), "c-1", 2, 2025))
	assert.Error(t, repo.UpdatePaymentSequence(context.Background(), "c-9", 2, 2025))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoucherRepo_UpdateResult_NoExiste(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE vouchers`).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = postgres.NewVoucherRepository(mock).UpdateResult(context.Background(), &entity.Voucher{ID: "v-x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoucherRepo_GetForShare(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM vouchers WHERE id = \$1 FOR SHARE`).WithArgs("v-1").WillReturnRows(voucherRow("v-1"))

	v, err := postgres.NewVoucherRepository(mock).GetForShare(context.Background(), "v-1")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, entity.VoucherStatusProcessing, v.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepo_SaveBatch_RechazaViajeDeOtroVoucher(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	n, err := postgres.NewTripRepository(mock).SaveBatch(context.Background(), "v-1", []*entity.Trip{sampleTrip("v-2", 3)})
	require.Error(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepo_SummaryByVoucher(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	d1 := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 8, 22, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`GROUP BY c.id, c.identifier, c.name`).
		WithArgs("v-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "identifier", "name", "count", "quantity", "amount", "min", "max"}).
			AddRow("c-1", "MVT", "Transportes MVT", 3, decimal.RequireFromString("11.55"), decimal.RequireFromString("1000.00"), d1, d2).
			AddRow("c-2", "KLX", "Carga KLX", 1, decimal.RequireFromString("2.00"), decimal.RequireFromString("40.00"), d2, d2))

	list, err := postgres.NewTripRepository(mock).SummaryByVoucher(context.Background(), "v-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "MVT", list[0].Identifier)
	assert.Equal(t, 3, list[0].TotalTrips)
	assert.Equal(t, "1000", list[0].Amount.String())
	assert.Equal(t, d1, list[0].MinTripDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepo_CountByVoucher(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trips`).WithArgs("v-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))

	n, err := postgres.NewTripRepository(mock).CountByVoucher(context.Background(), "v-1")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentReportRepo_SumTotalByCompanyYear(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`COALESCE\(SUM\(total_payment\), 0\)`).
		WithArgs("c-1", 2025).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(decimal.RequireFromString("1900.50")))

	sum, err := postgres.NewPaymentReportRepository(mock).SumTotalByCompanyYear(context.Background(), "c-1", 2025)
	require.NoError(t, err)
	assert.Equal(t, "1900.5", sum.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentReportRepo_Create_NumeroDuplicado(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO payment_reports`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "ux_payment_reports_company_year_no"})

	err = postgres.NewPaymentReportRepository(mock).Create(context.Background(), &entity.PaymentReport{ID: "p-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentReportRepo_GetByCompanyAndVoucher_NoExiste(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM payment_reports WHERE company_id = \$1 AND voucher_id = \$2`).
		WithArgs("c-1", "v-1").
		WillReturnError(pgx.ErrNoRows)

	p, err := postgres.NewPaymentReportRepository(mock).GetByCompanyAndVoucher(context.Background(), "c-1", "v-1")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidationErrorRepo_ListByVoucher(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM validation_errors`).WithArgs("v-1").
		WillReturnRows(pgxmock.NewRows([]string{"voucher_id", "row_number", "field", "message", "original_value", "severity"}).
			AddRow("v-1", 5, "quantity", "quantity debe ser mayor que cero", "-3.85", entity.SeverityError).
			AddRow("v-1", 7, "doc_type", "tipo de documento esperado PH", "XX", entity.SeverityWarning))

	list, err := postgres.NewValidationErrorRepository(mock).ListByVoucher(context.Background(), "v-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].IsFatal())
	assert.False(t, list[1].IsFatal())
	assert.NoError(t, mock.ExpectationsWereMet())
}
