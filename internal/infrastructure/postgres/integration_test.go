package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biztime-api/internal/application/billing"
	"github.com/jhoicas/biztime-api/internal/application/dto"
	"github.com/jhoicas/biztime-api/internal/application/usecase"
	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/infrastructure/postgres"
	"github.com/jhoicas/biztime-api/pkg/config"
)

// newTestPool abre una base real solo si TEST_DATABASE_URL está definido.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido; se omiten los tests de integración")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE companies_industries, invoices, industries, companies RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func TestIntegration_Companies(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := postgres.NewCompanyRepository(pool)

	require.NoError(t, repo.Create(ctx, &entity.Company{Code: "apple", Name: "Apple", Description: "Maker of OSX."}))
	err := repo.Create(ctx, &entity.Company{Code: "apple", Name: "Other"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	err = repo.Create(ctx, &entity.Company{Code: "apple2", Name: "Apple"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "name es UNIQUE")

	got, err := repo.GetByCode(ctx, "apple")
	require.NoError(t, err)
	assert.Equal(t, "Maker of OSX.", got.Description)

	_, err = repo.GetByCode(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	upd := &entity.Company{Code: "apple", Name: "Apple Inc"}
	require.NoError(t, repo.Update(ctx, upd))
	assert.Equal(t, "", upd.Description)
	assert.ErrorIs(t, repo.Update(ctx, &entity.Company{Code: "nope", Name: "x"}), domain.ErrNotFound)

	list, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, "apple"))
	assert.ErrorIs(t, repo.Delete(ctx, "apple"), domain.ErrNotFound)
}

func TestIntegration_DetalleYCascada(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	require.NoError(t, postgres.Seed(ctx, pool))

	companies := usecase.NewCompanyUseCase(postgres.NewCompanyRepository(pool), postgres.NewTxRunner(pool))
	detail, err := companies.GetDetail(ctx, "ibm")
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, detail.Invoices)
	assert.Equal(t, []string{"Accounting", "Technology"}, detail.Industries)

	require.NoError(t, companies.Delete(ctx, "apple"))
	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM invoices WHERE comp_code = 'apple'`).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM companies_industries WHERE company_code = 'apple'`).Scan(&n))
	assert.Zero(t, n)
}

func TestIntegration_FacturasYPago(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	require.NoError(t, postgres.NewCompanyRepository(pool).Create(ctx, &entity.Company{Code: "apple", Name: "Apple"}))

	invoices := postgres.NewInvoiceRepository(pool)
	today := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	_, err := invoices.Create(ctx, "nope", decimal.NewFromInt(10), today)
	assert.ErrorIs(t, err, domain.ErrForeignKey)
	_, err = invoices.Create(ctx, "apple", decimal.NewFromInt(-1), today)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "CHECK amt > 0")

	inv, err := invoices.Create(ctx, "apple", decimal.RequireFromString("100.50"), today)
	require.NoError(t, err)
	assert.False(t, inv.Paid)
	assert.Nil(t, inv.PaidDate)
	assert.Equal(t, "2024-01-15", inv.AddDate.Format("2006-01-02"), "add_date sale del reloj de la aplicación")
	assert.True(t, inv.Amt.Equal(decimal.RequireFromString("100.5")))

	day := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	uc := billing.NewInvoiceUseCase(invoices, postgres.NewTxRunner(pool)).WithClock(func() time.Time { return day })
	paid := true
	amt := decimal.NewFromInt(120)

	out, err := uc.Update(ctx, inv.ID, dto.UpdateInvoiceRequest{Amt: &amt, Paid: &paid})
	require.NoError(t, err)
	require.NotNil(t, out.PaidDate)
	assert.Equal(t, "2024-02-01", *out.PaidDate)

	day = day.AddDate(0, 0, 5)
	out, err = uc.Update(ctx, inv.ID, dto.UpdateInvoiceRequest{Amt: &amt, Paid: &paid})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", *out.PaidDate)

	unpaid := false
	out, err = uc.Update(ctx, inv.ID, dto.UpdateInvoiceRequest{Amt: &amt, Paid: &unpaid})
	require.NoError(t, err)
	assert.Nil(t, out.PaidDate)

	_, err = uc.Update(ctx, 99999, dto.UpdateInvoiceRequest{Amt: &amt, Paid: &paid})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := invoices.List(ctx, entity.InvoiceFilter{CompCode: "apple", Paid: &unpaid, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)

	withCompany, err := invoices.GetWithCompany(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apple", withCompany.Company.Name)

	require.NoError(t, invoices.Delete(ctx, inv.ID))
	assert.ErrorIs(t, invoices.Delete(ctx, inv.ID), domain.ErrNotFound)
}

func TestIntegration_Industrias(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	require.NoError(t, postgres.NewCompanyRepository(pool).Create(ctx, &entity.Company{Code: "apple", Name: "Apple"}))

	repo := postgres.NewIndustryRepository(pool)
	require.NoError(t, repo.Create(ctx, &entity.Industry{Code: "tech", Name: "Technology"}))
	require.NoError(t, repo.Create(ctx, &entity.Industry{Code: "acct", Name: "Accounting"}))

	link := entity.CompanyIndustry{CompanyCode: "apple", IndustryCode: "tech"}
	require.NoError(t, repo.AddCompany(ctx, link))
	assert.ErrorIs(t, repo.AddCompany(ctx, link), domain.ErrConflict)
	assert.ErrorIs(t, repo.AddCompany(ctx, entity.CompanyIndustry{CompanyCode: "nope", IndustryCode: "tech"}), domain.ErrForeignKey)

	rows, err := repo.ListWithCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Accounting", rows[0].Industry)
	assert.Nil(t, rows[0].CompanyCode)
	require.NotNil(t, rows[1].CompanyCode)
	assert.Equal(t, "apple", *rows[1].CompanyCode)

	require.NoError(t, repo.RemoveCompany(ctx, link))
	assert.ErrorIs(t, repo.RemoveCompany(ctx, link), domain.ErrNotFound)
}
