package billing_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biztime-api/internal/application/billing"
	"github.com/jhoicas/biztime-api/internal/application/dto"
	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
	"github.com/jhoicas/biztime-api/internal/testutil/memstore"
	"github.com/jhoicas/biztime-api/pkg/logger"
)

var (
	day1 = time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)
	day2 = time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC)
)

func amt(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func boolPtr(b bool) *bool { return &b }

// clock reloj manipulable.
type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newInvoiceUC(t *testing.T) (*billing.InvoiceUseCase, *memstore.Store, *clock) {
	t.Helper()
	clk := &clock{now: day1}
	store := memstore.New()
	require.NoError(t, store.Companies().Create(context.Background(), &entity.Company{Code: "apple", Name: "Apple"}))
	uc := billing.NewInvoiceUseCase(store.Invoices(), store.TxRunner()).WithClock(clk.Now)
	return uc, store, clk
}

func TestInvoiceCreate_NuevaSinPagar(t *testing.T) {
	uc, _, _ := newInvoiceUC(t)
	out, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{CompCode: "apple", Amt: amt("100")})
	require.NoError(t, err)
	assert.False(t, out.Paid)
	assert.Nil(t, out.PaidDate)
	assert.Equal(t, "2024-01-10", out.AddDate)
	assert.True(t, out.Amt.Equal(decimal.NewFromInt(100)))
}

func TestInvoiceCreate_Validaciones(t *testing.T) {
	uc, _, _ := newInvoiceUC(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   dto.CreateInvoiceRequest
		want error
	}{
		{"sin comp_code", dto.CreateInvoiceRequest{Amt: amt("1")}, domain.ErrInvalidInput},
		{"sin amt", dto.CreateInvoiceRequest{CompCode: "apple"}, domain.ErrInvalidInput},
		{"amt cero", dto.CreateInvoiceRequest{CompCode: "apple", Amt: amt("0")}, domain.ErrInvalidInput},
		{"amt negativo", dto.CreateInvoiceRequest{CompCode: "apple", Amt: amt("-5")}, domain.ErrInvalidInput},
		{"empresa inexistente", dto.CreateInvoiceRequest{CompCode: "nope", Amt: amt("5")}, domain.ErrForeignKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// Secuencia completa de la máquina de estados a través del caso de uso.
func TestInvoiceUpdate_TransicionesDePago(t *testing.T) {
	uc, _, clk := newInvoiceUC(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateInvoiceRequest{CompCode: "apple", Amt: amt("100")})
	require.NoError(t, err)

	// Unpaid -> Paid fija la fecha de hoy.
	out, err := uc.Update(ctx, created.ID, dto.UpdateInvoiceRequest{Amt: amt("150"), Paid: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, out.Paid)
	require.NotNil(t, out.PaidDate)
	assert.Equal(t, "2024-01-10", *out.PaidDate)
	assert.True(t, out.Amt.Equal(decimal.NewFromInt(150)))

	// Paid -> Paid otro día conserva la fecha original.
	clk.now = day2
	out, err = uc.Update(ctx, created.ID, dto.UpdateInvoiceRequest{Amt: amt("175"), Paid: boolPtr(true)})
	require.NoError(t, err)
	require.NotNil(t, out.PaidDate)
	assert.Equal(t, "2024-01-10", *out.PaidDate)
	assert.True(t, out.Amt.Equal(decimal.NewFromInt(175)))

	// Paid -> Unpaid borra la fecha.
	out, err = uc.Update(ctx, created.ID, dto.UpdateInvoiceRequest{Amt: amt("175"), Paid: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, out.Paid)
	assert.Nil(t, out.PaidDate)

	// Unpaid -> Unpaid sigue sin fecha.
	out, err = uc.Update(ctx, created.ID, dto.UpdateInvoiceRequest{Amt: amt("10"), Paid: boolPtr(false)})
	require.NoError(t, err)
	assert.Nil(t, out.PaidDate)

	// Volver a pagar toma la fecha nueva.
	out, err = uc.Update(ctx, created.ID, dto.UpdateInvoiceRequest{Amt: amt("10"), Paid: boolPtr(true)})
	require.NoError(t, err)
	require.NotNil(t, out.PaidDate)
	assert.Equal(t, "2024-01-12", *out.PaidDate)
}

func TestInvoiceUpdate_InexistenteNoEscribe(t *testing.T) {
	uc, store, _ := newInvoiceUC(t)
	_, err := uc.Update(context.Background(), 999, dto.UpdateInvoiceRequest{Amt: amt("1"), Paid: boolPtr(true)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, store.InvoiceCount())
}

func TestInvoiceUpdate_CamposRequeridos(t *testing.T) {
	uc, _, _ := newInvoiceUC(t)
	ctx := context.Background()
	_, err := uc.Update(ctx, 1, dto.UpdateInvoiceRequest{Amt: amt("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, 1, dto.UpdateInvoiceRequest{Paid: boolPtr(true)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceGet_ConEmpresa(t *testing.T) {
	uc, _, _ := newInvoiceUC(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateInvoiceRequest{CompCode: "apple", Amt: amt("42.5")})
	require.NoError(t, err)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, dto.CompanyResponse{Code: "apple", Name: "Apple"}, got.Company)

	_, err = uc.Get(ctx, 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceList_Filtros(t *testing.T) {
	uc, store, _ := newInvoiceUC(t)
	ctx := context.Background()
	require.NoError(t, store.Companies().Create(ctx, &entity.Company{Code: "ibm", Name: "IBM"}))
	a, err := uc.Create(ctx, dto.CreateInvoiceRequest{CompCode: "apple", Amt: amt("1")})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateInvoiceRequest{CompCode: "ibm", Amt: amt("2")})
	require.NoError(t, err)
	_, err = uc.Update(ctx, a.ID, dto.UpdateInvoiceRequest{Amt: amt("1"), Paid: boolPtr(true)})
	require.NoError(t, err)

	all, err := uc.List(ctx, dto.InvoiceListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCompany, err := uc.List(ctx, dto.InvoiceListRequest{CompCode: "ibm"})
	require.NoError(t, err)
	require.Len(t, byCompany, 1)
	assert.Equal(t, "ibm", byCompany[0].CompCode)

	paid, err := uc.List(ctx, dto.InvoiceListRequest{Paid: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, a.ID, paid[0].ID)
}

func TestInvoiceDelete(t *testing.T) {
	uc, _, _ := newInvoiceUC(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateInvoiceRequest{CompCode: "apple", Amt: amt("1")})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestInvoice_FalloDeTransporte(t *testing.T) {
	uc, store, _ := newInvoiceUC(t)
	store.Fail = errors.New("dial tcp: connection refused")
	_, err := uc.List(context.Background(), dto.InvoiceListRequest{})
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

// add_date y paid_date salen del mismo reloj: cerca de medianoche en una zona distinta de UTC
// la fecha de pago nunca queda antes de la de emisión.
func TestInvoice_FechasDelMismoReloj(t *testing.T) {
	uc, _, clk := newInvoiceUC(t)
	ctx := context.Background()
	bogota := time.FixedZone("COT", -5*60*60)
	clk.now = time.Date(2024, 1, 10, 23, 59, 0, 0, bogota)

	created, err := uc.Create(ctx, dto.CreateInvoiceRequest{CompCode: "apple", Amt: amt("10")})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", created.AddDate)

	out, err := uc.Update(ctx, created.ID, dto.UpdateInvoiceRequest{Amt: amt("10"), Paid: boolPtr(true)})
	require.NoError(t, err)
	require.NotNil(t, out.PaidDate)
	assert.Equal(t, "2024-01-10", *out.PaidDate)
	assert.GreaterOrEqual(t, *out.PaidDate, created.AddDate)
}

func TestInvoiceUpdate_RegistraSoloElPrimerPago(t *testing.T) {
	uc, _, clk := newInvoiceUC(t)
	var buf bytes.Buffer
	uc.WithLogger(logger.New(logger.Config{Env: "production", Level: "info", Output: &buf}))
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateInvoiceRequest{CompCode: "apple", Amt: amt("10")})
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, dto.UpdateInvoiceRequest{Amt: amt("10"), Paid: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "factura pagada"))
	assert.Contains(t, buf.String(), `"paid_date":"2024-01-10`)

	clk.now = day2
	_, err = uc.Update(ctx, created.ID, dto.UpdateInvoiceRequest{Amt: amt("10"), Paid: boolPtr(true)})
	require.NoError(t, err)
	_, err = uc.Update(ctx, created.ID, dto.UpdateInvoiceRequest{Amt: amt("10"), Paid: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "factura pagada"))
}
