package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biztime-api/internal/application/billing"
	"github.com/jhoicas/biztime-api/internal/application/dto"
	"github.com/jhoicas/biztime-api/internal/domain"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
)

type fakePDF struct{ err error }

func (f fakePDF) GenerateInvoicePDF(_ context.Context, inv *entity.InvoiceWithCompany) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake " + inv.Company.Name), nil
}

type fakeXML struct{}

func (fakeXML) Build(inv *entity.InvoiceWithCompany) ([]byte, string, error) {
	return []byte("<Invoice/>"), "abc123", nil
}

func TestDocumentUseCase(t *testing.T) {
	uc, store, _ := newInvoiceUC(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateInvoiceRequest{CompCode: "apple", Amt: amt("9.99")})
	require.NoError(t, err)

	docs := billing.NewDocumentUseCase(store.Invoices(), fakePDF{}, fakeXML{})

	pdf, err := docs.InvoicePDF(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdf.ContentType)
	assert.Equal(t, "%PDF-fake Apple", string(pdf.Content))
	assert.Contains(t, pdf.Filename, ".pdf")

	xml, err := docs.InvoiceXML(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "application/xml", xml.ContentType)
	assert.Equal(t, "abc123", xml.Digest)

	_, err = docs.InvoicePDF(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = docs.InvoiceXML(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentUseCase_FalloDelGenerador(t *testing.T) {
	uc, store, _ := newInvoiceUC(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateInvoiceRequest{CompCode: "apple", Amt: amt("1")})
	require.NoError(t, err)

	boom := errors.New("boom")
	docs := billing.NewDocumentUseCase(store.Invoices(), fakePDF{err: boom}, fakeXML{})
	_, err = docs.InvoicePDF(ctx, created.ID)
	assert.ErrorIs(t, err, boom)
}
