package billing

import (
	"context"
	"fmt"
)

// DocumentUseCase genera las representaciones descargables de una factura (PDF y XML).
type DocumentUseCase struct {
	invoiceRepo InvoiceReader
	pdf         InvoicePDFGenerator
	xml         InvoiceXMLBuilder
}

// Document bytes listos para servir.
type Document struct {
	Content     []byte
	Filename    string
	ContentType string
	Digest      string // solo XML: SHA-256 de la forma canónica
}

// NewDocumentUseCase construye el caso de uso inyectando todas sus dependencias.
func NewDocumentUseCase(invoiceRepo InvoiceReader, pdf InvoicePDFGenerator, xml InvoiceXMLBuilder) *DocumentUseCase {
	return &DocumentUseCase{invoiceRepo: invoiceRepo, pdf: pdf, xml: xml}
}

// InvoicePDF genera el PDF de la factura. domain.ErrNotFound si no existe.
func (uc *DocumentUseCase) InvoicePDF(ctx context.Context, id int64) (*Document, error) {
	inv, err := uc.invoiceRepo.GetWithCompany(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("factura %d: %w", id, err)
	}
	content, err := uc.pdf.GenerateInvoicePDF(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return &Document{
		Content:     content,
		Filename:    fmt.Sprintf("invoice_%d.pdf", inv.ID),
		ContentType: "application/pdf",
	}, nil
}

// InvoiceXML serializa la factura a XML. domain.ErrNotFound si no existe.
func (uc *DocumentUseCase) InvoiceXML(ctx context.Context, id int64) (*Document, error) {
	inv, err := uc.invoiceRepo.GetWithCompany(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("factura %d: %w", id, err)
	}
	content, digest, err := uc.xml.Build(inv)
	if err != nil {
		return nil, fmt.Errorf("xml: generación fallida: %w", err)
	}
	return &Document{
		Content:     content,
		Filename:    fmt.Sprintf("invoice_%d.xml", inv.ID),
		ContentType: "application/xml",
		Digest:      digest,
	}, nil
}
