// Package xmldoc serializa facturas a XML y calcula el digest de su forma canónica (C14N).
package xmldoc

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/biztime-api/internal/application/billing"
	"github.com/jhoicas/biztime-api/internal/application/dto"
	"github.com/jhoicas/biztime-api/internal/domain/entity"
)

// Namespace del documento de factura.
const NsInvoice = "urn:biztime:invoice:1"

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

var _ billing.InvoiceXMLBuilder = (*Builder)(nil)

// Builder construye el XML de una factura con su empresa.
type Builder struct{}

// NewBuilder crea el builder.
func NewBuilder() *Builder { return &Builder{} }

// Build genera el documento y el SHA-256 (hex) de su forma canónica.
// El digest no depende de la declaración XML, solo del elemento raíz.
func (b *Builder) Build(inv *entity.InvoiceWithCompany) ([]byte, string, error) {
	if inv == nil {
		return nil, "", fmt.Errorf("xmldoc: factura nil")
	}
	doc := etree.NewDocument()
	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", NsInvoice)
	root.CreateAttr("id", fmt.Sprintf("%d", inv.ID))

	root.CreateElement("ID").SetText(fmt.Sprintf("%d", inv.ID))
	root.CreateElement("IssueDate").SetText(inv.AddDate.Format(dto.DateLayout))

	amt := root.CreateElement("Amount")
	amt.CreateAttr("currency", "USD")
	amt.SetText(inv.Amt.StringFixed(2))

	pay := root.CreateElement("Payment")
	pay.CreateAttr("paid", fmt.Sprintf("%t", inv.Paid))
	if inv.PaidDate != nil {
		pay.CreateElement("PaidDate").SetText(inv.PaidDate.Format(dto.DateLayout))
	}

	company := root.CreateElement("Company")
	company.CreateAttr("code", inv.CompCode)
	company.CreateElement("Name").SetText(inv.Company.Name)
	if inv.Company.Description != "" {
		company.CreateElement("Description").SetText(inv.Company.Description)
	}

	doc.Indent(2)
	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("xmldoc: serializar: %w", err)
	}
	digest, err := Digest(body)
	if err != nil {
		return nil, "", err
	}
	out := make([]byte, 0, len(xmlHeader)+len(body))
	out = append(out, xmlHeader...)
	out = append(out, body...)
	return out, digest, nil
}

// Canonicalize devuelve la forma C14N del documento.
func Canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	out, err := c14n.Canonicalize(dec)
	if err != nil {
		return nil, fmt.Errorf("xmldoc: c14n: %w", err)
	}
	return out, nil
}

// Digest SHA-256 hex de la forma canónica de data.
func Digest(data []byte) (string, error) {
	canonical, err := Canonicalize(data)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
