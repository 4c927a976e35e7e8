package http

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biztime-api/internal/application/billing"
	"github.com/jhoicas/biztime-api/internal/application/dto"
	"github.com/jhoicas/biztime-api/internal/domain"
)

// InvoiceHandler maneja las peticiones HTTP de facturas y sus documentos.
type InvoiceHandler struct {
	uc   *billing.InvoiceUseCase
	docs *billing.DocumentUseCase
}

// NewInvoiceHandler construye el handler. docs puede ser nil si no se exponen documentos.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, docs *billing.DocumentUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, docs: docs}
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Param        limit      query  int     false  "Límite"  default(100)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Param        comp_code  query  string  false  "Filtrar por empresa"
// @Param        paid       query  bool    false  "Filtrar por estado de pago"
// @Success      200        {array}   dto.InvoiceResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	in := dto.InvoiceListRequest{
		Page:     pageFromQuery(c),
		CompCode: c.Query("comp_code"),
	}
	if raw := c.Query("paid"); raw != "" {
		paid, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "VALIDATION", "paid debe ser true o false")
		}
		in.Paid = &paid
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener factura con su empresa
// @Tags         invoices
// @Produce      json
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceDetailEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	id, err := invoiceID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.InvoiceDetailEnvelope{Invoice: *out})
}

// Create godoc
// @Summary      Crear factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "comp_code y amt"
// @Success      201   {object}  dto.InvoiceEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InvoiceEnvelope{Invoice: *out})
}

// Update godoc
// @Summary      Actualizar monto y estado de pago
// @Description  paid=true sobre una factura sin pagar fija paid_date a hoy; si ya estaba pagada lo conserva. paid=false lo borra.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID de la factura"
// @Param        body  body  dto.UpdateInvoiceRequest  true  "amt y paid"
// @Success      200   {object}  dto.InvoiceEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	id, err := invoiceID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateInvoiceRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.InvoiceEnvelope{Invoice: *out})
}

// Delete godoc
// @Summary      Eliminar factura
// @Tags         invoices
// @Produce      json
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, err := invoiceID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.Deleted)
}

// PDF godoc
// @Summary      Descargar la factura en PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	id, err := invoiceID(c)
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.docs.InvoicePDF(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendDocument(c, doc, "inline")
}

// XML godoc
// @Summary      Descargar la factura en XML
// @Description  El header ETag lleva el SHA-256 de la forma canónica (C14N) del documento.
// @Tags         invoices
// @Produce      application/xml
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {file}    binary
// @Success      304  "Sin cambios respecto a If-None-Match"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /invoices/{id}/xml [get]
func (h *InvoiceHandler) XML(c *fiber.Ctx) error {
	id, err := invoiceID(c)
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.docs.InvoiceXML(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	etag := `"` + doc.Digest + `"`
	if c.Get(fiber.HeaderIfNoneMatch) == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Set(fiber.HeaderETag, etag)
	return sendDocument(c, doc, "attachment")
}

func sendDocument(c *fiber.Ctx, doc *billing.Document, disposition string) error {
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, disposition+`; filename="`+doc.Filename+`"`)
	return c.Send(doc.Content)
}

// invoiceID lee el id de la ruta. invoices.id es SERIAL (int4): un entero positivo fuera
// de ese rango no puede existir y se responde 404 sin tocar la base.
func invoiceID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 32)
	switch {
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-"):
		return 0, fmt.Errorf("factura %s: %w", raw, domain.ErrNotFound)
	case err != nil || id <= 0:
		return 0, fmt.Errorf("%w: id debe ser un entero positivo", domain.ErrInvalidInput)
	}
	return id, nil
}
