package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biztime-api/internal/application/dto"
	"github.com/jhoicas/biztime-api/internal/application/usecase"
)

// IndustryHandler maneja industrias y sus vínculos con empresas.
type IndustryHandler struct {
	uc *usecase.IndustryUseCase
}

// NewIndustryHandler construye el handler.
func NewIndustryHandler(uc *usecase.IndustryUseCase) *IndustryHandler {
	return &IndustryHandler{uc: uc}
}

// List godoc
// @Summary      Listar pares (industria, empresa)
// @Tags         industries
// @Produce      json
// @Success      200  {array}   dto.IndustryCompanyResponse
// @Router       /industries [get]
func (h *IndustryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Industria con los códigos de sus empresas
// @Tags         industries
// @Produce      json
// @Param        code  path  string  true  "Código de la industria"
// @Success      200   {object}  dto.IndustryDetailEnvelope
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /industries/{code} [get]
func (h *IndustryHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.IndustryDetailEnvelope{Industry: *out})
}

// Create godoc
// @Summary      Crear industria
// @Tags         industries
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIndustryRequest  true  "code y name"
// @Success      201   {object}  dto.IndustryEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /industries [post]
func (h *IndustryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIndustryRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IndustryEnvelope{Industry: *out})
}

// AddCompany godoc
// @Summary      Enlazar empresa a industria
// @Tags         industries
// @Accept       json
// @Produce      json
// @Param        code  path  string                           true  "Código de la industria"
// @Param        body  body  dto.AddCompanyToIndustryRequest  true  "Código de la empresa"
// @Success      201   {object}  dto.CompanyIndustryEnvelope
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /industries/{code} [post]
func (h *IndustryHandler) AddCompany(c *fiber.Ctx) error {
	var in dto.AddCompanyToIndustryRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddCompany(c.UserContext(), c.Params("code"), in.Company)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CompanyIndustryEnvelope{CompanyIndustry: *out})
}

// RemoveCompany godoc
// @Summary      Quitar empresa de una industria
// @Tags         industries
// @Produce      json
// @Param        code     path  string  true  "Código de la industria"
// @Param        company  path  string  true  "Código de la empresa"
// @Success      200      {object}  dto.StatusResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /industries/{code}/companies/{company} [delete]
func (h *IndustryHandler) RemoveCompany(c *fiber.Ctx) error {
	if err := h.uc.RemoveCompany(c.UserContext(), c.Params("code"), c.Params("company")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.Deleted)
}
