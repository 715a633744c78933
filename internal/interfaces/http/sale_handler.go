package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vetstock-api/internal/application/dto"
	"github.com/jhoicas/vetstock-api/internal/application/inventory"
	"github.com/jhoicas/vetstock-api/pkg/validator"
)

// SaleHandler maneja las peticiones HTTP de ventas.
type SaleHandler struct {
	uc *inventory.SaleUseCase
	v  validator.Validator
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *inventory.SaleUseCase, v validator.Validator) *SaleHandler {
	return &SaleHandler{uc: uc, v: v}
}

// Record godoc
// @Summary      Registrar venta
// @Description  Descuenta el stock. amount por defecto = unit_price × quantity.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "Venta"
// @Success      201   {object}  dto.SaleResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if ok, err := bind(c, h.v, &in); !ok {
		return err
	}
	out, err := h.uc.Record(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una venta
// @Description  Solo pending → completed.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/status [patch]
func (h *SaleHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateSaleStatusRequest
	if ok, err := bind(c, h.v, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Produce      json
// @Param        status   query  string  false  "completed | pending | cancelled"
// @Param        search   query  string  false  "Cliente o producto"
// @Param        sort_by  query  string  false  "date | amount | quantity | customer | product"
// @Param        order    query  string  false  "asc | desc"
// @Param        limit    query  int     false  "Límite (0 = todos)"  default(20)
// @Param        offset   query  int     false  "Offset"              default(0)
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	q := dto.SaleListQuery{ListQuery: listQuery(c), Status: c.Query("status")}
	if ok, err := validateQuery(c, h.v, q); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
