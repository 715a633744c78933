package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vetstock-api/internal/application/dto"
	"github.com/jhoicas/vetstock-api/pkg/validator"
)

const defaultPageSize = 20

// bind decodifica el body JSON en dst y lo valida. Si devuelve false la respuesta ya fue escrita.
func bind(c *fiber.Ctx, v validator.Validator, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, invalidBody(c)
	}
	if err := v.Validate(dst); err != nil {
		return false, writeError(c, err)
	}
	return true, nil
}

// listQuery lee search, sort_by, order, limit y offset.
// Sin limit se usa el tamaño de página por defecto; limit=0 explícito pide la colección completa.
func listQuery(c *fiber.Ctx) dto.ListQuery {
	limit := defaultPageSize
	if raw := c.Query("limit"); raw != "" {
		limit = c.QueryInt("limit", defaultPageSize)
	}
	return dto.ListQuery{
		Search: strings.TrimSpace(c.Query("search")),
		SortBy: c.Query("sort_by"),
		Order:  strings.ToLower(c.Query("order")),
		Limit:  limit,
		Offset: c.QueryInt("offset", 0),
	}
}

// validateQuery valida filtros de listado; si devuelve false la respuesta ya fue escrita.
func validateQuery(c *fiber.Ctx, v validator.Validator, q any) (bool, error) {
	if err := v.Validate(q); err != nil {
		return false, writeError(c, err)
	}
	return true, nil
}
