package dto

// ListQuery parámetros comunes de listados: búsqueda, orden y paginación.
// Limit 0 = sin límite (la colección completa, como la consume el dashboard).
type ListQuery struct {
	Search string `query:"search" validate:"max=200"`
	SortBy string `query:"sort_by"`
	Order  string `query:"order" validate:"omitempty,oneof=asc desc"`
	Limit  int    `query:"limit" validate:"min=0,max=100"`
	Offset int    `query:"offset" validate:"min=0"`
}

// Descending indica si el orden pedido es descendente. Por defecto desc.
func (q ListQuery) Descending() bool {
	return q.Order != "asc"
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
