package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// FilterAll es el valor centinela que significa "sin filtro" en los
// parámetros de filtrado exacto; equivale a omitir el parámetro.
const FilterAll = "all"

// FilterParam devuelve el valor de un filtro exacto. Ausente o "all"
// significa sin restricción sobre ese campo.
func FilterParam(c *gin.Context, name string) (string, bool) {
	v := c.Query(name)
	if v == "" || v == FilterAll {
		return "", false
	}
	return v, true
}

// SearchParam devuelve el término de búsqueda de texto libre, recortado.
func SearchParam(c *gin.Context) (string, bool) {
	v := strings.TrimSpace(c.Query("search"))
	if v == "" {
		return "", false
	}
	return v, true
}

// PageParams lee page y per_page con sus valores por defecto.
func PageParams(c *gin.Context) (page, perPage int) {
	page = 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	perPage = 0 // 0 = que decida el default del query builder
	if v, err := strconv.Atoi(c.Query("per_page")); err == nil && v > 0 {
		perPage = v
	}
	return page, perPage
}

// EchoFilter normaliza el eco de un filtro activo para la UI: los enlaces
// de paginación deben conservar el juego completo de filtros.
func EchoFilter(c *gin.Context, name string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return FilterAll
}
