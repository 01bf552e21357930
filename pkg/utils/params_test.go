package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ctxWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestFilterParam(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantVal  string
		wantBool bool
	}{
		{name: "valor concreto filtra", query: "estado=activo", wantVal: "activo", wantBool: true},
		{name: "ausente no filtra", query: "", wantVal: "", wantBool: false},
		{name: "all no filtra", query: "estado=all", wantVal: "", wantBool: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := FilterParam(ctxWithQuery(tt.query), "estado")
			assert.Equal(t, tt.wantVal, v)
			assert.Equal(t, tt.wantBool, ok)
		})
	}
}

func TestSearchParam_RecortaEspacios(t *testing.T) {
	v, ok := SearchParam(ctxWithQuery("search=+lima+"))
	assert.True(t, ok)
	assert.Equal(t, "lima", v)

	_, ok = SearchParam(ctxWithQuery("search=++"))
	assert.False(t, ok)
}

func TestPageParams_Defaults(t *testing.T) {
	page, perPage := PageParams(ctxWithQuery(""))
	assert.Equal(t, 1, page)
	assert.Equal(t, 0, perPage)

	page, perPage = PageParams(ctxWithQuery("page=3&per_page=25"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, perPage)

	// Valores inválidos caen al default.
	page, _ = PageParams(ctxWithQuery("page=-2"))
	assert.Equal(t, 1, page)
}

func TestEchoFilter_ConservaElJuegoDeFiltros(t *testing.T) {
	assert.Equal(t, "activo", EchoFilter(ctxWithQuery("estado=activo"), "estado"))
	assert.Equal(t, FilterAll, EchoFilter(ctxWithQuery(""), "estado"))
}
