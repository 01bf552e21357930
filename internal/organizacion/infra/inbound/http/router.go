package http

import "github.com/gin-gonic/gin"

// RegisterOrganizacionRoutes registra las rutas HTTP de la jerarquía organizacional.
func RegisterOrganizacionRoutes(r *gin.Engine, regiones *RegionHandler, ugels *UgelHandler, distritos *DistritoHandler, instituciones *InstitucionHandler) {
	rg := r.Group("/regiones")
	{
		rg.POST("/", regiones.CreateRegion)
		rg.GET("/", regiones.ListRegiones)
		rg.GET("/:id", regiones.GetRegion)
		rg.PUT("/:id", regiones.UpdateRegion)
		rg.DELETE("/:id", regiones.DeleteRegion)
	}

	ug := r.Group("/ugels")
	{
		ug.POST("/", ugels.CreateUgel)
		ug.GET("/", ugels.ListUgels)
		ug.GET("/:id", ugels.GetUgel)
		ug.PUT("/:id", ugels.UpdateUgel)
		ug.DELETE("/:id", ugels.DeleteUgel)
	}

	dg := r.Group("/distritos")
	{
		dg.POST("/", distritos.CreateDistrito)
		dg.GET("/", distritos.ListDistritos)
		dg.GET("/:id", distritos.GetDistrito)
		dg.PUT("/:id", distritos.UpdateDistrito)
		dg.DELETE("/:id", distritos.DeleteDistrito)
	}

	ig := r.Group("/instituciones")
	{
		ig.POST("/", instituciones.CreateInstitucion)
		ig.GET("/", instituciones.ListInstituciones)
		ig.GET("/:id", instituciones.GetInstitucion)
		ig.PUT("/:id", instituciones.UpdateInstitucion)
		ig.DELETE("/:id", instituciones.DeleteInstitucion)
	}
}
