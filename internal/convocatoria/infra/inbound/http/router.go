package http

import "github.com/gin-gonic/gin"

// RegisterConvocatoriaRoutes registra las rutas de convocatorias y plazas.
func RegisterConvocatoriaRoutes(r *gin.Engine, convocatorias *ConvocatoriaHandler, plazas *PlazaHandler) {
	cg := r.Group("/convocatorias")
	{
		cg.POST("/", convocatorias.CreateConvocatoria)
		cg.GET("/", convocatorias.ListConvocatorias)
		cg.GET("/:id", convocatorias.GetConvocatoria)
		cg.PUT("/:id", convocatorias.UpdateConvocatoria)
		cg.DELETE("/:id", convocatorias.DeleteConvocatoria)

		cg.POST("/:id/publicar", convocatorias.Publicar)
		cg.POST("/:id/activar", convocatorias.Activar)
		cg.POST("/:id/cerrar", convocatorias.Cerrar)
		cg.POST("/:id/cancelar", convocatorias.Cancelar)
	}

	pg := r.Group("/plazas")
	{
		pg.POST("/", plazas.CreatePlaza)
		pg.GET("/", plazas.ListPlazas)
		pg.GET("/:id", plazas.GetPlaza)
		pg.PUT("/:id", plazas.UpdatePlaza)
		pg.DELETE("/:id", plazas.DeletePlaza)
	}
}
