package http

import "github.com/gin-gonic/gin"

// RegisterPostulacionRoutes registra las rutas del flujo de postulación:
// postulaciones, evaluaciones, documentos, recomendaciones y analítica.
func RegisterPostulacionRoutes(
	r *gin.Engine,
	postulaciones *PostulacionHandler,
	evaluaciones *EvaluacionHandler,
	documentos *DocumentoHandler,
	recomendaciones *RecomendacionHandler,
	analitica *AnaliticaHandler,
) {
	pg := r.Group("/postulaciones")
	{
		pg.POST("/", postulaciones.CreatePostulacion)
		pg.GET("/", postulaciones.ListPostulaciones)
		pg.GET("/:id", postulaciones.GetPostulacion)

		pg.POST("/:id/retirar", postulaciones.RetirarPostulacion)
		pg.POST("/:id/seleccionar", postulaciones.SeleccionarPostulacion)

		pg.POST("/:id/evaluacion", evaluaciones.RegistrarEvaluacion)
		pg.GET("/:id/evaluacion", evaluaciones.GetEvaluacion)

		pg.POST("/:id/documentos", documentos.AdjuntarDocumento)
		pg.GET("/:id/documentos", documentos.ListDocumentos)
	}

	dg := r.Group("/documentos")
	{
		dg.PUT("/:id", documentos.RevisarDocumento)
		dg.DELETE("/:id", documentos.DeleteDocumento)
	}

	rg := r.Group("/recomendaciones")
	{
		rg.POST("/", recomendaciones.CreateRecomendacion)
		rg.GET("/", recomendaciones.ListRecomendaciones)
		rg.POST("/:id/vista", recomendaciones.MarcarVista)
		rg.POST("/:id/aplicar", recomendaciones.Aplicar)
		rg.POST("/:id/descartar", recomendaciones.Descartar)
	}

	ag := r.Group("/analitica")
	{
		ag.GET("/convocatorias/:id/tendencia", analitica.TendenciaDiaria)
		ag.GET("/convocatorias/:id/tiempo-medio", analitica.TiempoMedioEvaluacion)
	}
}
