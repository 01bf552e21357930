package http

import "github.com/gin-gonic/gin"

// RegisterUsuarioRoutes registra las rutas de usuarios, perfiles y
// notificaciones.
func RegisterUsuarioRoutes(r *gin.Engine, usuarios *UsuarioHandler, notificaciones *NotificacionHandler) {
	ug := r.Group("/usuarios")
	{
		ug.POST("/", usuarios.CreateUsuario)
		ug.GET("/", usuarios.ListUsuarios)
		ug.GET("/:id", usuarios.GetUsuario)
		ug.PUT("/:id", usuarios.UpdateUsuario)
		ug.DELETE("/:id", usuarios.DeleteUsuario)

		ug.GET("/:id/perfil", usuarios.GetPerfil)
		ug.PUT("/:id/perfil", usuarios.SavePerfil)
	}

	ng := r.Group("/notificaciones")
	{
		ng.GET("/", notificaciones.ListNotificaciones)
		ng.POST("/leer-todas", notificaciones.MarcarTodasLeidas)
		ng.POST("/:id/leer", notificaciones.MarcarLeida)
	}
}
