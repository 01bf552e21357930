package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FlashKind son los tipos de mensaje transitorio que pinta la UI como toast.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashWarning FlashKind = "warning"
	FlashInfo    FlashKind = "info"
)

// Flash es el único canal de resultado de las acciones mutantes: la UI lo
// muestra en la siguiente carga de página.
type Flash struct {
	Tipo    FlashKind `json:"tipo"`
	Mensaje string    `json:"mensaje"`
}

// ErrorResponse define la estructura estándar para las respuestas de error.
type ErrorResponse struct {
	Message string `json:"message"`
}

// SendSuccess envía una respuesta exitosa con un payload de datos.
func SendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"data": data,
	})
}

// SendFlash responde una acción mutante con su mensaje flash y, opcional,
// el recurso afectado.
func SendFlash(c *gin.Context, statusCode int, kind FlashKind, mensaje string, data interface{}) {
	body := gin.H{
		"flash": Flash{Tipo: kind, Mensaje: mensaje},
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(statusCode, body)
}

// SendError envía una respuesta de error con un formato estandarizado.
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error": ErrorResponse{
			Message: message,
		},
		"flash": Flash{Tipo: FlashError, Mensaje: message},
	})
}

// --- Helpers específicos para errores comunes ---

func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message)
}

func SendConflict(c *gin.Context, message string) {
	SendError(c, http.StatusConflict, message)
}

func SendInternalServerError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, message)
}
