package mensajes

import (
	"PredicaAI/controllers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Register(r *gin.Engine, db *gorm.DB) {
	r.POST("/guardar-mensaje", controllers.GuardarMensaje(db))
	r.GET("/obtener-mensajes", controllers.ObtenerMensajes(db))
	r.GET("/obtener-ultimo-mensaje", controllers.ObtenerUltimoMensaje(db))
}
