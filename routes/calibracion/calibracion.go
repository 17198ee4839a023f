package calibracion

import (
	"PredicaAI/controllers"
	"PredicaAI/pkg/prompts"

	"github.com/gin-gonic/gin"
)

func Register(r *gin.Engine, ps *prompts.Store) {
	r.POST("/actualizar-calibracion", controllers.ActualizarCalibracion(ps))
	r.GET("/obtener-calibracion", controllers.ObtenerCalibracion(ps))
}
