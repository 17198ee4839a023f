package preguntas

import (
	"PredicaAI/controllers"
	pregStore "PredicaAI/pkg/preguntas"

	"github.com/gin-gonic/gin"
)

func Register(r *gin.Engine, store *pregStore.Store) {
	r.POST("/guardar-preguntas", controllers.GuardarPreguntas(store))
	r.GET("/ver-preguntas", controllers.VerPreguntas())
	r.POST("/limpiar-preguntas", controllers.LimpiarPreguntas(store))
}
