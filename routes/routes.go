package routes

import (
	"PredicaAI/pkg/preguntas"
	"PredicaAI/pkg/prompts"
	svc "PredicaAI/pkg/services"
	"PredicaAI/pkg/transcripts"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	audioRoutes "PredicaAI/routes/audio"
	calibracionRoutes "PredicaAI/routes/calibracion"
	mensajesRoutes "PredicaAI/routes/mensajes"
	preguntasRoutes "PredicaAI/routes/preguntas"
	staticRoutes "PredicaAI/routes/static"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, ps *prompts.Store, preg *preguntas.Store) {
	ai := svc.NewOpenAIService()
	state := transcripts.Default()
	ev := svc.NewEvaluator(ai, ps, state)

	staticRoutes.Register(r)
	audioRoutes.Register(r, ai, ev, state)
	mensajesRoutes.Register(r, db)
	calibracionRoutes.Register(r, ps)
	preguntasRoutes.Register(r, preg)
}
