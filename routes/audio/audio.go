package audio

import (
	"PredicaAI/controllers"
	"PredicaAI/middleware"
	svc "PredicaAI/pkg/services"
	"PredicaAI/pkg/transcripts"

	"github.com/gin-gonic/gin"
)

// Register wires the transcription/evaluation endpoints. The POST
// endpoints sit behind the rate limiter; GET /evaluacion stays open since
// repeated reads are cheap once the evaluation cache is warm.
func Register(r *gin.Engine, ai *svc.OpenAIService, ev *svc.Evaluator, state *transcripts.Store) {
	r.POST("/transcribir", middleware.RateLimit(), controllers.Transcribir(ai, ev, state))
	r.GET("/evaluacion", controllers.Evaluacion(ev, state))
	r.POST("/evaluar-escrito", middleware.RateLimit(), controllers.EvaluarEscrito(ev))
	r.POST("/aplicar-sugerencias", middleware.RateLimit(), controllers.AplicarSugerencias(ev))
	r.POST("/api/tts", middleware.RateLimit(), controllers.TTS(ai))
}
