package controllers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"PredicaAI/pkg/config"
	"PredicaAI/pkg/media"
	svc "PredicaAI/pkg/services"
	"PredicaAI/pkg/transcripts"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Transcribir receives one section's audio, converts it, transcribes it
// and returns the transcription plus its evaluation. When the upload
// completes the outline (all eight sections have text) the response also
// carries the whole-outline coherence evaluation.
func Transcribir(ai *svc.OpenAIService, ev *svc.Evaluator, state *transcripts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("audio")
		section := c.PostForm("section")
		if err != nil || section == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No se recibió archivo de audio o sección."})
			return
		}
		log.Printf("[transcribir] archivo recibido para %s: %s", section, file.Filename)

		if err := os.MkdirAll(config.UploadsDir, 0755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error en la conversión del archivo."})
			return
		}
		inputPath := filepath.Join(config.UploadsDir, uuid.NewString()+filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, inputPath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error en la conversión del archivo."})
			return
		}
		// temp files go away whatever happens below
		defer os.Remove(inputPath)

		wavPath, err := media.ConvertToWav(c.Request.Context(), inputPath, config.UploadsDir)
		if wavPath != "" {
			defer os.Remove(wavPath)
		}
		if err != nil {
			log.Printf("[transcribir] conversión falló: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error en la conversión del archivo."})
			return
		}

		texto, err := svc.TranscribeWithRetries(c.Request.Context(), ai, wavPath, config.TranscribeMaxRetries)
		if err != nil {
			log.Printf("[transcribir] transcripción falló: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error en la transcripción del audio."})
			return
		}
		if strings.TrimSpace(texto) == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error en la transcripción: no se obtuvo texto."})
			return
		}

		state.Set(section, texto)
		evaluacion := ev.EvaluateSection(c.Request.Context(), section, texto)

		if state.AllFilled() {
			hilo := ev.EvaluateHilo(c.Request.Context())
			c.JSON(http.StatusOK, gin.H{
				"transcripcion":  texto,
				"evaluacion":     evaluacion,
				"evaluacionHilo": hilo,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"transcripcion": texto, "evaluacion": evaluacion})
	}
}

// Evaluacion re-evaluates the cached transcription of a section.
func Evaluacion(ev *svc.Evaluator, state *transcripts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		section := c.Query("seccion")
		if section == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Sección no especificada."})
			return
		}
		texto := state.Get(section)
		if texto == "" {
			texto = "Texto no disponible."
		}
		evaluacion := ev.EvaluateSection(c.Request.Context(), section, texto)
		c.JSON(http.StatusOK, gin.H{"evaluacion": evaluacion})
	}
}

// EvaluarEscrito evaluates text typed directly into the notepad instead of
// transcribed from audio.
func EvaluarEscrito(ev *svc.Evaluator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Section string `json:"section"`
			Texto   string `json:"texto"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Texto == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El texto es requerido."})
			return
		}
		evaluacion := ev.EvaluateSection(c.Request.Context(), body.Section, body.Texto)
		c.JSON(http.StatusOK, gin.H{"evaluacion": evaluacion})
	}
}

// AplicarSugerencias rewrites a transcription applying the evaluation's
// suggestions.
func AplicarSugerencias(ev *svc.Evaluator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Transcripcion string `json:"transcripcion"`
			Evaluacion    string `json:"evaluacion"`
			Seccion       string `json:"seccion"`
		}
		if err := c.ShouldBindJSON(&body); err != nil ||
			body.Transcripcion == "" || body.Evaluacion == "" || body.Seccion == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan la transcripción, la evaluación o la sección."})
			return
		}
		sugerida, err := ev.ApplySuggestions(c.Request.Context(), body.Seccion, body.Transcripcion, body.Evaluacion)
		if err != nil {
			log.Printf("[sugerencias] falló: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo aplicar las sugerencias."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"transcripcionSugerida": sugerida})
	}
}

// TTS converts text to speech and streams back the mp3 bytes.
func TTS(ai *svc.OpenAIService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Model string `json:"model"`
			Voice string `json:"voice"`
			Input string `json:"input"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar el audio."})
			return
		}
		audio, err := ai.Speech(c.Request.Context(), body.Model, body.Voice, body.Input)
		if err != nil {
			log.Printf("[tts] falló: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar el audio."})
			return
		}
		c.Data(http.StatusOK, "audio/mpeg", audio)
	}
}
