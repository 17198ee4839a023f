package controllers

import (
	"log"
	"net/http"

	"PredicaAI/pkg/preguntas"

	"github.com/gin-gonic/gin"
)

// GuardarPreguntas stores the four initial planning answers.
func GuardarPreguntas(store *preguntas.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body preguntas.Respuestas
		if err := c.ShouldBindJSON(&body); err != nil ||
			body.Tema == "" || body.Proposito == "" || body.Audiencia == "" || body.Tiempo == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan respuestas."})
			return
		}
		store.Set(body)
		log.Printf("[preguntas] respuestas iniciales guardadas")
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// VerPreguntas always answers with empty values, regardless of what was
// saved. The original behaves this way; kept as-is.
func VerPreguntas() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"tema":      "",
			"proposito": "",
			"audiencia": "",
			"tiempo":    "",
		})
	}
}

// LimpiarPreguntas resets the answers and persists the empty state.
func LimpiarPreguntas(store *preguntas.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Clear(); err != nil {
			log.Printf("[preguntas] limpiar falló: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al limpiar preguntas."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
