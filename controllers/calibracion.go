package controllers

import (
	"log"
	"net/http"

	"PredicaAI/pkg/prompts"

	"github.com/gin-gonic/gin"
)

// ActualizarCalibracion merges the posted {section: prompt} map into the
// calibration configuration and persists it.
func ActualizarCalibracion(ps *prompts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var nuevos map[string]string
		if err := c.ShouldBindJSON(&nuevos); err != nil || nuevos == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Formato inválido."})
			return
		}
		merged, err := ps.Merge(nuevos)
		if err != nil {
			log.Printf("[calibracion] guardar falló: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al guardar la calibración."})
			return
		}
		log.Printf("[calibracion] prompts actualizados: %d secciones", len(merged))
		c.JSON(http.StatusOK, gin.H{"success": true, "promptsCalibracion": merged})
	}
}

// ObtenerCalibracion returns the current calibration prompts.
func ObtenerCalibracion(ps *prompts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"promptsCalibracion": ps.All()})
	}
}
