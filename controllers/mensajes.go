package controllers

import (
	"errors"
	"log"
	"net/http"

	"PredicaAI/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GuardarMensaje upserts the caller's outline: first save inserts a row,
// later saves merge into it field by field (empty incoming fields keep the
// stored value) and refresh the timestamp.
func GuardarMensaje(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Usuario string `json:"usuario"`
			models.Secciones
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Usuario == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El usuario es obligatorio"})
			return
		}
		id, err := models.UpsertMensaje(db, body.Usuario, body.Secciones)
		if err != nil {
			log.Printf("[mensajes] guardar falló: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al guardar el mensaje"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
	}
}

// ObtenerMensajes returns every saved outline, newest first.
func ObtenerMensajes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := models.ListMensajes(db)
		if err != nil {
			log.Printf("[mensajes] listar falló: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener mensajes"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// ObtenerUltimoMensaje returns the caller's current outline, if any.
func ObtenerUltimoMensaje(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario := c.Query("usuario")
		if usuario == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El parámetro 'usuario' es obligatorio"})
			return
		}
		row, err := models.UltimoMensaje(db, usuario)
		if errors.Is(err, models.ErrMensajeNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "No se encontraron notas para este usuario."})
			return
		}
		if err != nil {
			log.Printf("[mensajes] último falló: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener mensaje"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "mensaje": row})
	}
}
