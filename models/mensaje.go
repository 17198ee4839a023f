package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Mensaje is one saved sermon outline. The newest row per usuario is the
// user's current outline; older rows stay as history.
type Mensaje struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Usuario      string    `gorm:"size:120;not null;index" json:"usuario"`
	FechaMensaje time.Time `gorm:"column:fecha_mensaje;autoCreateTime" json:"fecha_mensaje"`
	Titulo       string    `gorm:"type:text" json:"titulo"`
	Introduccion string    `gorm:"type:text" json:"introduccion"`
	Costura      string    `gorm:"type:text" json:"costura"`
	Problematica string    `gorm:"type:text" json:"problematica"`
	Conector     string    `gorm:"type:text" json:"conector"`
	Desarrollo   string    `gorm:"type:text" json:"desarrollo"`
	Conclusion   string    `gorm:"type:text" json:"conclusion"`
	Ministracion string    `gorm:"type:text" json:"ministracion"`
}

func (Mensaje) TableName() string { return "mensajes" }

// Secciones carries the eight outline section values of a save request.
// Empty fields mean "not supplied" and never overwrite stored text.
type Secciones struct {
	Titulo       string `json:"titulo"`
	Introduccion string `json:"introduccion"`
	Costura      string `json:"costura"`
	Problematica string `json:"problematica"`
	Conector     string `json:"conector"`
	Desarrollo   string `json:"desarrollo"`
	Conclusion   string `json:"conclusion"`
	Ministracion string `json:"ministracion"`
}

var ErrMensajeNotFound = errors.New("mensaje not found")

// currentRow orders so the newest row wins; equal timestamps break on the
// highest id.
func currentRow(db *gorm.DB) *gorm.DB {
	return db.Order("fecha_mensaje DESC, id DESC")
}

// UpsertMensaje inserts a new row for usuario when none exists, otherwise
// updates the current row in place, keeping stored values for fields the
// caller left empty, and refreshes fecha_mensaje. The lookup and the write
// run in one transaction so concurrent saves for the same user cannot
// produce duplicate current rows.
func UpsertMensaje(db *gorm.DB, usuario string, in Secciones) (uint, error) {
	var id uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var row Mensaje
		err := currentRow(tx).Where("usuario = ?", usuario).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = Mensaje{
				Usuario:      usuario,
				FechaMensaje: time.Now(),
				Titulo:       in.Titulo,
				Introduccion: in.Introduccion,
				Costura:      in.Costura,
				Problematica: in.Problematica,
				Conector:     in.Conector,
				Desarrollo:   in.Desarrollo,
				Conclusion:   in.Conclusion,
				Ministracion: in.Ministracion,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			id = row.ID
			return nil
		}
		if err != nil {
			return err
		}

		row.Titulo = orKeep(in.Titulo, row.Titulo)
		row.Introduccion = orKeep(in.Introduccion, row.Introduccion)
		row.Costura = orKeep(in.Costura, row.Costura)
		row.Problematica = orKeep(in.Problematica, row.Problematica)
		row.Conector = orKeep(in.Conector, row.Conector)
		row.Desarrollo = orKeep(in.Desarrollo, row.Desarrollo)
		row.Conclusion = orKeep(in.Conclusion, row.Conclusion)
		row.Ministracion = orKeep(in.Ministracion, row.Ministracion)
		row.FechaMensaje = time.Now()

		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		id = row.ID
		return nil
	})
	return id, err
}

func orKeep(incoming, stored string) string {
	if incoming != "" {
		return incoming
	}
	return stored
}

// ListMensajes returns every saved row, newest first. No pagination; the
// admin view consumes the whole table.
func ListMensajes(db *gorm.DB) ([]Mensaje, error) {
	var rows []Mensaje
	if err := currentRow(db).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UltimoMensaje returns the newest row for usuario, or ErrMensajeNotFound.
func UltimoMensaje(db *gorm.DB, usuario string) (*Mensaje, error) {
	var row Mensaje
	err := currentRow(db).Where("usuario = ?", usuario).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMensajeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
