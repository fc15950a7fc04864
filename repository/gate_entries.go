package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"p9e.in/qms/models"
	"p9e.in/qms/pkg/procure"
)

// GateEntries is the gorm-backed procure.GateEntryRepository. Documents
// are keyed by PO number; Save upserts the whole row including the
// merged vehicle map, since jsonb columns replace wholesale.
type GateEntries struct {
	db *gorm.DB
}

func NewGateEntries(db *gorm.DB) *GateEntries {
	return &GateEntries{db: db}
}

var _ procure.GateEntryRepository = (*GateEntries)(nil)

func (r *GateEntries) Get(poNumber string) (*models.GateEntry, error) {
	var doc models.GateEntry
	err := r.db.Where("po_number = ?", poNumber).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, procure.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *GateEntries) Save(doc *models.GateEntry) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "po_number"}},
		UpdateAll: true,
	}).Create(doc).Error
}

// ListAll returns every gate entry document, newest first.
func (r *GateEntries) ListAll() ([]models.GateEntry, error) {
	var docs []models.GateEntry
	err := r.db.Order("created_at DESC").Find(&docs).Error
	return docs, err
}
