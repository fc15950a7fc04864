package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"p9e.in/qms/models"
	"p9e.in/qms/pkg/procure"
)

// PurchaseOrders is the gorm-backed procure.PORepository.
type PurchaseOrders struct {
	db *gorm.DB
}

func NewPurchaseOrders(db *gorm.DB) *PurchaseOrders {
	return &PurchaseOrders{db: db}
}

var _ procure.PORepository = (*PurchaseOrders)(nil)

func (r *PurchaseOrders) Create(po *models.PurchaseOrder) error {
	if err := r.db.Create(po).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return procure.ErrDuplicatePONumber
		}
		return err
	}
	return nil
}

func (r *PurchaseOrders) GetByNumber(poNumber string) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	err := r.db.Where("po_number = ?", poNumber).First(&po).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, procure.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// Update is a compare-and-swap on the version column: the write only
// lands when nobody else bumped the row since it was read.
func (r *PurchaseOrders) Update(po *models.PurchaseOrder, expectedVersion int) error {
	res := r.db.Model(&models.PurchaseOrder{}).
		Where("po_number = ? AND version = ?", po.PONumber, expectedVersion).
		Select("status", "workflow_stage", "manager_remarks", "approved_by",
			"approved_at", "dispatched_at", "sent_to_wp_at", "version", "updated_at").
		Updates(po)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return procure.ErrVersionConflict
	}
	return nil
}

func (r *PurchaseOrders) ListByStatus(status models.POStatus) ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	err := r.db.Where("status = ?", status).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *PurchaseOrders) ListAll() ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	err := r.db.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *PurchaseOrders) ListByCreator(userID string) ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	err := r.db.Where("created_by = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}
