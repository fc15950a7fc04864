package repository

import (
	"gorm.io/gorm"
	"p9e.in/qms/models"
	"p9e.in/qms/pkg/procure"
)

// ActivityLogs is the gorm-backed procure.AuditRepository.
type ActivityLogs struct {
	db *gorm.DB
}

func NewActivityLogs(db *gorm.DB) *ActivityLogs {
	return &ActivityLogs{db: db}
}

var _ procure.AuditRepository = (*ActivityLogs)(nil)

func (r *ActivityLogs) Append(entry models.ActivityLog) error {
	return r.db.Create(&entry).Error
}

func (r *ActivityLogs) Recent(limit int) ([]models.ActivityLog, error) {
	q := r.db.Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var entries []models.ActivityLog
	err := q.Find(&entries).Error
	return entries, err
}
