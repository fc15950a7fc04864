package procure

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/datatypes"
	"p9e.in/qms/models"
)

// AuditRepository persists activity log entries.
type AuditRepository interface {
	Append(entry models.ActivityLog) error
	Recent(limit int) ([]models.ActivityLog, error)
}

// Recorder appends activity entries fire-and-forget: a failed append is
// logged and swallowed so it can never fail the operation that emitted
// it. Callers write their primary record first and record afterwards.
type Recorder struct {
	logs AuditRepository
	now  func() time.Time
}

func NewRecorder(logs AuditRepository) *Recorder {
	return &Recorder{logs: logs, now: time.Now}
}

// Record appends one entry. Errors are swallowed.
func (r *Recorder) Record(action, userID, userRole, details string) {
	r.RecordWith(action, userID, userRole, details, nil)
}

// RecordWith appends one entry with structured metadata for later
// filtering. Errors are swallowed.
func (r *Recorder) RecordWith(action, userID, userRole, details string, meta map[string]string) {
	if r == nil || r.logs == nil {
		return
	}
	var metadata datatypes.JSON
	if len(meta) > 0 {
		if b, err := json.Marshal(meta); err == nil {
			metadata = datatypes.JSON(b)
		}
	}
	err := r.logs.Append(models.ActivityLog{
		Action:    action,
		UserID:    userID,
		UserRole:  userRole,
		Details:   details,
		Metadata:  metadata,
		Timestamp: r.now(),
	})
	if err != nil {
		log.Printf("activity log append failed (ignored): %v", err)
	}
}

// Feed returns the most recent entries, newest first. Degrades to an
// empty slice on store failure.
func (r *Recorder) Feed(limit int) []models.ActivityLog {
	entries, err := r.logs.Recent(limit)
	if err != nil {
		log.Printf("activity log read failed, returning empty feed: %v", err)
		return []models.ActivityLog{}
	}
	return entries
}
