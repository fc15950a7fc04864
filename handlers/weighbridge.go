package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/qms/config"
	"p9e.in/qms/middleware"
	"p9e.in/qms/models"
	"p9e.in/qms/pkg/procure"
	"p9e.in/qms/repository"
)

type weighbridgeReq struct {
	VehicleNumber string           `json:"vehicleNumber"`
	PONumber      string           `json:"poNumber"`
	Material      string           `json:"material"`
	SupplierName  string           `json:"supplierName"`
	WeightBefore  string           `json:"weightBefore"`
	WeightAfter   string           `json:"weightAfter"`
	WeighingDate  *models.FormTime `json:"weighingDate"`
	Remarks       *string          `json:"remarks,omitempty"`
}

func (req *weighbridgeReq) validate() error {
	var missing []string
	if req.VehicleNumber == "" {
		missing = append(missing, "vehicleNumber")
	}
	if req.PONumber == "" {
		missing = append(missing, "poNumber")
	}
	if req.WeighingDate == nil {
		missing = append(missing, "weighingDate")
	}
	if len(missing) > 0 {
		return &procure.ValidationError{Missing: missing}
	}
	return nil
}

// CreateWeighbridgeRecord stores a weighing. The net weight is computed
// here from before/after, never taken from the payload.
func CreateWeighbridgeRecord(w http.ResponseWriter, r *http.Request) {
	var req weighbridgeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		domainError(w, err)
		return
	}

	record := models.WeighbridgeRecord{
		VehicleNumber: req.VehicleNumber,
		PONumber:      req.PONumber,
		Material:      req.Material,
		SupplierName:  req.SupplierName,
		WeightBefore:  req.WeightBefore,
		WeightAfter:   req.WeightAfter,
		NetWeight:     procure.ComputeNetWeight(req.WeightBefore, req.WeightAfter),
		WeighingDate:  *req.WeighingDate,
		Remarks:       req.Remarks,
		CreatedBy:     middleware.GetUserID(r),
	}
	if err := config.DB.Create(&record).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	auditRecorder().Record("Weight Recorded", middleware.GetUserID(r), middleware.GetRole(r),
		fmt.Sprintf("Weight recorded for vehicle %s - Net: %.2f kg", record.VehicleNumber, record.NetWeight))
	respondJSON(w, http.StatusCreated, record)
}

// UpdateWeighbridgeRecord edits a weighing. Any change to either source
// weight recomputes the net weight from the current pair; the stored
// value is never stale and never user-supplied.
func UpdateWeighbridgeRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var record models.WeighbridgeRecord
	if err := config.DB.First(&record, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	var req weighbridgeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.VehicleNumber != "" {
		record.VehicleNumber = req.VehicleNumber
	}
	if req.WeightBefore != "" {
		record.WeightBefore = req.WeightBefore
	}
	if req.WeightAfter != "" {
		record.WeightAfter = req.WeightAfter
	}
	if req.WeighingDate != nil {
		record.WeighingDate = *req.WeighingDate
	}
	if req.Remarks != nil {
		record.Remarks = req.Remarks
	}
	record.NetWeight = procure.ComputeNetWeight(record.WeightBefore, record.WeightAfter)

	if err := config.DB.Save(&record).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	auditRecorder().Record("Weight Updated", middleware.GetUserID(r), middleware.GetRole(r),
		fmt.Sprintf("Weight updated for vehicle %s - Net: %.2f kg", record.VehicleNumber, record.NetWeight))
	respondJSON(w, http.StatusOK, record)
}

// ListWeighbridgeRecords returns weighings, latest weighing first.
func ListWeighbridgeRecords(w http.ResponseWriter, r *http.Request) {
	var records []models.WeighbridgeRecord
	err := config.DB.Order("weighing_date DESC").Find(&records).Error
	respondJSON(w, http.StatusOK, repository.FailSoft("list weighbridge records", records, err))
}
