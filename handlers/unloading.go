package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"p9e.in/qms/config"
	"p9e.in/qms/middleware"
	"p9e.in/qms/models"
	"p9e.in/qms/pkg/procure"
	"p9e.in/qms/repository"
)

type unloadingReq struct {
	VehicleNumber      string           `json:"vehicleNumber"`
	PONumber           string           `json:"poNumber"`
	Material           string           `json:"material"`
	SupplierName       string           `json:"supplierName"`
	StorageLocation    string           `json:"storageLocation"`
	QuantityUnloaded   string           `json:"quantityUnloaded"`
	UnloadingStartTime *models.FormTime `json:"unloadingStartTime"`
	UnloadingEndTime   *models.FormTime `json:"unloadingEndTime"`
	Remarks            *string          `json:"remarks,omitempty"`
}

// CreateUnloadingRecord stores an unloading into one of the fixed bays.
func CreateUnloadingRecord(w http.ResponseWriter, r *http.Request) {
	var req unloadingReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var missing []string
	if req.VehicleNumber == "" {
		missing = append(missing, "vehicleNumber")
	}
	if req.PONumber == "" {
		missing = append(missing, "poNumber")
	}
	if req.StorageLocation == "" {
		missing = append(missing, "storageLocation")
	}
	if req.UnloadingStartTime == nil {
		missing = append(missing, "unloadingStartTime")
	}
	if req.UnloadingEndTime == nil {
		missing = append(missing, "unloadingEndTime")
	}
	if len(missing) > 0 {
		domainError(w, &procure.ValidationError{Missing: missing})
		return
	}
	if !models.ValidStorageLocation(req.StorageLocation) {
		domainError(w, &procure.ValidationError{Reason: "storageLocation must be one of L1..L10"})
		return
	}
	if req.UnloadingEndTime.Time().Before(req.UnloadingStartTime.Time()) {
		domainError(w, &procure.ValidationError{Reason: "unloadingEndTime must not be before unloadingStartTime"})
		return
	}

	record := models.UnloadingRecord{
		VehicleNumber:      req.VehicleNumber,
		PONumber:           req.PONumber,
		Material:           req.Material,
		SupplierName:       req.SupplierName,
		StorageLocation:    req.StorageLocation,
		QuantityUnloaded:   req.QuantityUnloaded,
		UnloadingStartTime: *req.UnloadingStartTime,
		UnloadingEndTime:   *req.UnloadingEndTime,
		Remarks:            req.Remarks,
		CreatedBy:          middleware.GetUserID(r),
	}
	if err := config.DB.Create(&record).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	auditRecorder().Record("Unloading Completed", middleware.GetUserID(r), middleware.GetRole(r),
		fmt.Sprintf("Unloading completed for vehicle %s at %s", record.VehicleNumber, record.StorageLocation))
	respondJSON(w, http.StatusCreated, record)
}

// ListUnloadingRecords returns unloadings, latest start time first.
func ListUnloadingRecords(w http.ResponseWriter, r *http.Request) {
	var records []models.UnloadingRecord
	err := config.DB.Order("unloading_start_time DESC").Find(&records).Error
	respondJSON(w, http.StatusOK, repository.FailSoft("list unloading records", records, err))
}
