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

type sampleReq struct {
	PONumber       string           `json:"poNumber"`
	Material       string           `json:"material"`
	SupplierName   string           `json:"supplierName"`
	SampleQuantity string           `json:"sampleQuantity"`
	CollectionDate *models.FormTime `json:"collectionDate"`
	TestStatus     string           `json:"testStatus"`
	Remarks        *string          `json:"remarks,omitempty"`
}

// CreateSample records a collected material sample.
func CreateSample(w http.ResponseWriter, r *http.Request) {
	var req sampleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var missing []string
	if req.PONumber == "" {
		missing = append(missing, "poNumber")
	}
	if req.SampleQuantity == "" {
		missing = append(missing, "sampleQuantity")
	}
	if req.CollectionDate == nil {
		missing = append(missing, "collectionDate")
	}
	if len(missing) > 0 {
		domainError(w, &procure.ValidationError{Missing: missing})
		return
	}

	testStatus := req.TestStatus
	if testStatus == "" {
		testStatus = "Pending"
	}
	record := models.SampleRecord{
		PONumber:       req.PONumber,
		Material:       req.Material,
		SupplierName:   req.SupplierName,
		SampleQuantity: req.SampleQuantity,
		CollectionDate: *req.CollectionDate,
		TestStatus:     testStatus,
		Remarks:        req.Remarks,
		CreatedBy:      middleware.GetUserID(r),
	}
	if err := config.DB.Create(&record).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	auditRecorder().Record("Sample Collected", middleware.GetUserID(r), middleware.GetRole(r),
		fmt.Sprintf("Sample collected for PO %s - %s", record.PONumber, record.Material))
	respondJSON(w, http.StatusCreated, record)
}

// ListSamples returns samples, latest collection first.
func ListSamples(w http.ResponseWriter, r *http.Request) {
	var records []models.SampleRecord
	err := config.DB.Order("collection_date DESC").Find(&records).Error
	respondJSON(w, http.StatusOK, repository.FailSoft("list samples", records, err))
}
