package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lib/pq"
	"p9e.in/qms/config"
	"p9e.in/qms/middleware"
	"p9e.in/qms/models"
	"p9e.in/qms/pkg/procure"
	"p9e.in/qms/repository"
)

type qcReq struct {
	PONumber          string           `json:"poNumber"`
	Material          string           `json:"material"`
	SupplierName      string           `json:"supplierName"`
	TestDate          *models.FormTime `json:"testDate"`
	TestResult        string           `json:"testResult"`
	TestParameters    []string         `json:"testParameters"`
	MeasurementOption string           `json:"measurementOption"`
	MeasuredWeight    *string          `json:"measuredWeight,omitempty"`
	MeasuredQuantity  *string          `json:"measuredQuantity,omitempty"`
	Remarks           *string          `json:"remarks,omitempty"`
}

// validateMeasurement enforces the mutually exclusive option selector:
// exactly the selected numeric field may carry a value.
func (req *qcReq) validateMeasurement() error {
	switch req.MeasurementOption {
	case models.MeasureWeight:
		if req.MeasuredQuantity != nil {
			return &procure.ValidationError{Reason: "measuredQuantity must be empty when measuring by weight"}
		}
		if req.MeasuredWeight == nil {
			return &procure.ValidationError{Missing: []string{"measuredWeight"}}
		}
	case models.MeasureQuantity:
		if req.MeasuredWeight != nil {
			return &procure.ValidationError{Reason: "measuredWeight must be empty when measuring by quantity"}
		}
		if req.MeasuredQuantity == nil {
			return &procure.ValidationError{Missing: []string{"measuredQuantity"}}
		}
	case models.MeasureNone, "":
		if req.MeasuredWeight != nil || req.MeasuredQuantity != nil {
			return &procure.ValidationError{Reason: "measured values require a measurement option"}
		}
	default:
		return &procure.ValidationError{Reason: "measurementOption must be weight, quantity or none"}
	}
	return nil
}

// CreateQCResult records a quality-control test outcome.
func CreateQCResult(w http.ResponseWriter, r *http.Request) {
	var req qcReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var missing []string
	if req.PONumber == "" {
		missing = append(missing, "poNumber")
	}
	if req.TestDate == nil {
		missing = append(missing, "testDate")
	}
	if len(missing) > 0 {
		domainError(w, &procure.ValidationError{Missing: missing})
		return
	}
	if err := req.validateMeasurement(); err != nil {
		domainError(w, err)
		return
	}

	option := req.MeasurementOption
	if option == "" {
		option = models.MeasureNone
	}
	result := req.TestResult
	if result == "" {
		result = "Pending"
	}
	record := models.QCResult{
		PONumber:          req.PONumber,
		Material:          req.Material,
		SupplierName:      req.SupplierName,
		TestDate:          *req.TestDate,
		TestResult:        result,
		TestParameters:    pq.StringArray(req.TestParameters),
		MeasurementOption: option,
		MeasuredWeight:    req.MeasuredWeight,
		MeasuredQuantity:  req.MeasuredQuantity,
		Remarks:           req.Remarks,
		CreatedBy:         middleware.GetUserID(r),
	}
	if err := config.DB.Create(&record).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	auditRecorder().Record("QC Test Completed", middleware.GetUserID(r), middleware.GetRole(r),
		fmt.Sprintf("QC test completed for PO %s - Result: %s", record.PONumber, record.TestResult))
	respondJSON(w, http.StatusCreated, record)
}

// ListQCResults returns test results, latest test first.
func ListQCResults(w http.ResponseWriter, r *http.Request) {
	var records []models.QCResult
	err := config.DB.Order("test_date DESC").Find(&records).Error
	respondJSON(w, http.StatusOK, repository.FailSoft("list qc results", records, err))
}
