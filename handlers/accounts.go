package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"p9e.in/qms/config"
	"p9e.in/qms/middleware"
	"p9e.in/qms/models"
	"p9e.in/qms/pkg/procure"
	"p9e.in/qms/repository"
)

type paymentReq struct {
	PONumber      string           `json:"poNumber"`
	SupplierName  string           `json:"supplierName"`
	Material      string           `json:"material"`
	Amount        string           `json:"amount"`
	PaymentMethod string           `json:"paymentMethod"`
	PaymentDate   *models.FormTime `json:"paymentDate"`
	Remarks       *string          `json:"remarks,omitempty"`
}

// CreatePayment files a payment against a PO. Status is always
// Processed; this is record-keeping, not a payment life cycle.
func CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var missing []string
	if req.PONumber == "" {
		missing = append(missing, "poNumber")
	}
	if req.Amount == "" {
		missing = append(missing, "amount")
	}
	if req.PaymentMethod == "" {
		missing = append(missing, "paymentMethod")
	}
	if req.PaymentDate == nil {
		missing = append(missing, "paymentDate")
	}
	if len(missing) > 0 {
		domainError(w, &procure.ValidationError{Missing: missing})
		return
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		domainError(w, &procure.ValidationError{Reason: "paymentMethod must be one of " + fmt.Sprint(models.PaymentMethods)})
		return
	}

	record := models.AccountsPayment{
		PONumber:      req.PONumber,
		SupplierName:  req.SupplierName,
		Material:      req.Material,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		PaymentDate:   *req.PaymentDate,
		Remarks:       req.Remarks,
		Status:        "Processed",
		CreatedBy:     middleware.GetUserID(r),
	}
	if err := config.DB.Create(&record).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	auditRecorder().Record("Payment Processed", middleware.GetUserID(r), middleware.GetRole(r),
		fmt.Sprintf("Payment of %s processed for PO %s via %s", record.Amount, record.PONumber, record.PaymentMethod))
	respondJSON(w, http.StatusCreated, record)
}

// ListPayments returns payments, latest payment first.
func ListPayments(w http.ResponseWriter, r *http.Request) {
	var records []models.AccountsPayment
	err := config.DB.Order("payment_date DESC").Find(&records).Error
	respondJSON(w, http.StatusOK, repository.FailSoft("list payments", records, err))
}

type gnrReq struct {
	GNRNumber       string  `json:"gnrNumber"`
	PONumber        string  `json:"poNumber"`
	SupplierName    string  `json:"supplierName"`
	Material        string  `json:"material"`
	Quantity        string  `json:"quantity"`
	Unit            string  `json:"unit"`
	ReceivedDate    string  `json:"receivedDate"`
	ReceivedBy      string  `json:"receivedBy"`
	Condition       string  `json:"condition"`
	StorageLocation string  `json:"storageLocation"`
	VehicleNumber   string  `json:"vehicleNumber"`
	DriverName      string  `json:"driverName"`
	DriverPhone     string  `json:"driverPhone"`
	Remarks         *string `json:"remarks,omitempty"`
}

// CreateGNR files a manual goods note receipt. A blank GNR number gets
// a timestamp-seeded one, same as the form's pre-filled default.
func CreateGNR(w http.ResponseWriter, r *http.Request) {
	var req gnrReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var missing []string
	if req.PONumber == "" {
		missing = append(missing, "poNumber")
	}
	if req.ReceivedDate == "" {
		missing = append(missing, "receivedDate")
	}
	if len(missing) > 0 {
		domainError(w, &procure.ValidationError{Missing: missing})
		return
	}

	number := req.GNRNumber
	if number == "" {
		number = procure.ManualGNRNumber(time.Now())
	}
	record := models.GNR{
		GNRNumber:       number,
		PONumber:        req.PONumber,
		SupplierName:    req.SupplierName,
		Material:        req.Material,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		ReceivedDate:    req.ReceivedDate,
		ReceivedBy:      req.ReceivedBy,
		Condition:       req.Condition,
		StorageLocation: req.StorageLocation,
		VehicleNumber:   req.VehicleNumber,
		DriverName:      req.DriverName,
		DriverPhone:     req.DriverPhone,
		Source:          models.GNRManual,
		Status:          "Active",
		Remarks:         req.Remarks,
		CreatedBy:       middleware.GetUserID(r),
	}
	if err := config.DB.Create(&record).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	auditRecorder().Record("GNR Created", middleware.GetUserID(r), middleware.GetRole(r),
		fmt.Sprintf("GNR %s created for PO %s", record.GNRNumber, record.PONumber))
	respondJSON(w, http.StatusCreated, record)
}

// ListGNRs returns filed receipts, latest received first.
func ListGNRs(w http.ResponseWriter, r *http.Request) {
	var records []models.GNR
	err := config.DB.Order("received_date DESC").Find(&records).Error
	respondJSON(w, http.StatusOK, repository.FailSoft("list gnrs", records, err))
}

// DeriveGNR returns the computed GNR view for a PO without persisting
// anything. Repeated calls on the same day return the same record.
func DeriveGNR(w http.ResponseWriter, r *http.Request) {
	po, err := lifecycleService().Get(mux.Vars(r)["poNumber"])
	if err != nil {
		domainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, procure.DeriveGNRFromPO(*po, time.Now()))
}
