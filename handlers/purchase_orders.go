package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/qms/middleware"
	"p9e.in/qms/models"
	"p9e.in/qms/pkg/procure"
	"p9e.in/qms/repository"
)

func actorFrom(r *http.Request) procure.Actor {
	return procure.Actor{ID: middleware.GetUserID(r), Role: middleware.GetRole(r)}
}

// CreatePurchaseOrder files a new PO (Purchase Team).
func CreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var req procure.CreatePORequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	po, err := lifecycleService().Create(req, actorFrom(r))
	if err != nil {
		domainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, po)
}

// ListPurchaseOrders serves each dashboard its slice of the register:
// Manager sees the pending queue, Vendor the approved queue, Purchase
// Team its own orders, every other role the full register.
func ListPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	svc := lifecycleService()
	var (
		orders []models.PurchaseOrder
		err    error
	)
	switch middleware.GetRole(r) {
	case models.RoleManager:
		orders, err = svc.ListPending()
	case models.RoleVendor:
		orders, err = svc.ListApproved()
	case models.RolePurchaseTeam:
		orders, err = svc.ListForCreator(middleware.GetUserID(r))
	default:
		orders, err = svc.ListAll()
	}
	respondJSON(w, http.StatusOK, repository.FailSoft("list purchase orders", orders, err))
}

// GetPurchaseOrder looks up one PO by its business key.
func GetPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	po, err := lifecycleService().Get(mux.Vars(r)["poNumber"])
	if err != nil {
		domainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, po)
}

type decisionReq struct {
	Decision models.POStatus `json:"decision"`
	Remarks  string          `json:"remarks"`
}

// DecidePurchaseOrder records the manager's approval or rejection.
func DecidePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var req decisionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	po, err := lifecycleService().Decide(mux.Vars(r)["poNumber"], req.Decision, req.Remarks, actorFrom(r))
	if err != nil {
		domainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, po)
}

// DispatchPurchaseOrder marks an approved PO dispatched (Vendor).
func DispatchPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	po, err := lifecycleService().Dispatch(mux.Vars(r)["poNumber"], actorFrom(r))
	if err != nil {
		domainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, po)
}

// SendPurchaseOrderToWP sets the side-channel workflow stage.
func SendPurchaseOrderToWP(w http.ResponseWriter, r *http.Request) {
	po, err := lifecycleService().MarkSentToWP(mux.Vars(r)["poNumber"], actorFrom(r))
	if err != nil {
		domainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, po)
}
