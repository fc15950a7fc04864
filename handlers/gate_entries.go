package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/qms/config"
	"p9e.in/qms/models"
	"p9e.in/qms/pkg/procure"
	"p9e.in/qms/repository"
)

// CreateGateEntry records a vehicle arrival against a PO, creating the
// PO's gate document on first arrival.
func CreateGateEntry(w http.ResponseWriter, r *http.Request) {
	var req procure.GateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	doc, err := vehicleService().RecordGateEntry(req, actorFrom(r))
	if err != nil {
		domainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, doc)
}

// gateEntryRow is a flattened vehicle row for the gate dashboard table.
type gateEntryRow struct {
	PONumber     string `json:"poNumber"`
	SupplierName string `json:"supplierName"`
	Material     string `json:"material"`
	models.VehicleEntry
}

// ListGateEntries flattens every gate document's vehicle map into table
// rows, newest document first.
func ListGateEntries(w http.ResponseWriter, r *http.Request) {
	docs, err := repository.NewGateEntries(config.DB).ListAll()
	docs = repository.FailSoft("list gate entries", docs, err)

	rows := []gateEntryRow{}
	for _, doc := range docs {
		for _, vehicle := range doc.Vehicles {
			rows = append(rows, gateEntryRow{
				PONumber:     doc.PONumber,
				SupplierName: doc.SupplierName,
				Material:     doc.Material,
				VehicleEntry: vehicle,
			})
		}
	}
	respondJSON(w, http.StatusOK, rows)
}

// ListVehiclesForPO feeds the vehicle selector on the weighbridge and
// unloading forms. Always 200 with a (possibly empty) list: callers
// degrade to free-text vehicle entry when nothing is bound yet.
func ListVehiclesForPO(w http.ResponseWriter, r *http.Request) {
	vehicles := vehicleService().ListVehiclesForPO(mux.Vars(r)["poNumber"])
	respondJSON(w, http.StatusOK, vehicles)
}

type closeVehicleReq struct {
	OutTime string `json:"outTime"`
}

// CloseVehicle stamps the out time and closes the vehicle's entry.
func CloseVehicle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req closeVehicleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	doc, err := vehicleService().CloseVehicle(vars["poNumber"], vars["vehicleNumber"], req.OutTime, actorFrom(r))
	if err != nil {
		domainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}
