package procure

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"p9e.in/qms/models"
)

// GateEntryRepository persists the per-PO gate entry documents.
type GateEntryRepository interface {
	Get(poNumber string) (*models.GateEntry, error)
	Save(doc *models.GateEntry) error
}

// GateEntryRequest is the gate security form for one vehicle arrival.
type GateEntryRequest struct {
	PONumber      string `json:"poNumber"`
	SupplierName  string `json:"supplierName"`
	Material      string `json:"material"`
	VehicleNumber string `json:"vehicleNumber"`
	DriverName    string `json:"driverName"`
	DriverPhone   string `json:"driverPhone"`
	EntryTime     string `json:"entryTime"`
	VehicleChecks string `json:"vehicleChecks"`
	Remarks       string `json:"remarks"`
}

// Vehicles binds vehicles to a PO across gate, weighbridge and
// unloading. One gate-entry document per PO; vehicles accumulate into
// its map keyed by vehicle number, each write replacing that vehicle's
// sub-record wholesale.
type Vehicles struct {
	entries GateEntryRepository
	audit   *Recorder
	now     func() time.Time
}

func NewVehicles(entries GateEntryRepository, audit *Recorder) *Vehicles {
	return &Vehicles{entries: entries, audit: audit, now: time.Now}
}

// RecordGateEntry creates the PO's gate document on first arrival and
// merges subsequent vehicles (or edits) into it.
func (v *Vehicles) RecordGateEntry(req GateEntryRequest, actor Actor) (*models.GateEntry, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"poNumber", req.PONumber},
		{"vehicleNumber", req.VehicleNumber},
		{"entryTime", req.EntryTime},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	checks := req.VehicleChecks
	if checks == "" {
		checks = models.CheckPending
	}
	entry := models.VehicleEntry{
		VehicleNumber: req.VehicleNumber,
		DriverName:    req.DriverName,
		DriverPhone:   req.DriverPhone,
		EntryTime:     req.EntryTime,
		VehicleChecks: checks,
		Remarks:       req.Remarks,
		Status:        models.VehicleActive,
	}

	now := v.now()
	doc, err := v.entries.Get(req.PONumber)
	switch {
	case errors.Is(err, ErrNotFound):
		doc = &models.GateEntry{
			PONumber:     req.PONumber,
			SupplierName: req.SupplierName,
			Material:     req.Material,
			Vehicles:     models.VehicleMap{req.VehicleNumber: entry},
			Status:       "Active",
			CreatedBy:    actor.ID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := v.save(doc); err != nil {
			return nil, err
		}
		v.audit.RecordWith("Gate Entry Recorded", actor.ID, actor.Role,
			fmt.Sprintf("Vehicle %s entered for PO %s", req.VehicleNumber, req.PONumber),
			map[string]string{"poNumber": req.PONumber, "vehicleNumber": req.VehicleNumber})
		return doc, nil
	case err != nil:
		return nil, &StoreError{Op: "load gate entry", Err: err}
	}

	_, existed := doc.Vehicles[req.VehicleNumber]
	if doc.Vehicles == nil {
		doc.Vehicles = models.VehicleMap{}
	}
	doc.Vehicles[req.VehicleNumber] = entry
	doc.UpdatedAt = now
	if err := v.save(doc); err != nil {
		return nil, err
	}

	action, word := "Gate Entry Recorded", "entered"
	if existed {
		action, word = "Gate Entry Updated", "updated"
	}
	v.audit.RecordWith(action, actor.ID, actor.Role,
		fmt.Sprintf("Vehicle %s %s for PO %s", req.VehicleNumber, word, req.PONumber),
		map[string]string{"poNumber": req.PONumber, "vehicleNumber": req.VehicleNumber})
	return doc, nil
}

// ListVehiclesForPO returns the vehicles bound to a PO, sorted by
// vehicle number. An absent document or a failed lookup yields an empty
// slice, never an error: downstream forms degrade to free-text vehicle
// entry.
func (v *Vehicles) ListVehiclesForPO(poNumber string) []models.VehicleEntry {
	doc, err := v.entries.Get(poNumber)
	if errors.Is(err, ErrNotFound) {
		return []models.VehicleEntry{}
	}
	if err != nil {
		log.Printf("gate entry lookup for PO %s failed, returning no vehicles: %v", poNumber, err)
		return []models.VehicleEntry{}
	}
	vehicles := make([]models.VehicleEntry, 0, len(doc.Vehicles))
	for _, entry := range doc.Vehicles {
		vehicles = append(vehicles, entry)
	}
	sort.Slice(vehicles, func(i, j int) bool {
		return vehicles[i].VehicleNumber < vehicles[j].VehicleNumber
	})
	return vehicles
}

// CloseVehicle stamps the out time on a vehicle and marks it Closed.
// The out time must not precede the recorded entry time when both
// parse.
func (v *Vehicles) CloseVehicle(poNumber, vehicleNumber, outTime string, actor Actor) (*models.GateEntry, error) {
	if outTime == "" {
		return nil, &ValidationError{Missing: []string{"outTime"}}
	}

	doc, err := v.entries.Get(poNumber)
	if errors.Is(err, ErrNotFound) {
		return nil, &NotFoundError{Kind: "gate entry", Key: poNumber}
	}
	if err != nil {
		return nil, &StoreError{Op: "load gate entry", Err: err}
	}
	entry, ok := doc.Vehicles[vehicleNumber]
	if !ok {
		return nil, &NotFoundError{Kind: "vehicle", Key: vehicleNumber}
	}

	if in, okIn := models.ParseFormTime(entry.EntryTime); okIn {
		if out, okOut := models.ParseFormTime(outTime); okOut && out.Before(in) {
			return nil, &ValidationError{Reason: "outTime must not be before entryTime"}
		}
	}

	entry.OutTime = &outTime
	entry.Status = models.VehicleClosed
	doc.Vehicles[vehicleNumber] = entry
	doc.UpdatedAt = v.now()
	if err := v.save(doc); err != nil {
		return nil, err
	}
	v.audit.Record("Gate Entry Updated", actor.ID, actor.Role,
		fmt.Sprintf("Vehicle %s closed for PO %s", vehicleNumber, poNumber))
	return doc, nil
}

func (v *Vehicles) save(doc *models.GateEntry) error {
	if err := v.entries.Save(doc); err != nil {
		return &StoreError{Op: "save gate entry", Err: err}
	}
	return nil
}
