package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"p9e.in/qms/config"
	"p9e.in/qms/pkg/procure"
	"p9e.in/qms/repository"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// domainError maps the procure error taxonomy onto HTTP statuses.
// Validation and transition failures happen before any write, so a
// non-2xx response always means nothing was persisted.
func domainError(w http.ResponseWriter, err error) {
	var (
		validation *procure.ValidationError
		transition *procure.IllegalTransitionError
		notFound   *procure.NotFoundError
		conflict   *procure.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		http.Error(w, validation.Error(), http.StatusBadRequest)
	case errors.As(err, &transition):
		http.Error(w, transition.Error(), http.StatusConflict)
	case errors.As(err, &notFound):
		http.Error(w, notFound.Error(), http.StatusNotFound)
	case errors.As(err, &conflict):
		http.Error(w, conflict.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func auditRecorder() *procure.Recorder {
	return procure.NewRecorder(repository.NewActivityLogs(config.DB))
}

func lifecycleService() *procure.Lifecycle {
	return procure.NewLifecycle(repository.NewPurchaseOrders(config.DB), auditRecorder())
}

func vehicleService() *procure.Vehicles {
	return procure.NewVehicles(repository.NewGateEntries(config.DB), auditRecorder())
}
