package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/qms/handlers"
	"p9e.in/qms/middleware"
	"p9e.in/qms/models"
)

// gate wraps a handler so only the listed departments (plus Admin, who
// can reach everything) may call it.
func gate(h http.HandlerFunc, roles ...string) http.Handler {
	return middleware.RequireRole(append(roles, models.RoleAdmin), h)
}

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/login", handlers.Login).Methods("POST")

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/me", handlers.GetCurrentUser).Methods("GET")
	api.HandleFunc("/activity", handlers.ListActivityLogs).Methods("GET")

	// Purchase orders
	api.Handle("/purchase-orders", gate(handlers.CreatePurchaseOrder, models.RolePurchaseTeam)).Methods("POST")
	api.HandleFunc("/purchase-orders", handlers.ListPurchaseOrders).Methods("GET")
	api.HandleFunc("/purchase-orders/{poNumber}", handlers.GetPurchaseOrder).Methods("GET")
	api.Handle("/purchase-orders/{poNumber}/decision", gate(handlers.DecidePurchaseOrder, models.RoleManager)).Methods("POST")
	api.Handle("/purchase-orders/{poNumber}/dispatch", gate(handlers.DispatchPurchaseOrder, models.RoleVendor)).Methods("POST")
	api.Handle("/purchase-orders/{poNumber}/send-to-wp", gate(handlers.SendPurchaseOrderToWP, models.RolePurchaseTeam)).Methods("POST")
	api.HandleFunc("/purchase-orders/{poNumber}/gnr", handlers.DeriveGNR).Methods("GET")
	api.HandleFunc("/purchase-orders/{poNumber}/vehicles", handlers.ListVehiclesForPO).Methods("GET")

	// Gate entries
	api.Handle("/gate-entries", gate(handlers.CreateGateEntry, models.RoleGateSecurity)).Methods("POST")
	api.HandleFunc("/gate-entries", handlers.ListGateEntries).Methods("GET")
	api.Handle("/gate-entries/{poNumber}/vehicles/{vehicleNumber}/close",
		gate(handlers.CloseVehicle, models.RoleGateSecurity)).Methods("POST")

	// Weighbridge
	api.Handle("/weighbridge", gate(handlers.CreateWeighbridgeRecord, models.RoleWeighbridge)).Methods("POST")
	api.HandleFunc("/weighbridge", handlers.ListWeighbridgeRecords).Methods("GET")
	api.Handle("/weighbridge/{id}", gate(handlers.UpdateWeighbridgeRecord, models.RoleWeighbridge)).Methods("PUT")

	// Unloading
	api.Handle("/unloading", gate(handlers.CreateUnloadingRecord, models.RoleUnloading)).Methods("POST")
	api.HandleFunc("/unloading", handlers.ListUnloadingRecords).Methods("GET")

	// Samples and QC
	api.Handle("/samples", gate(handlers.CreateSample, models.RoleSampleDept)).Methods("POST")
	api.HandleFunc("/samples", handlers.ListSamples).Methods("GET")
	api.Handle("/qc-results", gate(handlers.CreateQCResult, models.RoleQCDept)).Methods("POST")
	api.HandleFunc("/qc-results", handlers.ListQCResults).Methods("GET")

	// Accounts
	api.Handle("/payments", gate(handlers.CreatePayment, models.RoleAccounts)).Methods("POST")
	api.HandleFunc("/payments", handlers.ListPayments).Methods("GET")
	api.Handle("/gnrs", gate(handlers.CreateGNR, models.RoleAccounts)).Methods("POST")
	api.HandleFunc("/gnrs", handlers.ListGNRs).Methods("GET")

	// =====================================================
	// Admin Routes (require admin role)
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(func(next http.Handler) http.Handler {
		return middleware.RequireRole([]string{models.RoleAdmin}, next)
	})
	admin.HandleFunc("/users", handlers.CreateUser).Methods("POST")
	admin.HandleFunc("/users", handlers.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}", handlers.UpdateUser).Methods("PUT")
	admin.HandleFunc("/users/{id}/deactivate", handlers.DeactivateUser).Methods("POST")
	admin.HandleFunc("/roles/{role}/members", handlers.ListRoleMembers).Methods("GET")
	admin.HandleFunc("/export/purchase-orders/excel", handlers.ExportPurchaseOrdersToExcel).Methods("GET")
	admin.HandleFunc("/export/purchase-orders/csv", handlers.ExportPurchaseOrdersToCSV).Methods("GET")

	return r
}
