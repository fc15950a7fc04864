package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
	"p9e.in/qms/config"
	"p9e.in/qms/middleware"
	"p9e.in/qms/models"
	"p9e.in/qms/repository"
)

type createUserReq struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	IsActive    *bool  `json:"isActive"`
}

// CreateUser provisions a principal plus its role-index entry. Only
// Admin reaches this route.
func CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" || req.DisplayName == "" {
		http.Error(w, "email, password and displayName are required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 6 {
		http.Error(w, "password must be at least 6 characters", http.StatusBadRequest)
		return
	}
	if !models.ValidRole(req.Role) {
		http.Error(w, "unknown role: "+req.Role, http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "error hashing password", http.StatusInternalServerError)
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	u := &models.User{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     active,
		CreatedBy:    middleware.GetUserID(r),
	}
	if err := repository.NewUsers(config.DB).CreateWithMembership(u); err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	auditRecorder().Record("User Created", middleware.GetUserID(r), middleware.GetRole(r),
		"User "+u.Email+" created with role "+u.Role)
	respondJSON(w, http.StatusCreated, u)
}

// ListUsers returns every principal, newest first.
func ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := repository.NewUsers(config.DB).ListAll()
	respondJSON(w, http.StatusOK, repository.FailSoft("list users", users, err))
}

type updateUserReq struct {
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	IsActive    *bool  `json:"isActive"`
}

// UpdateUser edits profile fields; a role change re-indexes the user
// under the new role.
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	users := repository.NewUsers(config.DB)
	u, err := users.GetByID(id)
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	var req updateUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	previousRole := u.Role
	if req.DisplayName != "" {
		u.DisplayName = req.DisplayName
	}
	if req.Role != "" {
		if !models.ValidRole(req.Role) {
			http.Error(w, "unknown role: "+req.Role, http.StatusBadRequest)
			return
		}
		u.Role = req.Role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := users.UpdateWithMembership(u, previousRole); err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	auditRecorder().Record("User Updated", middleware.GetUserID(r), middleware.GetRole(r),
		"User "+u.Email+" updated")
	respondJSON(w, http.StatusOK, u)
}

// DeactivateUser disables login without destroying the audit trail
// behind the user's past actions.
func DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	users := repository.NewUsers(config.DB)
	u, err := users.GetByID(id)
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	u.IsActive = false
	if err := users.UpdateWithMembership(u, u.Role); err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	auditRecorder().Record("User Deactivated", middleware.GetUserID(r), middleware.GetRole(r),
		"User "+u.Email+" deactivated")
	respondJSON(w, http.StatusOK, u)
}

// ListRoleMembers returns the denormalized per-role index, ordered by
// the small incremental id.
func ListRoleMembers(w http.ResponseWriter, r *http.Request) {
	role := mux.Vars(r)["role"]
	if !models.ValidRole(role) {
		http.Error(w, "unknown role: "+role, http.StatusBadRequest)
		return
	}
	members, err := repository.NewUsers(config.DB).ListMemberships(role)
	respondJSON(w, http.StatusOK, repository.FailSoft("list role members", members, err))
}
