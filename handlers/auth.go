package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"p9e.in/qms/config"
	"p9e.in/qms/middleware"
	"p9e.in/qms/models"
	"p9e.in/qms/repository"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type userPayload struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
}

// Login authenticates a principal. Bootstrap rule: when no users exist
// at all, the very first login creates that principal as the system
// Admin and signs it in — "zero users" is the trigger, not a flag.
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	users := repository.NewUsers(config.DB)
	count, err := users.Count()
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if count == 0 {
		bootstrapFirstAdmin(w, req, users)
		return
	}

	u, err := users.GetByEmail(req.Email)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !u.IsActive {
		http.Error(w, "account disabled", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := middleware.GenerateToken(u.ID.String(), u.Email, u.DisplayName, u.Role)
	if err != nil {
		http.Error(w, "couldn't create token", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, loginResp{
		Token: token,
		User:  userPayload{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, Role: u.Role},
	})
}

func bootstrapFirstAdmin(w http.ResponseWriter, req loginReq, users *repository.Users) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "error hashing password", http.StatusInternalServerError)
		return
	}
	admin := &models.User{
		Email:        req.Email,
		DisplayName:  "System Administrator",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
		CreatedBy:    "bootstrap",
	}
	if err := users.CreateWithMembership(admin); err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	auditRecorder().Record("Admin Bootstrapped", admin.ID.String(), models.RoleAdmin,
		"First login created system administrator "+admin.Email)

	token, err := middleware.GenerateToken(admin.ID.String(), admin.Email, admin.DisplayName, admin.Role)
	if err != nil {
		http.Error(w, "couldn't create token", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, loginResp{
		Token: token,
		User:  userPayload{ID: admin.ID, Email: admin.Email, DisplayName: admin.DisplayName, Role: admin.Role},
	})
}

// GetCurrentUser resolves the bearer token to the stored principal.
func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	u, err := repository.NewUsers(config.DB).GetByID(claims.UserID)
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, userPayload{
		ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, Role: u.Role,
	})
}
