package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"p9e.in/qms/models"
)

// Users persists principals and the per-role secondary index.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// CreateWithMembership writes the user row and its role-membership
// index entry in one transaction. The membership SeqNo comes from the
// role's counter row incremented under a row lock, so two concurrent
// creates in the same role get distinct numbers.
func (r *Users) CreateWithMembership(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		var counter models.RoleCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("role = ?", user.Role).First(&counter).Error
		if err == gorm.ErrRecordNotFound {
			counter = models.RoleCounter{Role: user.Role}
			if err := tx.Create(&counter).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		counter.Next++
		if err := tx.Save(&counter).Error; err != nil {
			return err
		}

		membership := models.RoleMembership{
			Role:        user.Role,
			UserID:      user.ID,
			SeqNo:       counter.Next,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			IsActive:    user.IsActive,
			CreatedAt:   user.CreatedAt,
		}
		return tx.Create(&membership).Error
	})
}

// UpdateWithMembership applies profile changes to both the user row and
// its index entry. A role change moves the membership to the new role
// with a freshly allocated SeqNo.
func (r *Users) UpdateWithMembership(user *models.User, previousRole string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		if previousRole == user.Role {
			return tx.Model(&models.RoleMembership{}).
				Where("role = ? AND user_id = ?", user.Role, user.ID).
				Updates(map[string]interface{}{
					"display_name": user.DisplayName,
					"is_active":    user.IsActive,
				}).Error
		}

		if err := tx.Where("role = ? AND user_id = ?", previousRole, user.ID).
			Delete(&models.RoleMembership{}).Error; err != nil {
			return err
		}

		var counter models.RoleCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("role = ?", user.Role).First(&counter).Error
		if err == gorm.ErrRecordNotFound {
			counter = models.RoleCounter{Role: user.Role}
			if err := tx.Create(&counter).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		counter.Next++
		if err := tx.Save(&counter).Error; err != nil {
			return err
		}

		return tx.Create(&models.RoleMembership{
			Role:        user.Role,
			UserID:      user.ID,
			SeqNo:       counter.Next,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			IsActive:    user.IsActive,
			CreatedAt:   user.CreatedAt,
		}).Error
	})
}

// Count returns the number of principals; zero triggers the first-login
// admin bootstrap.
func (r *Users) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.User{}).Count(&n).Error
	return n, err
}

func (r *Users) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Users) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Users) ListAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *Users) ListMemberships(role string) ([]models.RoleMembership, error) {
	var members []models.RoleMembership
	err := r.db.Where("role = ?", role).Order("seq_no ASC").Find(&members).Error
	return members, err
}
