package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an authenticatable principal holding exactly one role from
// the closed set.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	DisplayName  string    `gorm:"size:100;not null" json:"displayName"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:30;not null" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedBy    string    `gorm:"size:64" json:"createdBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// RoleMembership is the denormalized per-role index of users. SeqNo is
// the small incrementing id departments refer to ("QC user #3"); it is
// allocated from RoleCounter inside the same transaction that creates
// the User row.
type RoleMembership struct {
	Role        string    `gorm:"size:30;primaryKey" json:"role"`
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	SeqNo       int       `gorm:"not null" json:"seqNo"`
	Email       string    `gorm:"size:100;not null" json:"email"`
	DisplayName string    `gorm:"size:100;not null" json:"displayName"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RoleCounter hands out SeqNo values. Incremented under a row lock, not
// by counting members, so two concurrent creates cannot collide.
type RoleCounter struct {
	Role string `gorm:"size:30;primaryKey"`
	Next int    `gorm:"not null;default:0"`
}
