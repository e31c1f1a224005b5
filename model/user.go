package model

import (
	"gorm.io/gorm"
)

type UserRole string

const (
	RolePelanggan UserRole = "pelanggan"
	RoleKasir     UserRole = "kasir"
	RoleAdmin     UserRole = "admin"
)

func ValidRole(r UserRole) bool {
	return r == RolePelanggan || r == RoleKasir || r == RoleAdmin
}

// StaffRole reports whether the role logs in with email and password.
// Customers authenticate with phone OTP only and carry no password hash.
func StaffRole(r UserRole) bool {
	return r == RoleKasir || r == RoleAdmin
}

type User struct {
	gorm.Model
	Name     string   `json:"name"`
	Email    string   `json:"email" gorm:"index"`
	Phone    string   `json:"phone" gorm:"index"`
	Role     UserRole `json:"role" gorm:"type:varchar(20);default:'pelanggan'"`
	Active   bool     `json:"active" gorm:"default:true"`
	Password string   `json:"-"`
}
