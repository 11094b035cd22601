package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleViewer  UserRole = "viewer"
)

type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:50;not null"`
	Email        string   `gorm:"uniqueIndex;size:100;not null"`
	FullName     string   `gorm:"size:100;not null"`
	Department   string   `gorm:"size:50;not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'viewer'"`
	PasswordHash string   `gorm:"not null"`
	IsActive     bool     `gorm:"not null;default:true"`
}
