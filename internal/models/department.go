package models

import "gorm.io/gorm"

// DefaultDepartment is the custodial department an asset falls back to
// when it is returned or its issuance is cancelled.
const DefaultDepartment = "IT"

type Department struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;size:50;not null"`
	Description string `gorm:"type:text"`
}
