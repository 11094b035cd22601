// Package service implements the asset lifecycle core: the status state
// machine, the issuance ledger, the signature document tracker and the
// audit recorder. Every mutating operation runs inside a single database
// transaction so the status check, ledger write and document writes commit
// together or not at all.
package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/skyseen/ITAM/internal/models"
)

// SigningWindow is how long a pending document stays signable.
const SigningWindow = 7 * 24 * time.Hour

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Actor identifies the authenticated caller of a mutating operation. It is
// threaded explicitly through every call; the core never looks up an
// implicit system user.
type Actor struct {
	ID        uint
	Name      string
	Role      models.UserRole
	IPAddress string
	UserAgent string
}
