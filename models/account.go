package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleMaster = "master"
	RoleAgent  = "agent"
	RoleUser   = "user"
)

const (
	StatusActive = "active"
	StatusLocked = "locked"
)

// Account is a node in the credit tree. ParentID is nil only for the root
// admin; every other account is created by (and funded through) its upline.
type Account struct {
	gorm.Model

	Username     string          `gorm:"uniqueIndex;size:32" json:"username"`
	PasswordHash string          `gorm:"size:128" json:"-"`
	Role         string          `gorm:"size:16;index" json:"role"`
	ParentID     *uint           `gorm:"index" json:"parent_id"`
	Parent       *Account        `gorm:"foreignKey:ParentID" json:"-"`
	Balance      decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"balance"`

	// SharePercent is the fraction of downline win/loss this account absorbs,
	// CommissionPercent the fraction of downline turnover it earns either way.
	SharePercent      decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"share_percent"`
	CommissionPercent decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"commission_percent"`

	Status string `gorm:"size:16;default:active" json:"status"`

	Children []Account     `gorm:"foreignKey:ParentID" json:"-"`
	Entries  []LedgerEntry `gorm:"foreignKey:AccountID" json:"-"`
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a *Account) IsLocked() bool {
	return a.Status == StatusLocked
}

// CanCreate reports whether this account may create a downline of the given
// role. Admin creates anything below itself, master creates agents and users,
// agents create users only.
func (a *Account) CanCreate(role string) bool {
	switch a.Role {
	case RoleAdmin:
		return role == RoleMaster || role == RoleAgent || role == RoleUser
	case RoleMaster:
		return role == RoleAgent || role == RoleUser
	case RoleAgent:
		return role == RoleUser
	}
	return false
}

type Session struct {
	gorm.Model

	Token     string `gorm:"uniqueIndex;size:64"`
	AccountID uint   `gorm:"index"`
	Account   Account
}
