package membership

import (
	"time"

	"github.com/google/uuid"
)

type Membership struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_memberships_company_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_memberships_company_user"`
	Role      string    `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`
	OnLeave   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *User `gorm:"foreignKey:UserID;references:ID"`
}

func (Membership) TableName() string {
	return "memberships"
}

// User is the read-only projection of the auth subsystem's user record.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(255)"`
	Email         string    `gorm:"type:varchar(255)"`
	EmailVerified bool      `gorm:"column:email_verified"`
}

func (User) TableName() string {
	return "users"
}
