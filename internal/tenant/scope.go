package tenant

import "gorm.io/gorm"

// Scope restricts a query to rows owned by companyID.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
