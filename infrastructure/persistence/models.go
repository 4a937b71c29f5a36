// Package persistence provides GORM-backed implementations of the catalogue
// store interfaces.
package persistence

import "time"

// FrameworkModel is the database model for frameworks. Lots and lot-supplier
// links reference frameworks and lots by CRM id, not by primary key, so the
// salesforce_id columns carry unique indexes.
type FrameworkModel struct {
	ID              int64      `gorm:"primaryKey;autoIncrement"`
	SalesforceID    string     `gorm:"column:salesforce_id;uniqueIndex;not null"`
	WordPressID     *int64     `gorm:"column:wordpress_id"`
	RMNumber        string     `gorm:"column:rm_number"`
	Title           string     `gorm:"column:title"`
	Summary         string     `gorm:"column:summary"`
	Description     string     `gorm:"column:description"`
	Benefits        string     `gorm:"column:benefits"`
	HowToBuy        string     `gorm:"column:how_to_buy"`
	Type            string     `gorm:"column:type"`
	StartDate       *time.Time `gorm:"column:start_date"`
	EndDate         *time.Time `gorm:"column:end_date"`
	Status          string     `gorm:"column:status;index"`
	PublishedStatus string     `gorm:"column:published_status"`
	Pillar          string     `gorm:"column:pillar"`
	Category        string     `gorm:"column:category"`
	Terms           string     `gorm:"column:terms"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the database table name.
func (FrameworkModel) TableName() string { return "frameworks" }

// LotModel is the database model for lots. FrameworkID holds the owning
// framework's CRM id.
type LotModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	SalesforceID string `gorm:"column:salesforce_id;uniqueIndex;not null"`
	WordPressID  *int64 `gorm:"column:wordpress_id"`
	FrameworkID  string `gorm:"column:framework_id;index;not null"`
	Title        string `gorm:"column:title"`
	Description  string `gorm:"column:description"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the database table name.
func (LotModel) TableName() string { return "lots" }

// SupplierModel is the database model for suppliers.
type SupplierModel struct {
	ID               int64  `gorm:"primaryKey;autoIncrement"`
	SalesforceID     string `gorm:"column:salesforce_id;uniqueIndex;not null"`
	Name             string `gorm:"column:name"`
	TradingName      string `gorm:"column:trading_name"`
	DUNSNumber       string `gorm:"column:duns_number"`
	City             string `gorm:"column:city"`
	Postcode         string `gorm:"column:postcode"`
	OnLiveFrameworks bool   `gorm:"column:on_live_frameworks;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the database table name.
func (SupplierModel) TableName() string { return "suppliers" }

// LotSupplierModel is the database model for lot-supplier links. LotID and
// SupplierID hold CRM ids. The whole set for a lot is replaced on every sync
// pass.
type LotSupplierModel struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	LotID          string `gorm:"column:lot_id;index;not null"`
	SupplierID     string `gorm:"column:supplier_id;index;not null"`
	ContactName    string `gorm:"column:contact_name"`
	ContactEmail   string `gorm:"column:contact_email"`
	WebsiteContact string `gorm:"column:website_contact"`
	CreatedAt      time.Time
}

// TableName returns the database table name.
func (LotSupplierModel) TableName() string { return "lot_suppliers" }
