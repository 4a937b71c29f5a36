package persistence

import (
	"time"

	"github.com/ccsdigital/frameworkhub/domain/catalogue"
)

// FrameworkMapper converts between catalogue.Framework and FrameworkModel.
type FrameworkMapper struct{}

// ToDomain converts a database model to a domain entity.
func (FrameworkMapper) ToDomain(m FrameworkModel) catalogue.Framework {
	return catalogue.ReconstructFramework(m.ID, m.SalesforceID, derefID(m.WordPressID), catalogue.FrameworkAttrs{
		RMNumber:        m.RMNumber,
		Title:           m.Title,
		Summary:         m.Summary,
		Description:     m.Description,
		Benefits:        m.Benefits,
		HowToBuy:        m.HowToBuy,
		Type:            m.Type,
		StartDate:       derefTime(m.StartDate),
		EndDate:         derefTime(m.EndDate),
		Status:          m.Status,
		PublishedStatus: m.PublishedStatus,
		Pillar:          m.Pillar,
		Category:        m.Category,
		Terms:           m.Terms,
	})
}

// ToModel converts a domain entity to a database model.
func (FrameworkMapper) ToModel(f catalogue.Framework) FrameworkModel {
	return FrameworkModel{
		ID:              f.ID(),
		SalesforceID:    f.SalesforceID(),
		WordPressID:     refID(f.WordPressID()),
		RMNumber:        f.RMNumber(),
		Title:           f.Title(),
		Summary:         f.Summary(),
		Description:     f.Description(),
		Benefits:        f.Benefits(),
		HowToBuy:        f.HowToBuy(),
		Type:            f.Type(),
		StartDate:       refTime(f.StartDate()),
		EndDate:         refTime(f.EndDate()),
		Status:          f.Status(),
		PublishedStatus: f.PublishedStatus(),
		Pillar:          f.Pillar(),
		Category:        f.Category(),
		Terms:           f.Terms(),
	}
}

// LotMapper converts between catalogue.Lot and LotModel.
type LotMapper struct{}

// ToDomain converts a database model to a domain entity.
func (LotMapper) ToDomain(m LotModel) catalogue.Lot {
	return catalogue.ReconstructLot(m.ID, m.SalesforceID, derefID(m.WordPressID), m.FrameworkID, m.Title, m.Description)
}

// ToModel converts a domain entity to a database model.
func (LotMapper) ToModel(l catalogue.Lot) LotModel {
	return LotModel{
		ID:           l.ID(),
		SalesforceID: l.SalesforceID(),
		WordPressID:  refID(l.WordPressID()),
		FrameworkID:  l.FrameworkSalesforceID(),
		Title:        l.Title(),
		Description:  l.Description(),
	}
}

// SupplierMapper converts between catalogue.Supplier and SupplierModel.
type SupplierMapper struct{}

// ToDomain converts a database model to a domain entity.
func (SupplierMapper) ToDomain(m SupplierModel) catalogue.Supplier {
	return catalogue.ReconstructSupplier(m.ID, m.SalesforceID, m.Name, m.TradingName, m.DUNSNumber, m.City, m.Postcode, m.OnLiveFrameworks)
}

// ToModel converts a domain entity to a database model.
func (SupplierMapper) ToModel(s catalogue.Supplier) SupplierModel {
	return SupplierModel{
		ID:               s.ID(),
		SalesforceID:     s.SalesforceID(),
		Name:             s.Name(),
		TradingName:      s.TradingName(),
		DUNSNumber:       s.DUNSNumber(),
		City:             s.City(),
		Postcode:         s.Postcode(),
		OnLiveFrameworks: s.OnLiveFrameworks(),
	}
}

// LotSupplierMapper converts between catalogue.LotSupplier and LotSupplierModel.
type LotSupplierMapper struct{}

// ToDomain converts a database model to a domain entity.
func (LotSupplierMapper) ToDomain(m LotSupplierModel) catalogue.LotSupplier {
	return catalogue.NewLotSupplier(m.LotID, m.SupplierID).
		WithContact(m.ContactName, m.ContactEmail, m.WebsiteContact)
}

// ToModel converts a domain entity to a database model.
func (LotSupplierMapper) ToModel(ls catalogue.LotSupplier) LotSupplierModel {
	return LotSupplierModel{
		LotID:          ls.LotSalesforceID(),
		SupplierID:     ls.SupplierSalesforceID(),
		ContactName:    ls.ContactName(),
		ContactEmail:   ls.ContactEmail(),
		WebsiteContact: ls.WebsiteContact(),
	}
}

func derefID(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func refID(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

func derefTime(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return *p
}

func refTime(v time.Time) *time.Time {
	if v.IsZero() {
		return nil
	}
	return &v
}
