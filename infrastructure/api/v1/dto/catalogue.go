// Package dto defines the JSON shapes served by the v1 API.
package dto

import (
	"time"

	appservice "github.com/ccsdigital/frameworkhub/application/service"
	"github.com/ccsdigital/frameworkhub/domain/catalogue"
	"github.com/ccsdigital/frameworkhub/domain/service"
)

const dateLayout = "2006-01-02"

// Meta is the list envelope metadata: the unpaged total, the applied limit,
// the number of results on this page, and the page number (page 0 is
// reported as 1).
type Meta struct {
	TotalResults int64 `json:"total_results"`
	Limit        int   `json:"limit"`
	Results      int   `json:"results"`
	Page         int   `json:"page"`
}

// ListResponse is the envelope for paged list endpoints.
type ListResponse struct {
	Meta    Meta `json:"meta"`
	Results any  `json:"results"`
}

// Framework is the JSON shape of a framework.
type Framework struct {
	ID              int64   `json:"id"`
	SalesforceID    string  `json:"salesforce_id"`
	WordPressID     *int64  `json:"wordpress_id"`
	RMNumber        string  `json:"rm_number"`
	Title           string  `json:"title"`
	Summary         string  `json:"summary"`
	Description     string  `json:"description"`
	Benefits        string  `json:"benefits"`
	HowToBuy        string  `json:"how_to_buy"`
	Type            string  `json:"type"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	Status          string  `json:"status"`
	PublishedStatus string  `json:"published_status"`
	Pillar          string  `json:"pillar"`
	Category        string  `json:"category"`
	Terms           string  `json:"terms"`
}

// Lot is the JSON shape of a lot.
type Lot struct {
	ID           int64  `json:"id"`
	SalesforceID string `json:"salesforce_id"`
	WordPressID  *int64 `json:"wordpress_id"`
	FrameworkID  string `json:"framework_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
}

// Supplier is the JSON shape of a supplier.
type Supplier struct {
	ID               int64  `json:"id"`
	SalesforceID     string `json:"salesforce_id"`
	Name             string `json:"name"`
	TradingName      string `json:"trading_name"`
	DUNSNumber       string `json:"duns_number"`
	City             string `json:"city"`
	Postcode         string `json:"postcode"`
	OnLiveFrameworks bool   `json:"on_live_frameworks"`
}

// SupplierListItem is a supplier annotated with its live frameworks, as
// served by the supplier list endpoint.
type SupplierListItem struct {
	Supplier
	LiveFrameworks []Framework `json:"live_frameworks"`
}

// FrameworkWithLots is a framework with its lots, embedded in the supplier
// detail response.
type FrameworkWithLots struct {
	Framework
	Lots []Lot `json:"lots"`
}

// SupplierDetail is the single-supplier response.
type SupplierDetail struct {
	Supplier
	Frameworks []FrameworkWithLots `json:"frameworks"`
}

// SearchHit is one supplier hit from the search index.
type SearchHit struct {
	ID             int64                      `json:"id"`
	SalesforceID   string                     `json:"salesforce_id"`
	Name           string                     `json:"name"`
	TradingName    string                     `json:"trading_name"`
	DUNSNumber     string                     `json:"duns_number"`
	City           string                     `json:"city"`
	Postcode       string                     `json:"postcode"`
	LiveFrameworks []service.FrameworkSummary `json:"live_frameworks"`
}

// EditorialRequest is the PATCH body for the framework editorial endpoint.
// Absent fields are left untouched.
type EditorialRequest struct {
	Summary     *string `json:"summary"`
	Description *string `json:"description"`
	Benefits    *string `json:"benefits"`
	HowToBuy    *string `json:"how_to_buy"`
}

// ToPatch converts the request body to a domain patch.
func (r EditorialRequest) ToPatch() catalogue.FrameworkPatch {
	return catalogue.FrameworkPatch{
		Summary:     r.Summary,
		Description: r.Description,
		Benefits:    r.Benefits,
		HowToBuy:    r.HowToBuy,
	}
}

// FrameworkFromDomain converts a domain framework.
func FrameworkFromDomain(f catalogue.Framework) Framework {
	return Framework{
		ID:              f.ID(),
		SalesforceID:    f.SalesforceID(),
		WordPressID:     optionalID(f.WordPressID()),
		RMNumber:        f.RMNumber(),
		Title:           f.Title(),
		Summary:         f.Summary(),
		Description:     f.Description(),
		Benefits:        f.Benefits(),
		HowToBuy:        f.HowToBuy(),
		Type:            f.Type(),
		StartDate:       optionalDate(f.StartDate()),
		EndDate:         optionalDate(f.EndDate()),
		Status:          f.Status(),
		PublishedStatus: f.PublishedStatus(),
		Pillar:          f.Pillar(),
		Category:        f.Category(),
		Terms:           f.Terms(),
	}
}

// FrameworksFromDomain converts a slice of domain frameworks.
func FrameworksFromDomain(frameworks []catalogue.Framework) []Framework {
	out := make([]Framework, len(frameworks))
	for i, f := range frameworks {
		out[i] = FrameworkFromDomain(f)
	}
	return out
}

// LotFromDomain converts a domain lot.
func LotFromDomain(l catalogue.Lot) Lot {
	return Lot{
		ID:           l.ID(),
		SalesforceID: l.SalesforceID(),
		WordPressID:  optionalID(l.WordPressID()),
		FrameworkID:  l.FrameworkSalesforceID(),
		Title:        l.Title(),
		Description:  l.Description(),
	}
}

// SupplierFromDomain converts a domain supplier.
func SupplierFromDomain(s catalogue.Supplier) Supplier {
	return Supplier{
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

// SupplierListFromDomain converts the paged supplier read model.
func SupplierListFromDomain(suppliers []appservice.SupplierWithFrameworks) []SupplierListItem {
	out := make([]SupplierListItem, len(suppliers))
	for i, s := range suppliers {
		out[i] = SupplierListItem{
			Supplier:       SupplierFromDomain(s.Supplier),
			LiveFrameworks: FrameworksFromDomain(s.LiveFrameworks),
		}
	}
	return out
}

// SupplierDetailFromDomain converts the single-supplier read model.
func SupplierDetailFromDomain(detail appservice.SupplierDetail) SupplierDetail {
	frameworks := make([]FrameworkWithLots, len(detail.Frameworks))
	for i, fw := range detail.Frameworks {
		lots := make([]Lot, len(fw.Lots))
		for j, lot := range fw.Lots {
			lots[j] = LotFromDomain(lot)
		}
		frameworks[i] = FrameworkWithLots{
			Framework: FrameworkFromDomain(fw.Framework),
			Lots:      lots,
		}
	}
	return SupplierDetail{
		Supplier:   SupplierFromDomain(detail.Supplier),
		Frameworks: frameworks,
	}
}

// SearchHitsFromDocuments converts search index documents.
func SearchHitsFromDocuments(docs []service.SupplierDocument) []SearchHit {
	out := make([]SearchHit, len(docs))
	for i, d := range docs {
		frameworks := d.LiveFrameworks
		if frameworks == nil {
			frameworks = []service.FrameworkSummary{}
		}
		out[i] = SearchHit{
			ID:             d.ID,
			SalesforceID:   d.SalesforceID,
			Name:           d.Name,
			TradingName:    d.TradingName,
			DUNSNumber:     d.DUNSNumber,
			City:           d.City,
			Postcode:       d.Postcode,
			LiveFrameworks: frameworks,
		}
	}
	return out
}

func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func optionalDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
