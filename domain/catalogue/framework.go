// Package catalogue holds the commercial agreement domain model: frameworks,
// the lots they are divided into, and the suppliers awarded onto those lots.
package catalogue

import "time"

// FrameworkStatus values as they arrive from the CRM.
const (
	StatusLive    = "Live"
	StatusExpired = "Expired"
	StatusFuture  = "Future (Pipeline)"
)

// FrameworkAttrs groups the CRM-origin attributes of a framework.
type FrameworkAttrs struct {
	RMNumber        string
	Title           string
	Summary         string
	Description     string
	Benefits        string
	HowToBuy        string
	Type            string
	StartDate       time.Time
	EndDate         time.Time
	Status          string
	PublishedStatus string
	Pillar          string
	Category        string
	Terms           string
}

// Framework represents a commercial framework agreement synchronized from
// the CRM. The summary, description, benefits, and how-to-buy fields are
// CMS-editable after the first import and are never overwritten by a sync.
type Framework struct {
	id           int64
	salesforceID string
	wordpressID  int64
	attrs        FrameworkAttrs
}

// NewFramework creates a Framework that has not been persisted yet.
func NewFramework(salesforceID string, attrs FrameworkAttrs) Framework {
	return Framework{
		salesforceID: salesforceID,
		attrs:        attrs,
	}
}

// ReconstructFramework rebuilds a Framework from persisted state.
func ReconstructFramework(id int64, salesforceID string, wordpressID int64, attrs FrameworkAttrs) Framework {
	return Framework{
		id:           id,
		salesforceID: salesforceID,
		wordpressID:  wordpressID,
		attrs:        attrs,
	}
}

// ID returns the internal database id (0 when not yet persisted).
func (f Framework) ID() int64 { return f.id }

// SalesforceID returns the external CRM identifier.
func (f Framework) SalesforceID() string { return f.salesforceID }

// WordPressID returns the CMS content entry id (0 when none assigned).
func (f Framework) WordPressID() int64 { return f.wordpressID }

// HasWordPressID reports whether a CMS content entry has been provisioned.
func (f Framework) HasWordPressID() bool { return f.wordpressID != 0 }

// RMNumber returns the framework's RM reference number.
func (f Framework) RMNumber() string { return f.attrs.RMNumber }

// Title returns the framework title.
func (f Framework) Title() string { return f.attrs.Title }

// Summary returns the CMS-editable summary text.
func (f Framework) Summary() string { return f.attrs.Summary }

// Description returns the CMS-editable description text.
func (f Framework) Description() string { return f.attrs.Description }

// Benefits returns the CMS-editable benefits text.
func (f Framework) Benefits() string { return f.attrs.Benefits }

// HowToBuy returns the CMS-editable how-to-buy text.
func (f Framework) HowToBuy() string { return f.attrs.HowToBuy }

// Type returns the framework type.
func (f Framework) Type() string { return f.attrs.Type }

// StartDate returns the date the framework goes live.
func (f Framework) StartDate() time.Time { return f.attrs.StartDate }

// EndDate returns the date the framework expires.
func (f Framework) EndDate() time.Time { return f.attrs.EndDate }

// Status returns the CRM lifecycle status.
func (f Framework) Status() string { return f.attrs.Status }

// PublishedStatus returns the CRM published status.
func (f Framework) PublishedStatus() string { return f.attrs.PublishedStatus }

// Pillar returns the commercial pillar.
func (f Framework) Pillar() string { return f.attrs.Pillar }

// Category returns the commercial category.
func (f Framework) Category() string { return f.attrs.Category }

// Terms returns the framework terms reference.
func (f Framework) Terms() string { return f.attrs.Terms }

// Attrs returns a copy of all CRM-origin attributes.
func (f Framework) Attrs() FrameworkAttrs { return f.attrs }

// WithWordPressID returns a copy carrying the given CMS entry id.
func (f Framework) WithWordPressID(id int64) Framework {
	f.wordpressID = id
	return f
}

// IsLive reports whether the framework is live at the given instant:
// status Live and now within [start_date, end_date]. Zero dates are
// treated as open-ended.
func (f Framework) IsLive(now time.Time) bool {
	if f.attrs.Status != StatusLive {
		return false
	}
	if !f.attrs.StartDate.IsZero() && now.Before(f.attrs.StartDate) {
		return false
	}
	if !f.attrs.EndDate.IsZero() && now.After(f.attrs.EndDate) {
		return false
	}
	return true
}

// ApplyPatch returns a copy with the editorial fields present in the patch
// applied. Fields absent from the patch are left untouched.
func (f Framework) ApplyPatch(p FrameworkPatch) Framework {
	if p.Summary != nil {
		f.attrs.Summary = *p.Summary
	}
	if p.Description != nil {
		f.attrs.Description = *p.Description
	}
	if p.Benefits != nil {
		f.attrs.Benefits = *p.Benefits
	}
	if p.HowToBuy != nil {
		f.attrs.HowToBuy = *p.HowToBuy
	}
	return f
}
