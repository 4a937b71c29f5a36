package catalogue

// Lot represents a single lot within a framework. A lot belongs to exactly
// one framework, referenced by the framework's CRM id.
type Lot struct {
	id                    int64
	salesforceID          string
	wordpressID           int64
	frameworkSalesforceID string
	title                 string
	description           string
}

// NewLot creates a Lot that has not been persisted yet.
func NewLot(salesforceID, frameworkSalesforceID, title, description string) Lot {
	return Lot{
		salesforceID:          salesforceID,
		frameworkSalesforceID: frameworkSalesforceID,
		title:                 title,
		description:           description,
	}
}

// ReconstructLot rebuilds a Lot from persisted state.
func ReconstructLot(id int64, salesforceID string, wordpressID int64, frameworkSalesforceID, title, description string) Lot {
	return Lot{
		id:                    id,
		salesforceID:          salesforceID,
		wordpressID:           wordpressID,
		frameworkSalesforceID: frameworkSalesforceID,
		title:                 title,
		description:           description,
	}
}

// ID returns the internal database id (0 when not yet persisted).
func (l Lot) ID() int64 { return l.id }

// SalesforceID returns the external CRM identifier.
func (l Lot) SalesforceID() string { return l.salesforceID }

// WordPressID returns the CMS content entry id (0 when none assigned).
func (l Lot) WordPressID() int64 { return l.wordpressID }

// HasWordPressID reports whether a CMS content entry has been provisioned.
func (l Lot) HasWordPressID() bool { return l.wordpressID != 0 }

// FrameworkSalesforceID returns the CRM id of the owning framework.
func (l Lot) FrameworkSalesforceID() string { return l.frameworkSalesforceID }

// Title returns the lot title.
func (l Lot) Title() string { return l.title }

// Description returns the lot description.
func (l Lot) Description() string { return l.description }

// WithWordPressID returns a copy carrying the given CMS entry id.
func (l Lot) WithWordPressID(id int64) Lot {
	l.wordpressID = id
	return l
}
