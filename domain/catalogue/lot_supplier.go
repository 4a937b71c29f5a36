package catalogue

// LotSupplier links a supplier to a lot, both referenced by CRM id. The set
// of links for a lot is deleted and recreated in full on every sync pass, so
// the rows carry no identity beyond the (lot, supplier) pair.
type LotSupplier struct {
	lotSalesforceID      string
	supplierSalesforceID string
	contactName          string
	contactEmail         string
	websiteContact       string
}

// NewLotSupplier creates a link between a lot and a supplier.
func NewLotSupplier(lotSalesforceID, supplierSalesforceID string) LotSupplier {
	return LotSupplier{
		lotSalesforceID:      lotSalesforceID,
		supplierSalesforceID: supplierSalesforceID,
	}
}

// LotSalesforceID returns the CRM id of the lot.
func (ls LotSupplier) LotSalesforceID() string { return ls.lotSalesforceID }

// SupplierSalesforceID returns the CRM id of the supplier.
func (ls LotSupplier) SupplierSalesforceID() string { return ls.supplierSalesforceID }

// ContactName returns the lot-specific contact name, if any.
func (ls LotSupplier) ContactName() string { return ls.contactName }

// ContactEmail returns the lot-specific contact email, if any.
func (ls LotSupplier) ContactEmail() string { return ls.contactEmail }

// WebsiteContact returns the lot-specific website contact, if any.
func (ls LotSupplier) WebsiteContact() string { return ls.websiteContact }

// WithContact returns a copy carrying the given contact details.
func (ls LotSupplier) WithContact(name, email, website string) LotSupplier {
	ls.contactName = name
	ls.contactEmail = email
	ls.websiteContact = website
	return ls
}
