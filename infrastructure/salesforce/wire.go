package salesforce

import (
	"time"

	"github.com/ccsdigital/frameworkhub/domain/catalogue"
)

// frameworkRecord is the wire shape of a Master_Framework__c row.
type frameworkRecord struct {
	ID              string `json:"Id"`
	RMNumber        string `json:"Framework_Number__c"`
	Name            string `json:"Name"`
	Summary         string `json:"Summary__c"`
	Description     string `json:"Description__c"`
	Benefits        string `json:"Benefits__c"`
	HowToBuy        string `json:"How_To_Buy__c"`
	Type            string `json:"Framework_Type__c"`
	StartDate       string `json:"Start_Date__c"`
	EndDate         string `json:"End_Date__c"`
	Status          string `json:"Status__c"`
	PublishedStatus string `json:"Published_Status__c"`
	Pillar          string `json:"Pillar__c"`
	Category        string `json:"Category__c"`
	Terms           string `json:"Terms__c"`
}

func (r frameworkRecord) toDomain() catalogue.Framework {
	return catalogue.NewFramework(r.ID, catalogue.FrameworkAttrs{
		RMNumber:        r.RMNumber,
		Title:           r.Name,
		Summary:         r.Summary,
		Description:     r.Description,
		Benefits:        r.Benefits,
		HowToBuy:        r.HowToBuy,
		Type:            r.Type,
		StartDate:       parseDate(r.StartDate),
		EndDate:         parseDate(r.EndDate),
		Status:          r.Status,
		PublishedStatus: r.PublishedStatus,
		Pillar:          r.Pillar,
		Category:        r.Category,
		Terms:           r.Terms,
	})
}

// lotRecord is the wire shape of a Master_Framework_Lot__c row.
type lotRecord struct {
	ID          string `json:"Id"`
	FrameworkID string `json:"Master_Framework__c"`
	Name        string `json:"Name"`
	Description string `json:"Description__c"`
}

func (r lotRecord) toDomain() catalogue.Lot {
	return catalogue.NewLot(r.ID, r.FrameworkID, r.Name, r.Description)
}

// lotSupplierRecord is the wire shape of a Master_Framework_Lot_Supplier__c
// row with the awarded supplier's account fields pulled through the
// relationship.
type lotSupplierRecord struct {
	SupplierID string           `json:"Supplier__c"`
	Supplier   *supplierAccount `json:"Supplier__r"`
}

type supplierAccount struct {
	Name        string `json:"Name"`
	TradingName string `json:"Trading_Name__c"`
	DUNSNumber  string `json:"DUNS_Number__c"`
	City        string `json:"BillingCity"`
	Postcode    string `json:"BillingPostalCode"`
}

func (r lotSupplierRecord) toDomain() catalogue.Supplier {
	account := supplierAccount{}
	if r.Supplier != nil {
		account = *r.Supplier
	}
	return catalogue.NewSupplier(r.SupplierID, account.Name, account.TradingName, account.DUNSNumber, account.City, account.Postcode)
}

// parseDate parses a Salesforce date field. Missing or malformed values
// come back as the zero time, which the domain treats as open-ended.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
