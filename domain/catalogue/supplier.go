package catalogue

// Supplier represents a supplier organisation synchronized from the CRM.
// The onLiveFrameworks flag is derived after each import and gates search
// index eligibility.
type Supplier struct {
	id               int64
	salesforceID     string
	name             string
	tradingName      string
	dunsNumber       string
	city             string
	postcode         string
	onLiveFrameworks bool
}

// NewSupplier creates a Supplier that has not been persisted yet.
func NewSupplier(salesforceID, name, tradingName, dunsNumber, city, postcode string) Supplier {
	return Supplier{
		salesforceID: salesforceID,
		name:         name,
		tradingName:  tradingName,
		dunsNumber:   dunsNumber,
		city:         city,
		postcode:     postcode,
	}
}

// ReconstructSupplier rebuilds a Supplier from persisted state.
func ReconstructSupplier(id int64, salesforceID, name, tradingName, dunsNumber, city, postcode string, onLiveFrameworks bool) Supplier {
	return Supplier{
		id:               id,
		salesforceID:     salesforceID,
		name:             name,
		tradingName:      tradingName,
		dunsNumber:       dunsNumber,
		city:             city,
		postcode:         postcode,
		onLiveFrameworks: onLiveFrameworks,
	}
}

// ID returns the internal database id (0 when not yet persisted).
func (s Supplier) ID() int64 { return s.id }

// SalesforceID returns the external CRM identifier.
func (s Supplier) SalesforceID() string { return s.salesforceID }

// Name returns the registered supplier name.
func (s Supplier) Name() string { return s.name }

// TradingName returns the trading name, if different from the registered name.
func (s Supplier) TradingName() string { return s.tradingName }

// DUNSNumber returns the supplier's DUNS number.
func (s Supplier) DUNSNumber() string { return s.dunsNumber }

// City returns the supplier's registered city.
func (s Supplier) City() string { return s.city }

// Postcode returns the supplier's registered postcode.
func (s Supplier) Postcode() string { return s.postcode }

// OnLiveFrameworks reports whether the supplier is awarded onto at least
// one live framework.
func (s Supplier) OnLiveFrameworks() bool { return s.onLiveFrameworks }

// WithOnLiveFrameworks returns a copy with the derived live flag set.
func (s Supplier) WithOnLiveFrameworks(live bool) Supplier {
	s.onLiveFrameworks = live
	return s
}
