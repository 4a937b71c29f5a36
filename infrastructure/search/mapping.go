package search

// supplierMapping is the index mapping for supplier documents. The name
// field carries a raw keyword sub-field for exact sorting; live_frameworks
// is nested so a keyword has to match within a single framework entry.
const supplierMapping = `{
  "mappings": {
    "properties": {
      "id":            {"type": "integer"},
      "salesforce_id": {"type": "keyword"},
      "name": {
        "type": "text",
        "fields": {
          "raw": {"type": "keyword"}
        }
      },
      "trading_name": {"type": "text"},
      "duns_number":  {"type": "keyword"},
      "city":         {"type": "text"},
      "postcode":     {"type": "keyword"},
      "live_frameworks": {
        "type": "nested",
        "properties": {
          "title":     {"type": "text"},
          "rm_number": {"type": "keyword"},
          "end_date":  {"type": "date"}
        }
      }
    }
  }
}`
