package dto

import (
	appservice "github.com/ccsdigital/frameworkhub/application/service"
)

// ImportResponse is the POST /import response. Reindex is present only
// when a search index is configured.
type ImportResponse struct {
	Imported appservice.Counts         `json:"imported"`
	Failed   appservice.Counts         `json:"failed"`
	Reindex  *appservice.ReindexResult `json:"reindex,omitempty"`
}

// ReindexResponse is the POST /import/reindex response.
type ReindexResponse struct {
	Indexed int `json:"indexed"`
	Removed int `json:"removed"`
}
