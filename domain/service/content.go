package service

import "context"

// ContentType identifies the kind of CMS content entry to provision.
type ContentType string

// Content entry types provisioned during import.
const (
	ContentFramework ContentType = "framework"
	ContentLot       ContentType = "lot"
)

// ContentPublisher provisions CMS content entries for imported records.
// An entry is created once; afterwards only its title is kept in step with
// the CRM, since the body fields become editorially owned.
type ContentPublisher interface {
	// CreateEntry creates a content entry of the given type and returns the
	// id the CMS assigned to it.
	CreateEntry(ctx context.Context, entryType ContentType, title string) (int64, error)
	// UpdateTitle updates the title of an existing content entry.
	UpdateTitle(ctx context.Context, entryType ContentType, id int64, title string) error
}
