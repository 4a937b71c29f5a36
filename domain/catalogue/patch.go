package catalogue

// FrameworkPatch is a sparse update to the CMS-editable framework fields.
// A nil field means "leave unchanged"; only present fields are written by
// FrameworkStore.UpdateEditorial. CRM syncs never touch these columns, so
// the exclusion contract is carried by the type rather than a convention.
type FrameworkPatch struct {
	Summary     *string
	Description *string
	Benefits    *string
	HowToBuy    *string
}

// IsEmpty reports whether the patch carries no fields.
func (p FrameworkPatch) IsEmpty() bool {
	return p.Summary == nil && p.Description == nil && p.Benefits == nil && p.HowToBuy == nil
}

// Columns returns the column/value pairs present in the patch.
func (p FrameworkPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Summary != nil {
		cols["summary"] = *p.Summary
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Benefits != nil {
		cols["benefits"] = *p.Benefits
	}
	if p.HowToBuy != nil {
		cols["how_to_buy"] = *p.HowToBuy
	}
	return cols
}
