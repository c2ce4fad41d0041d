// Package dataview models the tabular input boundary: a columnar table with
// semantic role annotations and a row-indexed selection-identity factory.
// The hosting application supplies an equivalent structure; for the CLI the
// table is loaded from CSV.
package dataview

import (
	"strings"

	"github.com/google/uuid"
)

// Role names for column annotations. A column may carry at most one role;
// roles that appear on no column leave the corresponding record field empty
// for every row.
const (
	RoleTitle       = "Title"
	RoleDescription = "Description"
	RoleStartDate   = "EventStartDate"
	RoleEndDate     = "EventEndDate"
	RoleCompanyLink = "CompanyLink"
	RoleHeaderImage = "HeaderImage"
	RoleFooterImage = "FooterImage"
)

// Column is one table column: its source name and the semantic role it was
// tagged with (empty when untagged).
type Column struct {
	Name string
	Role string
}

// SelectionID is the opaque identity a row resolves to in the host's
// selection service.
type SelectionID string

// DataView is an immutable snapshot of the bound table for one update
// cycle.
type DataView struct {
	Columns []Column
	Rows    [][]string

	ids []SelectionID
}

// New builds a DataView and mints one SelectionID per row. Identities are
// stable for the lifetime of the view and re-mint on the next snapshot; the
// host is expected to re-resolve them by row.
func New(columns []Column, rows [][]string) *DataView {
	ids := make([]SelectionID, len(rows))
	for i := range rows {
		ids[i] = SelectionID(uuid.NewString())
	}
	return &DataView{Columns: columns, Rows: rows, ids: ids}
}

// Identity returns the selection identity for row index i.
func (v *DataView) Identity(i int) SelectionID {
	if i < 0 || i >= len(v.ids) {
		return ""
	}
	return v.ids[i]
}

// RoleIndex resolves a role name to a column index, or -1 when no column
// carries the role.
func (v *DataView) RoleIndex(role string) int {
	for i, col := range v.Columns {
		if col.Role == role {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed cell value at (row, col), or the empty string
// when col is -1 or out of range for the row.
func (v *DataView) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(v.Rows) {
		return ""
	}
	cells := v.Rows[row]
	if col >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col])
}
