package model

import (
	"strconv"
	"strings"
)

// Category enumerates the hardship types the record service accepts.
type Category int

const (
	CategoryUnset     Category = 0
	CategoryFinancial Category = 1
	CategoryMedical   Category = 2
	CategoryEconomic  Category = 3
)

// Categories lists the selectable hardship types in display order.
func Categories() []Category {
	return []Category{CategoryFinancial, CategoryMedical, CategoryEconomic}
}

// Label returns the human readable name of the category.
func (c Category) Label() string {
	switch c {
	case CategoryFinancial:
		return "Financial"
	case CategoryMedical:
		return "Medical"
	case CategoryEconomic:
		return "Economic"
	default:
		return ""
	}
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	return c.Label() != ""
}

// String renders the category identifier as used by form inputs.
func (c Category) String() string {
	if c == CategoryUnset {
		return ""
	}
	return strconv.Itoa(int(c))
}

// ParseCategory resolves either a numeric identifier ("1") or a label
// ("Medical", case-insensitive). Unknown input yields CategoryUnset and false.
func ParseCategory(raw string) (Category, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return CategoryUnset, false
	}
	if id, err := strconv.Atoi(trimmed); err == nil {
		c := Category(id)
		return c, c.Valid()
	}
	for _, c := range Categories() {
		if strings.EqualFold(c.Label(), trimmed) {
			return c, true
		}
	}
	return CategoryUnset, false
}

// Record mirrors the hardship shape returned by the record service.
type Record struct {
	DebtID           int64   `json:"debtID"`
	HardshipTypeID   int     `json:"hardshipTypeID,omitempty"`
	HardshipTypeName string  `json:"hardshipTypeName,omitempty"`
	Name             string  `json:"name"`
	DOB              string  `json:"dob"`
	Income           float64 `json:"income"`
	Expenses         float64 `json:"expenses"`
	Comments         string  `json:"comments,omitempty"`
}

// Category resolves the record's hardship type, preferring the numeric id and
// falling back to the name returned by list/get endpoints.
func (r Record) Category() Category {
	if c := Category(r.HardshipTypeID); c.Valid() {
		return c
	}
	c, _ := ParseCategory(r.HardshipTypeName)
	return c
}

// TypeLabel returns the display name of the record's hardship type.
func (r Record) TypeLabel() string {
	if label := r.Category().Label(); label != "" {
		return label
	}
	return strings.TrimSpace(r.HardshipTypeName)
}

// DateOfBirth returns the date portion of DOB, dropping any time component
// the service attaches ("2000-01-01T00:00:00" becomes "2000-01-01").
func (r Record) DateOfBirth() string {
	dob := strings.TrimSpace(r.DOB)
	if idx := strings.IndexByte(dob, 'T'); idx >= 0 {
		return dob[:idx]
	}
	return dob
}

// CreatePayload is the body sent when inserting a new record.
type CreatePayload struct {
	DebtID         int64   `json:"debtID"`
	HardshipTypeID int     `json:"hardshipTypeID"`
	Name           string  `json:"name"`
	DOB            string  `json:"dob"`
	Income         float64 `json:"income"`
	Expenses       float64 `json:"expenses"`
	Comments       string  `json:"comments"`
}

// UpdatePayload is the body sent when editing a record. The identifier is
// addressed through the resource path and is deliberately absent here.
type UpdatePayload struct {
	HardshipTypeID int     `json:"hardshipTypeID"`
	Name           string  `json:"name"`
	DOB            string  `json:"dob"`
	Income         float64 `json:"income"`
	Expenses       float64 `json:"expenses"`
	Comments       string  `json:"comments"`
}

// Update strips the identifier from a create payload.
func (p CreatePayload) Update() UpdatePayload {
	return UpdatePayload{
		HardshipTypeID: p.HardshipTypeID,
		Name:           p.Name,
		DOB:            p.DOB,
		Income:         p.Income,
		Expenses:       p.Expenses,
		Comments:       p.Comments,
	}
}

// Record converts the payload back into the record shape the service returns.
func (p CreatePayload) Record() Record {
	return Record{
		DebtID:           p.DebtID,
		HardshipTypeID:   p.HardshipTypeID,
		HardshipTypeName: Category(p.HardshipTypeID).Label(),
		Name:             p.Name,
		DOB:              p.DOB,
		Income:           p.Income,
		Expenses:         p.Expenses,
		Comments:         p.Comments,
	}
}
