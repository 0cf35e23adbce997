package printing

import "strings"

// EntityType represents the kind of document being rendered
type EntityType string

const (
	EntityTypeInvoice      EntityType = "invoice"
	EntityTypeQuote        EntityType = "quote"
	EntityTypeCredit       EntityType = "credit"
	EntityTypeStatement    EntityType = "statement"
	EntityTypeDeliveryNote EntityType = "delivery_note"
)

// IsValid checks if the EntityType is a valid value
func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeInvoice, EntityTypeQuote, EntityTypeCredit,
		EntityTypeStatement, EntityTypeDeliveryNote:
		return true
	}
	return false
}

// String returns the string representation of EntityType
func (e EntityType) String() string {
	return string(e)
}

// AllEntityTypes returns all valid EntityType values
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityTypeInvoice, EntityTypeQuote, EntityTypeCredit,
		EntityTypeStatement, EntityTypeDeliveryNote,
	}
}

// PageSize represents the page size of the rendered document
type PageSize string

const (
	PageSizeA4     PageSize = "A4"     // 595.28pt x 841.89pt
	PageSizeA5     PageSize = "A5"     // 419.53pt x 595.28pt
	PageSizeLetter PageSize = "LETTER" // 612pt x 792pt
	PageSizeLegal  PageSize = "LEGAL"  // 612pt x 1008pt
)

// IsValid checks if the PageSize is a valid value
func (p PageSize) IsValid() bool {
	switch p {
	case PageSizeA4, PageSizeA5, PageSizeLetter, PageSizeLegal:
		return true
	}
	return false
}

// String returns the string representation of PageSize
func (p PageSize) String() string {
	return string(p)
}

// Dimensions returns the page dimensions in points (width, height)
func (p PageSize) Dimensions() (width, height float64) {
	switch p {
	case PageSizeA4:
		return 595.28, 841.89
	case PageSizeA5:
		return 419.53, 595.28
	case PageSizeLetter:
		return 612, 792
	case PageSizeLegal:
		return 612, 1008
	default:
		return 595.28, 841.89
	}
}

// ParsePageSize normalizes an account-supplied page size string.
// Unknown or empty values fall back to A4.
func ParsePageSize(s string) PageSize {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A5":
		return PageSizeA5
	case "LETTER":
		return PageSizeLetter
	case "LEGAL":
		return PageSizeLegal
	default:
		return PageSizeA4
	}
}

// AllPageSizes returns all valid PageSize values
func AllPageSizes() []PageSize {
	return []PageSize{PageSizeA4, PageSizeA5, PageSizeLetter, PageSizeLegal}
}

// DesignStatus represents the status of an invoice design
type DesignStatus string

const (
	DesignStatusActive   DesignStatus = "ACTIVE"
	DesignStatusInactive DesignStatus = "INACTIVE"
)

// IsValid checks if the DesignStatus is a valid value
func (s DesignStatus) IsValid() bool {
	switch s {
	case DesignStatusActive, DesignStatusInactive:
		return true
	}
	return false
}

// String returns the string representation of DesignStatus
func (s DesignStatus) String() string {
	return string(s)
}

// JobStatus represents the status of a render job
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRendering JobStatus = "RENDERING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
)

// IsValid checks if the JobStatus is a valid value
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusRendering, JobStatusCompleted, JobStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of JobStatus
func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal returns true if this is a terminal status (no further transitions)
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransitionTo checks if the status can transition to the target status
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	switch s {
	case JobStatusPending:
		return target == JobStatusRendering || target == JobStatusFailed
	case JobStatusRendering:
		return target == JobStatusCompleted || target == JobStatusFailed
	case JobStatusCompleted, JobStatusFailed:
		return false
	}
	return false
}
