package printing

import "github.com/GBR-422777/invoiceninja/internal/domain/shared"

// Margins represents the page margins in points, in document order
// (left, top, right, bottom).
type Margins struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// NewMargins creates a new Margins value object
func NewMargins(left, top, right, bottom float64) (Margins, error) {
	if left < 0 || top < 0 || right < 0 || bottom < 0 {
		return Margins{}, shared.NewDomainError("INVALID_MARGINS", "Margins cannot be negative")
	}
	if left > 200 || top > 200 || right > 200 || bottom > 200 {
		return Margins{}, shared.NewDomainError("INVALID_MARGINS", "Margins cannot exceed 200pt")
	}
	return Margins{Left: left, Top: top, Right: right, Bottom: bottom}, nil
}

// DefaultMargins returns the default page margins
func DefaultMargins() Margins {
	return Margins{Left: 40, Top: 40, Right: 40, Bottom: 60}
}

// Array returns the margins as a 4-element slice in document order
func (m Margins) Array() []float64 {
	return []float64{m.Left, m.Top, m.Right, m.Bottom}
}

// IsZero returns true if all margins are zero
func (m Margins) IsZero() bool {
	return m.Left == 0 && m.Top == 0 && m.Right == 0 && m.Bottom == 0
}

// Equals checks if two Margins are equal
func (m Margins) Equals(other Margins) bool {
	return m.Left == other.Left &&
		m.Top == other.Top &&
		m.Right == other.Right &&
		m.Bottom == other.Bottom
}
