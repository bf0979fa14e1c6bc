package store

// Pagination defaults matching the public API contract.
const (
	DefaultPageLimit = 6
	MaxPageLimit     = 100
)

// Page selects a slice of a listing.
type Page struct {
	// Number is 1-based.
	Number int
	Limit  int
}

// Normalize clamps the page to valid bounds.
func (p *Page) Normalize() {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
}

// Offset returns the SQL offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}
