package model

// Pagination represents common pagination parameters.
// Page is 1-based; PerPage is clamped to [1, MaxPerPage].
type Pagination struct {
	Page    int `json:"page" form:"page"`
	PerPage int `json:"per_page" form:"per_page"`
}

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Normalize clamps pagination parameters into their valid range.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

// Offset returns the row offset for the current page.
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}
