package queryparams

// ListParams listeleme endpoint'leri için sayfalama/sıralama parametreleri.
type ListParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	SortBy  string `query:"sort_by"`
	OrderBy string `query:"order_by"` // asc | desc
}

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// DefaultListParams verilen sıralama kolonu ile varsayılan parametreleri döndürür.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{Page: 1, PerPage: DefaultPerPage, SortBy: sortBy, OrderBy: "desc"}
}

// Validate sayfa ve limit değerlerini geçerli aralığa çeker.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.OrderBy != "asc" && p.OrderBy != "desc" {
		p.OrderBy = "desc"
	}
}

// Offset SQL offset değerini hesaplar.
func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PaginationMeta sayfalama üst bilgisi.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// PaginatedResult sayfalanmış liste cevabı.
type PaginatedResult struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewMeta toplam kayıt sayısından meta üretir.
func NewMeta(params ListParams, total int64) PaginationMeta {
	totalPages := int(total) / params.PerPage
	if int(total)%params.PerPage > 0 {
		totalPages++
	}
	return PaginationMeta{
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
