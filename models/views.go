package models

import "time"

// HoldSummary is what the renter sees while paying for a hold.
type HoldSummary struct {
	MateName    string    `json:"mateName"`
	MateSurName string    `json:"mateSurName"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Place       string    `json:"place"`
	Purpose     string    `json:"purpose"`
	Others      string    `json:"others,omitempty"`
	Amount      float64   `json:"amount"`
}

// PartySummary names the other side of a transaction.
type PartySummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SurName  string `json:"surName,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	City     string `json:"city,omitempty"`
}

// TransactionView is a transaction as listed to one of its parties.
type TransactionView struct {
	ID         string            `json:"id"`
	Mate       *PartySummary     `json:"mate,omitempty"`
	Renter     *PartySummary     `json:"renter,omitempty"`
	Amount     float64           `json:"amount"`
	StartTime  time.Time         `json:"startTime"`
	EndTime    time.Time         `json:"endTime"`
	Place      string            `json:"place"`
	Purpose    string            `json:"purpose"`
	Others     string            `json:"others,omitempty"`
	Status     TransactionStatus `json:"status"`
	CanceledBy CanceledBy        `json:"canceledBy,omitempty"`
	CanCancel  *bool             `json:"canCancel,omitempty"`
	CanReview  *bool             `json:"canReview,omitempty"`
	CanEnd     *bool             `json:"canEnd,omitempty"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
	Page       int64 `json:"page"`
	PageSize   int64 `json:"pageSize"`
}

// NewPagination computes the page count for total items.
func NewPagination(total, page, pageSize int64) Pagination {
	pages := int64(0)
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}
	return Pagination{Total: total, TotalPages: pages, Page: page, PageSize: pageSize}
}

// TransactionPage is a paginated transaction listing.
type TransactionPage struct {
	Data       []TransactionView `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// PageRequest is a 1-based page selection.
type PageRequest struct {
	Page     int64
	PageSize int64
}

// MaxPage bounds Page so Skip cannot overflow.
const MaxPage = 1_000_000

// Normalize applies the default page (1) and page size (5) and clamps both.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PageSize < 1 {
		p.PageSize = 5
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p
}

// Skip is the number of documents before this page.
func (p PageRequest) Skip() int64 {
	return (p.Page - 1) * p.PageSize
}
