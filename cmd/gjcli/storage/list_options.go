package storage

import (
	"strings"

	"gorm.io/gorm"
)

type SortType string

const (
	SortTypeAscending  SortType = "asc"
	SortTypeDescending SortType = "desc"
)

func (s SortType) ToString() string {
	return strings.ToUpper(string(s))
}

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListOptions pages and orders a listing. A zero Limit means DefaultLimit;
// anything above MaxLimit is clamped.
type ListOptions struct {
	Offset uint32
	Limit  uint32
	Sort   *SortType
}

func applyListOptions(db *gorm.DB, sortBy string, defaultSort SortType, options *ListOptions) *gorm.DB {
	sort := defaultSort
	if options != nil && options.Sort != nil {
		sort = *options.Sort
	}
	db = db.Order(sortBy + " " + sort.ToString()).Order("id " + sort.ToString())

	var offset, limit uint32
	if options != nil {
		offset, limit = options.Offset, options.Limit
	}
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return db.Offset(int(offset)).Limit(int(limit))
}
