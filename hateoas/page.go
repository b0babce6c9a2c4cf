package hateoas

import (
	"fmt"
	"net/http"
	"strings"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 1000

	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

type PageRequest struct {
	Page      int    `form:"page" binding:"min=0"`
	Size      int    `form:"size" binding:"omitempty,min=1,max=1000"`
	Direction string `form:"direction"`
}

type PageMetadata struct {
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
}

// Normalize fills in defaults, any direction other than "asc" (case-insensitive) sorts descending.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = DefaultPageSize
	}
	if r.Size > MaxPageSize {
		r.Size = MaxPageSize
	}
	if r.Direction == "" || strings.EqualFold(r.Direction, DirectionAsc) {
		r.Direction = DirectionAsc
	} else {
		r.Direction = DirectionDesc
	}
	return r
}

func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

// OrderBy renders an ORDER BY clause sorting every column in the requested direction.
func (r PageRequest) OrderBy(columns ...string) string {
	direction := "ASC"
	if r.Normalize().Direction == DirectionDesc {
		direction = "DESC"
	}
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		parts = append(parts, column+" "+direction)
	}
	return strings.Join(parts, ", ")
}

func NewPageMetadata(r PageRequest, totalElements int64) PageMetadata {
	r = r.Normalize()
	totalPages := int((totalElements + int64(r.Size) - 1) / int64(r.Size))
	return PageMetadata{Size: r.Size, TotalElements: totalElements, TotalPages: totalPages, Number: r.Page}
}

// PageLinks builds the navigation links of a page: prev is omitted on the first page, next on the last one.
func PageLinks(collectionPath string, r PageRequest, meta PageMetadata) []Link {
	r = r.Normalize()
	href := func(page int) string {
		return fmt.Sprintf("%s?page=%d&size=%d&direction=%s", collectionPath, page, r.Size, r.Direction)
	}
	lastPage := meta.TotalPages - 1
	if lastPage < 0 {
		lastPage = 0
	}

	links := []Link{
		{Rel: RelSelf, Href: href(r.Page), Type: http.MethodGet},
		{Rel: RelFirst, Href: href(0), Type: http.MethodGet},
	}
	if r.Page > 0 {
		links = append(links, Link{Rel: RelPrev, Href: href(r.Page - 1), Type: http.MethodGet})
	}
	if r.Page < lastPage {
		links = append(links, Link{Rel: RelNext, Href: href(r.Page + 1), Type: http.MethodGet})
	}
	links = append(links, Link{Rel: RelLast, Href: href(lastPage), Type: http.MethodGet})
	return links
}
