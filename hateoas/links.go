package hateoas

import (
	"net/http"

	"github.com/fundwit/go-commons/types"
)

const (
	RelSelf    = "self"
	RelFindAll = "findAll"
	RelCreate  = "create"
	RelUpdate  = "update"
	RelDelete  = "delete"

	RelFirst = "first"
	RelPrev  = "prev"
	RelNext  = "next"
	RelLast  = "last"
)

// Link points to an operation related to the resource it is attached to, Type is the HTTP verb.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
	Type string `json:"type"`
}

func ItemPath(collectionPath string, id types.ID) string {
	return collectionPath + "/" + id.String()
}

func SelfLink(collectionPath string, id types.ID) Link {
	return Link{Rel: RelSelf, Href: ItemPath(collectionPath, id), Type: http.MethodGet}
}

// ResourceLinks derives the fixed set of links of a single resource from its id.
func ResourceLinks(collectionPath string, id types.ID) []Link {
	itemPath := ItemPath(collectionPath, id)
	return []Link{
		SelfLink(collectionPath, id),
		{Rel: RelFindAll, Href: collectionPath + "?page=0&size=10&direction=desc", Type: http.MethodGet},
		{Rel: RelCreate, Href: collectionPath, Type: http.MethodPost},
		{Rel: RelUpdate, Href: itemPath, Type: http.MethodPut},
		{Rel: RelDelete, Href: itemPath, Type: http.MethodDelete},
	}
}
