package indices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"taskhub/bizerror"
	"taskhub/client/es"

	"github.com/fundwit/go-commons/types"
)

var (
	SearchDocumentsFunc = SearchDocuments
	DetailDocumentFunc  = DetailDocument
)

type SearchQuery struct {
	Index string `form:"index" binding:"required"`
	Q     string `form:"q" binding:"required"`
	Size  int    `form:"size" binding:"omitempty,min=1,max=100"`
}

type SearchHit struct {
	ID     string          `json:"id"`
	Index  string          `json:"index"`
	Score  float64         `json:"score"`
	Source json.RawMessage `json:"source"`
}

type IndexedDocument struct {
	ID     types.ID        `json:"id"`
	Index  string          `json:"index"`
	Source json.RawMessage `json:"source"`
}

// SearchDocuments runs a match query on the name field of one index.
func SearchDocuments(ctx context.Context, q SearchQuery) ([]SearchHit, error) {
	if !IsKnownIndex(q.Index) {
		return nil, &bizerror.ErrBadParam{Cause: fmt.Errorf("unknown index '%s'", q.Index)}
	}
	size := q.Size
	if size == 0 {
		size = 10
	}

	r, err := es.SearchFunc(ctx, q.Index, es.H{
		"size":  size,
		"query": es.H{"match": es.H{"name": es.H{"query": q.Q}}},
	})
	if err != nil {
		return nil, err
	}

	hits := make([]SearchHit, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		hits = append(hits, SearchHit{ID: hit.Id, Index: hit.Index, Score: hit.Score, Source: json.RawMessage(hit.Source)})
	}
	return hits, nil
}

func DetailDocument(ctx context.Context, index string, id types.ID) (*IndexedDocument, error) {
	if !IsKnownIndex(index) {
		return nil, &bizerror.ErrBadParam{Cause: fmt.Errorf("unknown index '%s'", index)}
	}
	source, err := es.GetDocumentFunc(ctx, index, id)
	if err != nil {
		if errors.Is(err, bizerror.ErrNotFound) {
			return nil, bizerror.ErrNotFound.WithMessage("Document not found")
		}
		return nil, err
	}
	return &IndexedDocument{ID: id, Index: index, Source: json.RawMessage(source)}, nil
}
