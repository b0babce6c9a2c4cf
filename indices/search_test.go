package indices

import (
	"context"
	"errors"
	"taskhub/bizerror"
	"taskhub/client/es"
	"testing"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func TestSearchDocuments(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should reject unknown index", func(t *testing.T) {
		_, err := SearchDocuments(context.Background(), SearchQuery{Index: "works", Q: "x"})
		var badParam *bizerror.ErrBadParam
		Expect(errors.As(err, &badParam)).To(BeTrue())
		Expect(err.Error()).To(Equal("unknown index 'works'"))
	})

	t.Run("should match on name and map hits", func(t *testing.T) {
		var index1 string
		var query1 interface{}
		es.SearchFunc = func(ctx context.Context, index string, query interface{}) (*es.ESSearchResult, error) {
			index1, query1 = index, query
			return &es.ESSearchResult{Hits: es.ESSearchHits{Hits: []es.ESSearchHit{
				{Index: "projects", Id: "1", Score: 2, Source: `{"name":"Website Revamp"}`},
			}}}, nil
		}
		defer func() { es.SearchFunc = es.Search }()

		hits, err := SearchDocuments(context.Background(), SearchQuery{Index: "projects", Q: "website"})
		Expect(err).To(BeNil())
		Expect(index1).To(Equal("projects"))
		Expect(query1).To(Equal(es.H{"size": 10, "query": es.H{"match": es.H{"name": es.H{"query": "website"}}}}))
		Expect(len(hits)).To(Equal(1))
		Expect(hits[0].ID).To(Equal("1"))
		Expect(hits[0].Index).To(Equal("projects"))
		Expect(string(hits[0].Source)).To(Equal(`{"name":"Website Revamp"}`))
	})

	t.Run("should return search error", func(t *testing.T) {
		es.SearchFunc = func(ctx context.Context, index string, query interface{}) (*es.ESSearchResult, error) {
			return nil, errors.New("some error")
		}
		defer func() { es.SearchFunc = es.Search }()

		_, err := SearchDocuments(context.Background(), SearchQuery{Index: "tasks", Q: "x", Size: 5})
		Expect(err).To(MatchError("some error"))
	})
}

func TestDetailDocument(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should reject unknown index", func(t *testing.T) {
		_, err := DetailDocument(context.Background(), "works", 100)
		var badParam *bizerror.ErrBadParam
		Expect(errors.As(err, &badParam)).To(BeTrue())
		Expect(err.Error()).To(Equal("unknown index 'works'"))
	})

	t.Run("should read document source", func(t *testing.T) {
		var index1 string
		var id1 types.ID
		es.GetDocumentFunc = func(ctx context.Context, index string, id types.ID) (es.Source, error) {
			index1, id1 = index, id
			return `{"name":"Jane Doe"}`, nil
		}
		defer func() { es.GetDocumentFunc = es.GetDocument }()

		doc, err := DetailDocument(context.Background(), "collaborators", 100)
		Expect(err).To(BeNil())
		Expect(index1).To(Equal("collaborators"))
		Expect(id1).To(Equal(types.ID(100)))
		Expect(doc.ID).To(Equal(types.ID(100)))
		Expect(doc.Index).To(Equal("collaborators"))
		Expect(string(doc.Source)).To(Equal(`{"name":"Jane Doe"}`))
	})

	t.Run("should name missing document", func(t *testing.T) {
		es.GetDocumentFunc = func(ctx context.Context, index string, id types.ID) (es.Source, error) {
			return "", bizerror.ErrNotFound
		}
		defer func() { es.GetDocumentFunc = es.GetDocument }()

		_, err := DetailDocument(context.Background(), "tasks", 100)
		Expect(errors.Is(err, bizerror.ErrNotFound)).To(BeTrue())
		Expect(err.Error()).To(Equal("Document not found"))
	})

	t.Run("should return store error", func(t *testing.T) {
		es.GetDocumentFunc = func(ctx context.Context, index string, id types.ID) (es.Source, error) {
			return "", errors.New("some error")
		}
		defer func() { es.GetDocumentFunc = es.GetDocument }()

		_, err := DetailDocument(context.Background(), "projects", 100)
		Expect(err).To(MatchError("some error"))
	})
}
