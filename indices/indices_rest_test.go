package indices

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"taskhub/bizerror"
	"taskhub/testinfra"
	"testing"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func newRouter() *gin.Engine {
	router := gin.New()
	router.Use(bizerror.ErrorHandling())
	RegisterIndicesRestAPI(router)
	return router
}

func TestHandleIndexRequest(t *testing.T) {
	RegisterTestingT(t)
	router := newRouter()

	t.Run("handle error", func(t *testing.T) {
		ScheduleNewSyncRunFunc = func() (bool, error) {
			return false, errors.New("error on schedule new sync run")
		}
		req := httptest.NewRequest(http.MethodPost, PathIndexRequests, nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusInternalServerError))
		Expect(body).To(MatchJSON(`{"code":"common.internal_server_error", "message":"error on schedule new sync run", "data":null}`))
	})

	t.Run("submit index request successfully", func(t *testing.T) {
		ScheduleNewSyncRunFunc = func() (bool, error) {
			return true, nil
		}
		req := httptest.NewRequest(http.MethodPost, PathIndexRequests, nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"result": true}`))
	})

	t.Run("submit index request while running", func(t *testing.T) {
		ScheduleNewSyncRunFunc = func() (bool, error) {
			return false, nil
		}
		req := httptest.NewRequest(http.MethodPost, PathIndexRequests, nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"result": false}`))
	})
}

func TestHandleSearch(t *testing.T) {
	RegisterTestingT(t)
	router := newRouter()

	t.Run("should require index and query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, PathSearch+"?index=tasks", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(ContainSubstring(`"code":"common.bad_param"`))
	})

	t.Run("should respond hits", func(t *testing.T) {
		var q1 SearchQuery
		SearchDocumentsFunc = func(ctx context.Context, q SearchQuery) ([]SearchHit, error) {
			q1 = q
			return []SearchHit{{ID: "100", Index: "tasks", Score: 1.5, Source: json.RawMessage(`{"name":"Design mockups"}`)}}, nil
		}
		req := httptest.NewRequest(http.MethodGet, PathSearch+"?index=tasks&q=design", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(q1).To(Equal(SearchQuery{Index: "tasks", Q: "design"}))
		Expect(body).To(MatchJSON(`[{"id": "100", "index": "tasks", "score": 1.5, "source": {"name": "Design mockups"}}]`))
	})
}

func TestHandleDetailDocument(t *testing.T) {
	RegisterTestingT(t)
	router := newRouter()

	t.Run("should validate id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, PathSearch+"/tasks/abc", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(MatchJSON(`{"code": "common.bad_param", "message": "invalid id 'abc'", "data": null}`))
	})

	t.Run("should respond document", func(t *testing.T) {
		var index1 string
		var id1 types.ID
		DetailDocumentFunc = func(ctx context.Context, index string, id types.ID) (*IndexedDocument, error) {
			index1, id1 = index, id
			return &IndexedDocument{ID: id, Index: index, Source: json.RawMessage(`{"name":"Design mockups"}`)}, nil
		}
		req := httptest.NewRequest(http.MethodGet, PathSearch+"/tasks/100", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(index1).To(Equal("tasks"))
		Expect(id1).To(Equal(types.ID(100)))
		Expect(body).To(MatchJSON(`{"id": "100", "index": "tasks", "source": {"name": "Design mockups"}}`))
	})

	t.Run("should respond not found", func(t *testing.T) {
		DetailDocumentFunc = func(ctx context.Context, index string, id types.ID) (*IndexedDocument, error) {
			return nil, bizerror.ErrNotFound.WithMessage("Document not found")
		}
		req := httptest.NewRequest(http.MethodGet, PathSearch+"/tasks/100", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusNotFound))
		Expect(body).To(MatchJSON(`{"code": "common.record_not_found", "message": "Document not found", "data": null}`))
	})
}
