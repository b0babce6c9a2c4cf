package indices

import (
	"net/http"
	"taskhub/bizerror"
	"taskhub/misc"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathSearch        = "/v1/search"
	PathIndexRequests = "/v1/index-requests"
)

func RegisterIndicesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathSearch, middleWares...)
	g.GET("", handleSearch)
	g.GET("/:index/:id", handleDetailDocument)
	r.Group(PathIndexRequests, middleWares...).POST("", handleIndexRequest)
}

func handleSearch(c *gin.Context) {
	q := SearchQuery{}
	if err := c.ShouldBindWith(&q, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	hits, err := SearchDocumentsFunc(c.Request.Context(), q)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, hits)
}

func handleDetailDocument(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	doc, err := DetailDocumentFunc(c.Request.Context(), c.Param("index"), id)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, doc)
}

func handleIndexRequest(c *gin.Context) {
	success, err := ScheduleNewSyncRunFunc()
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, gin.H{"result": success})
}
