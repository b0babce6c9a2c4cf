package es

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/mocktracer"
)

type alwaysFailedTransport struct {
}

func (t *alwaysFailedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return nil, errors.New("mock error")
}

func TestTracingTransport(t *testing.T) {
	RegisterTestingT(t)

	tracer := mocktracer.New()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tasks/_doc/1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	t.Run("should not trace request without span", func(t *testing.T) {
		tracer.Reset()

		client := &http.Client{Transport: &TracingTransport{Transport: http.DefaultTransport}}
		req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
		Expect(err).To(BeNil())
		res, err := client.Do(req)
		Expect(err).To(BeNil())
		Expect(res.StatusCode).To(Equal(http.StatusOK))

		Expect(len(tracer.FinishedSpans())).To(BeZero())
	})

	t.Run("should trace request as child span", func(t *testing.T) {
		tracer.Reset()

		client := &http.Client{Transport: &TracingTransport{Transport: http.DefaultTransport}}
		clientSpan := tracer.StartSpan("client")
		req, err := http.NewRequestWithContext(opentracing.ContextWithSpan(context.Background(), clientSpan),
			http.MethodGet, ts.URL+"/tasks/_search", nil)
		Expect(err).To(BeNil())

		res, err := client.Do(req)
		Expect(err).To(BeNil())
		Expect(res.StatusCode).To(Equal(http.StatusOK))
		clientSpan.Finish()

		spans := tracer.FinishedSpans()
		Expect(len(spans)).To(Equal(2))
		Expect(spans[1].OperationName).To(Equal("client"))

		s := spans[0]
		Expect(s.OperationName).To(Equal("GET /tasks/_search"))
		Expect(s.ParentID).To(Equal(spans[1].SpanContext.SpanID))
		Expect(s.SpanContext.TraceID).To(Equal(spans[1].SpanContext.TraceID))
		Expect(s.Tags()).To(Equal(map[string]interface{}{
			"span.kind":        ext.SpanKindEnum("client"),
			"http.url":         ts.URL + "/tasks/_search",
			"http.method":      "GET",
			"http.status_code": uint16(200),
			"error":            false,
		}))
	})

	t.Run("should mark error status", func(t *testing.T) {
		tracer.Reset()

		client := &http.Client{Transport: &TracingTransport{Transport: http.DefaultTransport}}
		clientSpan := tracer.StartSpan("client")
		req, err := http.NewRequestWithContext(opentracing.ContextWithSpan(context.Background(), clientSpan),
			http.MethodPut, ts.URL+"/tasks/_doc/1", nil)
		Expect(err).To(BeNil())

		res, err := client.Do(req)
		Expect(err).To(BeNil())
		Expect(res.StatusCode).To(Equal(http.StatusBadRequest))
		clientSpan.Finish()

		spans := tracer.FinishedSpans()
		Expect(len(spans)).To(Equal(2))
		Expect(spans[0].OperationName).To(Equal("PUT /tasks/_doc/1"))
		Expect(spans[0].Tag("http.status_code")).To(Equal(uint16(400)))
		Expect(spans[0].Tag("error")).To(Equal(true))
	})

	t.Run("should trace transport failure", func(t *testing.T) {
		tracer.Reset()

		client := &http.Client{Transport: &TracingTransport{Transport: &alwaysFailedTransport{}}}
		clientSpan := tracer.StartSpan("client")
		req, err := http.NewRequestWithContext(opentracing.ContextWithSpan(context.Background(), clientSpan),
			http.MethodGet, "http://127.0.0.1:12345", nil)
		Expect(err).To(BeNil())

		res, err := client.Do(req)
		Expect(res).To(BeNil())
		var urlErr *url.Error
		Expect(errors.As(err, &urlErr)).To(BeTrue())
		Expect(urlErr.Err.Error()).To(Equal("mock error"))
		clientSpan.Finish()

		spans := tracer.FinishedSpans()
		Expect(len(spans)).To(Equal(2))
		Expect(spans[0].Tags()).To(Equal(map[string]interface{}{
			"span.kind":    ext.SpanKindEnum("client"),
			"http.url":     "http://127.0.0.1:12345",
			"http.method":  "GET",
			"error":        true,
			"error.detail": "mock error",
		}))
	})
}
