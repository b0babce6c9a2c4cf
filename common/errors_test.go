package common_test

import (
	"encoding/json"
	"taskhub/common"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ErrorBody", func() {
	It("should serialize data as null when absent", func() {
		b, err := json.Marshal(&common.ErrorBody{Code: "common.bad_param", Message: "bad"})
		Expect(err).To(BeNil())
		Expect(string(b)).To(MatchJSON(`{"code": "common.bad_param", "message": "bad", "data": null}`))
	})
})
