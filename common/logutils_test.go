package common_test

import (
	"bytes"
	"encoding/json"
	"taskhub/common"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

var _ = Describe("Logging", func() {
	AfterEach(func() {
		Expect(common.ConfigureLogging("info", "text")).To(BeNil())
	})

	It("should attach default service fields to every entry", func() {
		logger := logrus.New()
		buf := &bytes.Buffer{}
		logger.Out = buf
		logger.Formatter = &logrus.JSONFormatter{}
		logger.AddHook(&common.DefaultFieldsHook{})

		logger.Info("hello")

		fields := map[string]interface{}{}
		Expect(json.Unmarshal(buf.Bytes(), &fields)).To(BeNil())
		Expect(fields["serviceName"]).To(Equal(common.GetServiceName()))
		Expect(fields["serviceInstance"]).To(Equal(common.GetServiceInstance()))
		Expect(fields["msg"]).To(Equal("hello"))
	})

	It("should reject unknown levels", func() {
		Expect(common.ConfigureLogging("loud", "text")).ToNot(BeNil())
	})

	It("should switch formatter and level", func() {
		Expect(common.ConfigureLogging("debug", "json")).To(BeNil())
		Expect(logrus.GetLevel()).To(Equal(logrus.DebugLevel))
		_, ok := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
		Expect(ok).To(BeTrue())
	})
})
