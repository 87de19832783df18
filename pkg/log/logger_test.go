/*
Copyright © 2021 SUSE LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package log_test

import (
	"bytes"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/suse/efi-boot-generator/pkg/log"
)

func TestLogSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Log test suite")
}

func lookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

var _ = Describe("logger", Label("log"), func() {
	It("DebugLevel returns the proper log level for debug output", func() {
		Expect(log.DebugLevel()).To(Equal(uint32(logrus.DebugLevel)))
	})
	It("Returns true on IsDebugLevel when log level is set to debug", func() {
		l := log.New()
		l.SetLevel(log.DebugLevel())
		Expect(log.IsDebugLevel(l)).To(BeTrue())
		Expect(log.IsDebugLevel(log.New(log.WithDebug()))).To(BeTrue())
	})
	It("Returns false on IsDebugLevel when log level is not set to debug", func() {
		Expect(log.IsDebugLevel(log.New())).To(BeFalse())
	})
	It("stores content in a buffer", func() {
		b := &bytes.Buffer{}
		l := log.New(log.WithBuffer(b))
		l.Info("TEST")
		l.Debug("HIDDEN")
		Expect(b.String()).To(ContainSubstring("TEST"))
		Expect(b.String()).NotTo(ContainSubstring("HIDDEN"))
	})
	Describe("environment", func() {
		It("parses systemd level names and priorities", func() {
			for value, expected := range map[string]logrus.Level{
				"debug":   logrus.DebugLevel,
				"DEBUG":   logrus.DebugLevel,
				"notice":  logrus.InfoLevel,
				"warning": logrus.WarnLevel,
				"err":     logrus.ErrorLevel,
				"error":   logrus.ErrorLevel,
				"3":       logrus.ErrorLevel,
				"7":       logrus.DebugLevel,
			} {
				level, ok := log.ParseLevel(value)
				Expect(ok).To(BeTrue(), value)
				Expect(level).To(Equal(uint32(expected)), value)
			}
		})
		It("rejects unknown levels", func() {
			_, ok := log.ParseLevel("chatty")
			Expect(ok).To(BeFalse())
			_, ok = log.ParseLevel("")
			Expect(ok).To(BeFalse())
		})
		It("sets the level from SYSTEMD_LOG_LEVEL", func() {
			b := &bytes.Buffer{}
			l := log.New(log.WithBuffer(b), log.WithLookupEnv(lookup(map[string]string{
				log.LevelEnv: "debug",
			})))
			Expect(log.IsDebugLevel(l)).To(BeTrue())
			l.Debug("visible")
			Expect(b.String()).To(ContainSubstring("visible"))
		})
		It("keeps defaults for unknown values", func() {
			b := &bytes.Buffer{}
			l := log.New(log.WithBuffer(b), log.WithLookupEnv(lookup(map[string]string{
				log.LevelEnv:  "chatty",
				log.TargetEnv: "somewhere",
			})))
			Expect(l.GetLevel()).To(Equal(uint32(logrus.InfoLevel)))
			l.Info("still here")
			Expect(b.String()).To(ContainSubstring("still here"))
		})
		It("discards everything with the null target", func() {
			b := &bytes.Buffer{}
			l := log.New(log.WithBuffer(b), log.WithLookupEnv(lookup(map[string]string{
				log.TargetEnv: "null",
			})))
			l.Error("gone")
			Expect(b.Len()).To(BeZero())
		})
		It("applies a default target", func() {
			b := &bytes.Buffer{}
			l := log.New(log.WithBuffer(b), log.WithTarget("null"))
			l.Error("gone")
			Expect(b.Len()).To(BeZero())
		})
		It("keeps the output for an unknown default target", func() {
			b := &bytes.Buffer{}
			l := log.New(log.WithBuffer(b), log.WithTarget("somewhere"))
			l.Info("still here")
			Expect(b.String()).To(ContainSubstring("still here"))
		})
		It("lets SYSTEMD_LOG_TARGET override the default target", func() {
			b := &bytes.Buffer{}
			l := log.New(log.WithBuffer(b), log.WithTarget("console"), log.WithLookupEnv(lookup(map[string]string{
				log.TargetEnv: "null",
			})))
			l.Error("gone")
			Expect(b.Len()).To(BeZero())
		})
	})
})
