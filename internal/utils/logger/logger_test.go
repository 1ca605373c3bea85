package logger

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/coinvault/transfer-gateway/internal/types/environments"
)

var _ = Describe("Logger", func() {
	var logger *Logger

	Describe("#New", func() {
		It("should create a new logger with production config when environment is production", func() {
			logger = New(environments.Production)
			Expect(logger).NotTo(BeNil())
			Expect(logger.wrappedLogger).NotTo(BeNil())
		})

		It("should create a new logger with development config when environment is development", func() {
			logger = New(environments.Development)
			Expect(logger).NotTo(BeNil())
			Expect(logger.wrappedLogger).NotTo(BeNil())
		})

		It("should create a new logger with staging config when environment is staging", func() {
			logger = New(environments.Staging)
			Expect(logger).NotTo(BeNil())
			Expect(logger.wrappedLogger).NotTo(BeNil())
		})

		It("should create a new logger with test config when environment is test", func() {
			logger = New(environments.Test)
			Expect(logger).NotTo(BeNil())
			Expect(logger.wrappedLogger).NotTo(BeNil())
		})

		It("should create a new logger with production config when environment is unknown", func() {
			unknownEnv := environments.Environment("unknown")
			logger = New(unknownEnv)
			Expect(logger).NotTo(BeNil())
			Expect(logger.wrappedLogger).NotTo(BeNil())

			// Verify that the logger is configured with production settings
			zapLogger := logger.wrappedLogger.WithOptions(zap.AddCaller())
			core := zapLogger.Core()
			Expect(core.Enabled(zapcore.InfoLevel)).To(BeTrue())
			Expect(core.Enabled(zapcore.DebugLevel)).To(BeFalse())
		})
	})

	Describe("#Debug", func() {
		BeforeEach(func() {
			logger = New(environments.Test)
		})

		It("should log debug messages", func() {
			Expect(func() {
				logger.Debug("debug message", map[string]string{"key": "value"})
			}).NotTo(Panic())
		})
	})

	Describe("#Error", func() {
		BeforeEach(func() {
			logger = New(environments.Test)
		})

		It("should log error messages", func() {
			Expect(func() {
				logger.Error("error message", map[string]string{"key": "value"})
			}).NotTo(Panic())
		})
	})

	Describe("#Info", func() {
		BeforeEach(func() {
			logger = New(environments.Test)
		})

		It("should log info messages", func() {
			Expect(func() {
				logger.Info("info message", map[string]string{"key": "value"})
			}).NotTo(Panic())
		})

		It("should log info messages without fields", func() {
			Expect(func() {
				logger.Info("info message")
			}).NotTo(Panic())
		})
	})
})

var _ = Describe("Environment configs", func() {
	Describe("#newProductionLoggerConfig", func() {
		It("should enable info and suppress debug", func() {
			cfg := newProductionLoggerConfig()
			Expect(cfg.Level.Enabled(zapcore.InfoLevel)).To(BeTrue())
			Expect(cfg.Level.Enabled(zapcore.DebugLevel)).To(BeFalse())
		})
	})

	Describe("#newStagingLoggerConfig", func() {
		It("should enable debug", func() {
			cfg := newStagingLoggerConfig()
			Expect(cfg.Level.Enabled(zapcore.DebugLevel)).To(BeTrue())
		})
	})

	Describe("#newDevelopmentLoggerConfig", func() {
		It("should enable debug", func() {
			cfg := newDevelopmentLoggerConfig()
			Expect(cfg.Level.Enabled(zapcore.DebugLevel)).To(BeTrue())
		})
	})

	Describe("#newTestLoggerConfig", func() {
		It("should write to stdout", func() {
			cfg := newTestLoggerConfig()
			Expect(cfg.OutputPaths).To(ContainElement("stdout"))
		})
	})
})
