package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newBufferedLogger builds a logger with the production encoder shape whose
// output lands in the returned buffer
func newBufferedLogger(level zapcore.Level) (*zap.Logger, *bytes.Buffer) {
	var buf bytes.Buffer

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.MessageKey = "message"

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&buf),
		level,
	)

	return zap.New(core), &buf
}

func TestProperty_EntriesAreStructuredJSON(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every entry decodes as JSON carrying message, level and fields", prop.ForAll(
		func(message string, key string, value string) bool {
			logger, buf := newBufferedLogger(zapcore.DebugLevel)
			defer logger.Sync()

			// Prefix keeps generated keys clear of the encoder's own
			key = "ctx_" + key
			logger.Info(message, zap.String(key, value))

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Logf("Entry is not valid JSON: %v", err)
				return false
			}

			if entry["message"] != message {
				return false
			}
			if entry["level"] != "info" {
				return false
			}
			if _, ok := entry["timestamp"]; !ok {
				return false
			}
			return entry[key] == value
		},
		gen.RegexMatch(`[A-Za-z0-9 .,!?-]{1,60}`),
		gen.RegexMatch(`[a-z][a-zA-Z]{2,15}`),
		gen.RegexMatch(`[A-Za-z0-9_-]{1,30}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_EntriesBelowCoreLevelAreDropped(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("debug entries never reach an info-level sink", prop.ForAll(
		func(message string) bool {
			logger, buf := newBufferedLogger(zapcore.InfoLevel)
			defer logger.Sync()

			logger.Debug(message)
			return buf.Len() == 0
		},
		gen.RegexMatch(`[A-Za-z0-9 ]{1,60}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

type errForTest string

func (e errForTest) Error() string { return string(e) }

func TestErrorEntriesCarryErrorField(t *testing.T) {
	logger, buf := newBufferedLogger(zapcore.DebugLevel)
	defer logger.Sync()

	logger.Error("booking notification failed", zap.Error(errForTest("smtp: connection refused")))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Entry is not valid JSON: %v", err)
	}
	if entry["level"] != "error" {
		t.Errorf("Expected error level, got %v", entry["level"])
	}
	if entry["error"] != "smtp: connection refused" {
		t.Errorf("Error field not carried: %v", entry["error"])
	}
}

func TestNewRespectsEnvironment(t *testing.T) {
	prod, err := New("production")
	if err != nil {
		t.Fatalf("Failed to build production logger: %v", err)
	}
	defer prod.Sync()
	if prod.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Production logger should not emit debug entries")
	}

	dev, err := New("development")
	if err != nil {
		t.Fatalf("Failed to build development logger: %v", err)
	}
	defer dev.Sync()
	if !dev.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Development logger should emit debug entries")
	}
}
