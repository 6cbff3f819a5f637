package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldRole is the structured log field key for a document role (job_description or resume).
	FieldRole = "role"
	// FieldDocument is the structured log field key for a document label.
	FieldDocument = "document"
	// FieldRunID is the structured log field key for the analysis run identifier.
	FieldRunID = "run_id"
	// FieldTagger is the structured log field key for the part-of-speech tagger provider.
	FieldTagger = "tagger"
	// FieldModel is the structured log field key for the tagger model identifier.
	FieldModel = "tagger_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger, defaulting to a
// no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// DocumentFields describes a document by role and label.
func DocumentFields(role, label string) []zap.Field {
	return StringFields(
		StringField{Key: FieldRole, Value: role},
		StringField{Key: FieldDocument, Value: label},
	)
}

// WithDocument scopes the logger to a single document.
func WithDocument(logger *zap.Logger, role, label string) *zap.Logger {
	return WithFields(logger, DocumentFields(role, label)...)
}

// TaggerFields describes the part-of-speech tagger in use.
func TaggerFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldTagger, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithTagger scopes the logger to a tagger provider and model.
func WithTagger(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, TaggerFields(provider, model)...)
}
