// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package authtokenprocessor // import "github.com/open-telemetry/opentelemetry-collector-contrib/processor/authtokenprocessor"

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/collector/pdata/plog"
	"go.uber.org/zap"

	"github.com/open-telemetry/opentelemetry-collector-contrib/processor/authtokenprocessor/internal/token"
)

// clientKeyAttribute receives the payload of an apikey credential.
const clientKeyAttribute = "client_key"

// authTokenProcessor extracts credentials from a configured record field and
// injects derived attributes into each log record.
type authTokenProcessor struct {
	logger       *zap.Logger
	source       *field
	bindings     []binding
	removeSource bool
	skipBasic    bool
}

func newProcessor(cfg *Config, logger *zap.Logger) (*authTokenProcessor, error) {
	// This should not happen due to config validation but we check anyways.
	source, err := newField(cfg.CredentialsKey)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials_key: %w", err)
	}
	bindings, err := parseBindings(cfg.Fields)
	if err != nil {
		return nil, err
	}

	return &authTokenProcessor{
		logger:       logger,
		source:       source,
		bindings:     bindings,
		removeSource: cfg.RemoveCredentialsKey,
		skipBasic:    cfg.SkipBasicToken,
	}, nil
}

// processLogs processes every log record in place and always forwards the
// batch; per-record failures degrade to "no attributes added".
func (p *authTokenProcessor) processLogs(_ context.Context, ld plog.Logs) (plog.Logs, error) {
	for i := 0; i < ld.ResourceLogs().Len(); i++ {
		resourceLogs := ld.ResourceLogs().At(i)
		for j := 0; j < resourceLogs.ScopeLogs().Len(); j++ {
			logRecords := resourceLogs.ScopeLogs().At(j).LogRecords()
			for k := 0; k < logRecords.Len(); k++ {
				p.processRecord(logRecords.At(k))
			}
		}
	}
	return ld, nil
}

func (p *authTokenProcessor) processRecord(logRecord plog.LogRecord) {
	value, ok := p.source.get(logRecord)
	if !ok {
		return
	}
	raw := value.AsString()
	if raw == "" {
		return
	}

	credential, ok := token.Classify(raw)
	if !ok {
		p.logger.Warn("invalid credentials string, expected scheme and payload")
		return
	}

	switch credential.Scheme {
	case token.SchemeBearer:
		p.logger.Debug("decoding bearer token", zap.String("token", credential.Payload))
		claims, err := token.Decode(credential.Payload)
		if err != nil {
			p.logger.Error("failed to decode bearer token",
				zap.String("token", credential.Payload), zap.Error(err))
			return
		}
		for _, b := range p.bindings {
			logRecord.Attributes().PutStr(b.attribute, token.Stringify(claims.Resolve(b.component, b.claim)))
		}
		if p.removeSource {
			p.source.delete(logRecord)
		}
	case token.SchemeAPIKey:
		logRecord.Attributes().PutStr(clientKeyAttribute, strings.TrimSpace(credential.Payload))
		if p.removeSource {
			p.source.delete(logRecord)
		}
	case token.SchemeBasic:
		if !p.skipBasic {
			p.logger.Warn("skipping basic credentials")
		}
	default:
		p.logger.Warn("unknown credentials scheme", zap.String("scheme", credential.Token))
	}
}
