// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package authtokenprocessor // import "github.com/open-telemetry/opentelemetry-collector-contrib/processor/authtokenprocessor"

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/collector/pdata/pcommon"
	"go.opentelemetry.io/collector/pdata/plog"
)

const (
	// bodyField is the name of the top level field for a log body.
	bodyField = "body"

	// attributeField is the name of the top level field for log attributes.
	attributeField = "attributes"

	// fieldDelimiter is the delimiter of parts of a field key.
	fieldDelimiter = '.'

	// fieldEscape escapes a literal delimiter inside a key part.
	fieldEscape = '\\'
)

// field addresses a single value inside a log record by a dotted key path
// rooted at the body or the attribute map.
type field struct {
	keyParts []string
}

// newField validates and parses key into a field.
func newField(key string) (*field, error) {
	keyParts := splitField(key)
	if keyParts[0] != bodyField && keyParts[0] != attributeField {
		return nil, fmt.Errorf("a field must start with %q or %q", bodyField, attributeField)
	}
	if len(keyParts) < 2 {
		return nil, fmt.Errorf("a field must address a key under %q or %q", bodyField, attributeField)
	}
	return &field{keyParts: keyParts}, nil
}

// get returns the value the field addresses in logRecord, if present.
func (f *field) get(logRecord plog.LogRecord) (pcommon.Value, bool) {
	rootMap, ok := f.rootMap(logRecord)
	if !ok {
		return pcommon.Value{}, false
	}

	value, ok := rootMap.Get(f.keyParts[1])
	if !ok {
		return pcommon.Value{}, false
	}
	for _, keyPart := range f.keyParts[2:] {
		if value.Type() != pcommon.ValueTypeMap {
			return pcommon.Value{}, false
		}
		value, ok = value.Map().Get(keyPart)
		if !ok {
			return pcommon.Value{}, false
		}
	}
	return value, true
}

// delete removes the value the field addresses from logRecord. Missing
// intermediate keys leave the record untouched.
func (f *field) delete(logRecord plog.LogRecord) {
	currentMap, ok := f.rootMap(logRecord)
	if !ok {
		return
	}

	keyParts := f.keyParts[1:]
	for len(keyParts) > 1 {
		value, ok := currentMap.Get(keyParts[0])
		if !ok || value.Type() != pcommon.ValueTypeMap {
			return
		}
		currentMap = value.Map()
		keyParts = keyParts[1:]
	}
	currentMap.Remove(keyParts[0])
}

func (f *field) rootMap(logRecord plog.LogRecord) (pcommon.Map, bool) {
	switch f.keyParts[0] {
	case bodyField:
		if logRecord.Body().Type() != pcommon.ValueTypeMap {
			return pcommon.Map{}, false
		}
		return logRecord.Body().Map(), true
	default:
		return logRecord.Attributes(), true
	}
}

// splitField splits a field key on the delimiter, honoring escaped
// delimiters inside key parts.
func splitField(key string) []string {
	var keyParts []string
	var sb strings.Builder

	escaped := false
	for _, r := range key {
		switch {
		case escaped:
			sb.WriteRune(r)
			escaped = false
		case r == fieldEscape:
			escaped = true
		case r == fieldDelimiter:
			keyParts = append(keyParts, sb.String())
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}
	keyParts = append(keyParts, sb.String())

	return keyParts
}
