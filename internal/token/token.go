// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

// Package token classifies authorization-style credential strings and
// decodes bearer token claims.
package token // import "github.com/open-telemetry/opentelemetry-collector-contrib/processor/authtokenprocessor/internal/token"

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/lestrrat-go/jwx/v2/jws"
)

// Component names addressable by a claim path.
const (
	ComponentHeader  = "header"
	ComponentPayload = "payload"
)

// Scheme classifies the credentials carried by an authorization-style value.
type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeBearer
	SchemeAPIKey
	SchemeBasic
)

var schemes = map[string]Scheme{
	"bearer": SchemeBearer,
	"apikey": SchemeAPIKey,
	"basic":  SchemeBasic,
}

// Credential is a classified credential string.
type Credential struct {
	Scheme Scheme
	// Token is the lower-cased scheme token.
	Token string
	// Payload is the part following the scheme token, case preserved.
	Payload string
}

// Classify splits raw into a scheme token and a payload and classifies the
// scheme. The scheme comparison is case-insensitive. ok is false when raw
// does not consist of exactly two whitespace-separated parts.
func Classify(raw string) (Credential, bool) {
	parts := strings.Fields(raw)
	if len(parts) != 2 {
		return Credential{}, false
	}
	schemeToken := strings.ToLower(parts[0])
	return Credential{
		Scheme:  schemes[schemeToken],
		Token:   schemeToken,
		Payload: parts[1],
	}, true
}

// Claims holds the decoded components of a bearer token. Values are plain
// unmarshalled JSON values; structured claims stay nested.
type Claims struct {
	Header  map[string]any
	Payload map[string]any
}

// Decode parses payload as a compact serialized token and decodes its header
// and payload segments into claim maps. The signature segment is never
// verified; this decodes claims, it does not authenticate them.
func Decode(payload string) (*Claims, error) {
	msg, err := jws.ParseString(payload)
	if err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}
	sigs := msg.Signatures()
	if len(sigs) == 0 {
		return nil, errors.New("malformed token: no signature component")
	}

	// Round-trip the protected headers through JSON so header claims come
	// out as plain values rather than jwx's typed fields.
	rawHeader, err := json.Marshal(sigs[0].ProtectedHeaders())
	if err != nil {
		return nil, fmt.Errorf("undecodable header component: %w", err)
	}
	header := make(map[string]any)
	if err := json.Unmarshal(rawHeader, &header); err != nil {
		return nil, fmt.Errorf("undecodable header component: %w", err)
	}

	claims := make(map[string]any)
	if err := json.Unmarshal(msg.Payload(), &claims); err != nil {
		return nil, fmt.Errorf("undecodable payload component: %w", err)
	}

	return &Claims{Header: header, Payload: claims}, nil
}

// Resolve returns the claim value at component/claim, or nil when the
// component or the claim is absent.
func (c *Claims) Resolve(component, claim string) any {
	var m map[string]any
	switch component {
	case ComponentHeader:
		m = c.Header
	case ComponentPayload:
		m = c.Payload
	}
	return m[claim]
}

// Stringify renders a claim value for injection into a record: strings pass
// through unmodified, absent values become the empty string, and any other
// value is rendered as compact JSON.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		rendered, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(rendered)
	}
}
