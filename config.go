// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

package authtokenprocessor // import "github.com/open-telemetry/opentelemetry-collector-contrib/processor/authtokenprocessor"

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/open-telemetry/opentelemetry-collector-contrib/processor/authtokenprocessor/internal/token"
)

// defaultSkipBasicToken silences the basic-credentials warning by default.
const defaultSkipBasicToken = true

var errNoCredentialsKey = errors.New("credentials_key must be set")

// Config is the configuration of the processor.
type Config struct {
	// CredentialsKey is the dotted path of the record field holding the raw
	// credentials string, rooted at "body" or "attributes". A literal dot
	// inside a key is escaped with a backslash. Required.
	CredentialsKey string `mapstructure:"credentials_key"`

	// RemoveCredentialsKey deletes the source field after credentials were
	// extracted successfully. Defaults to false.
	RemoveCredentialsKey bool `mapstructure:"remove_credentials_key"`

	// SkipBasicToken suppresses the warning otherwise logged for basic
	// credentials, which are never decoded. Defaults to true.
	SkipBasicToken bool `mapstructure:"skip_basic_token"`

	// Fields maps an output attribute name to the "<header|payload>.<claim>"
	// path of the bearer token claim that populates it. Everything after the
	// first dot is the literal claim name.
	Fields map[string]string `mapstructure:"fields"`
}

// Validate validates the processor configuration.
func (c *Config) Validate() error {
	if c.CredentialsKey == "" {
		return errNoCredentialsKey
	}
	if _, err := newField(c.CredentialsKey); err != nil {
		return fmt.Errorf("credentials_key: %w", err)
	}
	if _, err := parseBindings(c.Fields); err != nil {
		return err
	}
	return nil
}

// binding maps an output attribute to a claim of a decoded bearer token.
type binding struct {
	attribute string
	component string
	claim     string
}

// parseBindings builds the binding table from the fields configuration,
// ordered by output attribute for deterministic application.
func parseBindings(fields map[string]string) ([]binding, error) {
	bindings := make([]binding, 0, len(fields))
	for attribute, path := range fields {
		componentName, claim, found := strings.Cut(path, ".")
		if !found || claim == "" ||
			(componentName != token.ComponentHeader && componentName != token.ComponentPayload) {
			return nil, fmt.Errorf("field %q: claim path %q must start with %q or %q",
				attribute, path, token.ComponentHeader+".", token.ComponentPayload+".")
		}
		bindings = append(bindings, binding{
			attribute: attribute,
			component: componentName,
			claim:     claim,
		})
	}
	sort.Slice(bindings, func(i, j int) bool {
		return bindings[i].attribute < bindings[j].attribute
	})
	return bindings, nil
}
