package spec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/travelbuddy/spec"
)

// TestOpenAPI_listsEveryRoute keeps the embedded document in step with the router.
func TestOpenAPI_listsEveryRoute(t *testing.T) {
	var doc struct {
		OpenAPI string                    `yaml:"openapi"`
		Paths   map[string]map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(spec.OpenAPI, &doc))

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	want := map[string][]string{
		"/healthz":                          {"get"},
		"/openapi.yaml":                     {"get"},
		"/plans":                            {"post"},
		"/plans/latest":                     {"get"},
		"/points":                           {"get"},
		"/points/earn":                      {"post"},
		"/points/redeem":                    {"post"},
		"/tips":                             {"get", "post"},
		"/destinations/{city}/attractions": {"get"},
	}
	for path, methods := range want {
		ops, ok := doc.Paths[path]
		require.True(t, ok, "missing path %s", path)
		for _, m := range methods {
			assert.Contains(t, ops, m, "%s %s", m, path)
		}
	}
}
