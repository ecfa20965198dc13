package http

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawSpec []byte

var loadSpec = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse openapi document: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
})

// validateSchema checks a decoded JSON value against a component schema.
func validateSchema(name string, value any) error {
	doc, err := loadSpec()
	if err != nil {
		return err
	}
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref.Value == nil {
		return fmt.Errorf("openapi document has no %q schema", name)
	}
	if err := ref.Value.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

// Spec returns the parsed and validated OpenAPI document served at /openapi.yaml.
func Spec() (*openapi3.T, error) {
	return loadSpec()
}
