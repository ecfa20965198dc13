package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

const maxBodyBytes = 1 << 20

// decodeBody reads a JSON object and maps it onto dst by mapstructure tags.
// Unknown keys are rejected. An empty body decodes as an empty object.
func decodeBody(r *http.Request, dst any) error {
	return decodeSchemaBody(r, "", dst)
}

// decodeSchemaBody is decodeBody with the object first checked against the
// named component schema of the embedded OpenAPI document.
func decodeSchemaBody(r *http.Request, schema string, dst any) error {
	raw := map[string]any{}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: malformed json: %w", domain.ErrInvalidInput, err)
	}

	if schema != "" {
		if err := validateSchema(schema, raw); err != nil {
			return err
		}
	}

	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      dst,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := d.Decode(raw); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}
