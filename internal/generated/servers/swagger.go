package servers

import (
	"fmt"

	"ordertracking/api"

	"github.com/getkin/kin-openapi/openapi3"
)

// GetSwagger parses the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	swagger, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("error loading swagger spec: %w", err)
	}

	if err = swagger.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid swagger spec: %w", err)
	}

	return swagger, nil
}
