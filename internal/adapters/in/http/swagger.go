package http

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

// registerSwaggerDoc publishes the document as swag's default instance, which
// echo-swagger serves under /swagger/doc.json. swag allows one registration
// per process.
func registerSwaggerDoc(swagger *openapi3.T) error {
	data, err := swagger.MarshalJSON()
	if err != nil {
		return err
	}

	registerDocOnce.Do(func() {
		swag.Register(swag.Name, openAPIDoc{json: string(data)})
	})
	return nil
}
