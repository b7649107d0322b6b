package bind

import (
	"io"
	"net/http"

	"github.com/goccy/go-yaml"
)

type yamlBinding struct{}

func (yamlBinding) Name() string {
	return "yaml"
}

func (yamlBinding) Bind(req *http.Request, obj any) error {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	return decodeYAML(body, obj)
}

func (yamlBinding) BindBody(body []byte, obj any) error {
	return decodeYAML(body, obj)
}

func decodeYAML(b []byte, obj any) error {
	if err := yaml.Unmarshal(b, obj); err != nil {
		return err
	}
	return validate(obj)
}
