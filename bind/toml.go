package bind

import (
	"io"
	"net/http"

	toml "github.com/pelletier/go-toml/v2"
)

type tomlBinding struct{}

func (tomlBinding) Name() string {
	return "toml"
}

func (tomlBinding) Bind(req *http.Request, obj any) error {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	return decodeTOML(body, obj)
}

func (tomlBinding) BindBody(body []byte, obj any) error {
	return decodeTOML(body, obj)
}

func decodeTOML(b []byte, obj any) error {
	if err := toml.Unmarshal(b, obj); err != nil {
		return err
	}
	return validate(obj)
}
