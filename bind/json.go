package bind

import (
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var Json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonBinding struct{}

func (jsonBinding) Name() string {
	return "json"
}

func (jsonBinding) Bind(req *http.Request, obj any) error {
	if req == nil || req.Body == nil {
		return errors.New("invalid request")
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	return decodeJSON(body, obj)
}

func (jsonBinding) BindBody(body []byte, obj any) error {
	return decodeJSON(body, obj)
}

func decodeJSON(b []byte, obj any) error {
	if len(b) == 0 {
		return errors.New("empty request body")
	}
	if err := Json.Unmarshal(b, obj); err != nil {
		return err
	}
	return validate(obj)
}
