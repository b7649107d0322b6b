// Package bind deserializes request representations (body, query
// string, headers, path captures) into structs and validates the
// result with go-playground/validator.
package bind

import (
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Content types the Default selector understands.
const (
	MIMEJSON     = "application/json"
	MIMEYAML     = "application/yaml"
	MIMEYAML2    = "application/x-yaml"
	MIMETOML     = "application/toml"
	MIMEMSGPACK  = "application/msgpack"
	MIMEMSGPACK2 = "application/x-msgpack"
	MIMEPROTOBUF = "application/x-protobuf"
	MIMEPOSTForm = "application/x-www-form-urlencoded"
)

// Binding deserializes one request representation into obj and
// validates the result.
type Binding interface {
	Name() string
	Bind(req *http.Request, obj any) error
}

// BodyBinding additionally binds from a raw body slice.
type BodyBinding interface {
	Binding
	BindBody(body []byte, obj any) error
}

var (
	JSON    BodyBinding = jsonBinding{}
	YAML    BodyBinding = yamlBinding{}
	TOML    BodyBinding = tomlBinding{}
	Msgpack BodyBinding = msgpackBinding{}
	Proto   BodyBinding = protoBinding{}
	Query   Binding     = queryBinding{}
	Form    Binding     = formBinding{}
	Header  Binding     = headerBinding{}
)

// Validator checks bound structs. Replace it to customize rules; set
// it to nil to disable validation entirely.
var Validator = validator.New()

// Default selects the binding engine for a method and content type.
func Default(method, contentType string) Binding {
	if method == http.MethodGet {
		return Query
	}

	switch contentType {
	case MIMEJSON:
		return JSON
	case MIMEYAML, MIMEYAML2:
		return YAML
	case MIMETOML:
		return TOML
	case MIMEMSGPACK, MIMEMSGPACK2:
		return Msgpack
	case MIMEPROTOBUF:
		return Proto
	default:
		return Form
	}
}

// validate runs struct validation; non-struct targets carry no rules
// and pass through.
func validate(obj any) error {
	if Validator == nil {
		return nil
	}
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return Validator.Struct(obj)
}
