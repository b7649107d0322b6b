package bind

import "net/url"

// Params are the dynamic path captures resolved for one request.
type Params map[string]string

// Path binds path captures into obj by `param` tag and validates the
// result.
func Path(params Params, obj any) error {
	values := url.Values{}
	for name, value := range params {
		values.Set(name, value)
	}
	if err := mapByTag(obj, values, "param"); err != nil {
		return err
	}
	return validate(obj)
}
