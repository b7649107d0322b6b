package bind

import (
	"net/http"
	"net/textproto"
	"net/url"
)

type headerBinding struct{}

func (headerBinding) Name() string {
	return "header"
}

func (headerBinding) Bind(req *http.Request, obj any) error {
	values := url.Values{}
	for key, vals := range req.Header {
		values[key] = vals
	}
	if err := mapByTag(obj, values, "header", textproto.CanonicalMIMEHeaderKey); err != nil {
		return err
	}
	return validate(obj)
}
