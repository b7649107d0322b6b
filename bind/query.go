package bind

import "net/http"

type queryBinding struct{}

func (queryBinding) Name() string {
	return "query"
}

func (queryBinding) Bind(req *http.Request, obj any) error {
	if err := mapByTag(obj, req.URL.Query(), "form"); err != nil {
		return err
	}
	return validate(obj)
}
