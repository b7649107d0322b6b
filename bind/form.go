package bind

import "net/http"

const defaultMemory = 32 << 20

type formBinding struct{}

func (formBinding) Name() string {
	return "form"
}

func (formBinding) Bind(req *http.Request, obj any) error {
	if err := req.ParseForm(); err != nil {
		return err
	}
	// multipart forms fold their values into req.Form as well
	_ = req.ParseMultipartForm(defaultMemory)
	if err := mapByTag(obj, req.Form, "form"); err != nil {
		return err
	}
	return validate(obj)
}
