package bind

import (
	"io"
	"net/http"

	"github.com/ugorji/go/codec"
)

var msgpackHandle codec.MsgpackHandle

type msgpackBinding struct{}

func (msgpackBinding) Name() string {
	return "msgpack"
}

func (msgpackBinding) Bind(req *http.Request, obj any) error {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	return decodeMsgpack(body, obj)
}

func (msgpackBinding) BindBody(body []byte, obj any) error {
	return decodeMsgpack(body, obj)
}

func decodeMsgpack(b []byte, obj any) error {
	if err := codec.NewDecoderBytes(b, &msgpackHandle).Decode(obj); err != nil {
		return err
	}
	return validate(obj)
}
