package bind

import (
	"io"
	"net/http"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
)

type protoBinding struct{}

func (protoBinding) Name() string {
	return "protobuf"
}

func (protoBinding) Bind(req *http.Request, obj any) error {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	return decodeProto(body, obj)
}

func (protoBinding) BindBody(body []byte, obj any) error {
	return decodeProto(body, obj)
}

func decodeProto(b []byte, obj any) error {
	msg, ok := obj.(proto.Message)
	if !ok {
		return errors.New("bind: protobuf target must implement proto.Message")
	}
	// validator tags don't apply to generated messages
	return proto.Unmarshal(b, msg)
}
