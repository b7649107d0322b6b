package trellis

const (
	contentTypeHeader    = "Content-Type"
	contentLengthHeader  = "Content-Length"
	allowHeader          = "Allow"
	locationHeader       = "Location"
	forwardedForHeader   = "X-Forwarded-For"
	realIPHeader         = "X-Real-Ip"
	forwardedProtoHeader = "X-Forwarded-Proto"

	contentTypeJSON      = "application/json; charset=utf-8"
	contentTypeYAML      = "application/yaml; charset=utf-8"
	contentTypeTOML      = "application/toml; charset=utf-8"
	contentTypeMsgpack   = "application/msgpack"
	contentTypeProtobuf  = "application/x-protobuf"
	contentTypeHTML      = "text/html; charset=utf-8"
	contentTypePlainText = "text/plain; charset=utf-8"
)
