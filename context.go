package trellis

import (
	"bytes"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	jsoniter "github.com/json-iterator/go"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/ugorji/go/codec"
	"google.golang.org/protobuf/proto"

	"github.com/trellis-http/trellis/bind"
	"github.com/trellis-http/trellis/internal/bytesconv"
)

// 路由最大参数
const maxParams = 64

var (
	Json          = jsoniter.ConfigCompatibleWithStandardLibrary
	msgpackHandle codec.MsgpackHandle

	errRequestInterrupted = errors.New("request interrupted by the client")
)

// Context carries one request's mutable state: the request and
// response surfaces, dynamic path captures and a request-scoped
// key/value store. A Context is owned exclusively by its request and
// returned to the router's pool when the request completes.
type Context struct {
	router      *Router
	status      int
	request     request
	response    response
	paramNames  [maxParams]string
	paramValues [maxParams]string
	paramCount  int
	remainder   []string
	sameSite    http.SameSite
	mu          sync.RWMutex
	keys        map[string]any
}

// SetKey stores a key/value pair scoped to this request.
func (c *Context) SetKey(key string, value any) {
	c.mu.Lock()
	if c.keys == nil {
		c.keys = make(map[string]any)
	}
	c.keys[key] = value
	c.mu.Unlock()
}

// GetKey returns the value stored under key, if any.
func (c *Context) GetKey(key string) (value any, exists bool) {
	c.mu.RLock()
	value, exists = c.keys[key]
	c.mu.RUnlock()
	return
}

func (c *Context) GetKeyString(key string) (s string) {
	if val, ok := c.GetKey(key); ok && val != nil {
		s = val.(string)
	}
	return
}

func (c *Context) GetKeyBytes(key string) (b []byte) {
	if val, ok := c.GetKey(key); ok && val != nil {
		b = val.([]byte)
	}
	return
}

func (c *Context) GetKeyInt(key string) (i int) {
	if val, ok := c.GetKey(key); ok && val != nil {
		i = val.(int)
	}
	return
}

func (c *Context) GetKeyBool(key string) (b bool) {
	if val, ok := c.GetKey(key); ok && val != nil {
		b = val.(bool)
	}
	return
}

// addParameter records a dynamic capture bound during tree lookup.
func (c *Context) addParameter(name, value string) {
	c.paramNames[c.paramCount] = name
	c.paramValues[c.paramCount] = value
	c.paramCount++
}

// Param retrieves a dynamic path capture by name.
func (c *Context) Param(name string) string {
	for i := 0; i < c.paramCount; i++ {
		if c.paramNames[i] == name {
			return c.paramValues[i]
		}
	}
	return ""
}

// ParamInt retrieves a dynamic path capture as an integer.
func (c *Context) ParamInt(name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}

// Params returns the captures as a map for binding.
func (c *Context) Params() bind.Params {
	return bind.Params(c.exportParams())
}

func (c *Context) exportParams() map[string]string {
	out := make(map[string]string, c.paramCount)
	for i := 0; i < c.paramCount; i++ {
		out[c.paramNames[i]] = c.paramValues[i]
	}
	return out
}

// Query retrieves a query string value.
func (c *Context) Query(name string) string {
	return c.request.req.URL.Query().Get(name)
}

// Status returns the HTTP status the next body write will carry.
func (c *Context) Status() int {
	return c.status
}

// SetStatus sets the HTTP status for the next body write.
func (c *Context) SetStatus(status int) {
	c.status = status
}

// Request returns the HTTP request surface.
func (c *Context) Request() Request {
	return &c.request
}

// Response returns the HTTP response surface.
func (c *Context) Response() Response {
	return &c.response
}

// Path returns the request path.
func (c *Context) Path() string {
	return c.request.req.URL.Path
}

// SetPath rewrites the request path.
func (c *Context) SetPath(path string) {
	c.request.req.URL.Path = path
}

// Close returns the context to the router's pool. Called by the
// router once the response is produced.
func (c *Context) Close() {
	c.router.contextPool.Put(c)
}

// Bytes writes body with the context's status.
func (c *Context) Bytes(body []byte) error {
	if c.request.Context().Err() != nil {
		return errRequestInterrupted
	}
	c.response.SetHeader(contentLengthHeader, strconv.Itoa(len(body)))
	c.response.WriteHeader(c.status)
	_, err := c.response.Write(body)
	return err
}

// String writes a string body without copying it.
func (c *Context) String(body string) error {
	return c.Bytes(bytesconv.StringToBytes(body))
}

// Text sends a plain text response.
func (c *Context) Text(text string) error {
	c.response.SetHeader(contentTypeHeader, contentTypePlainText)
	return c.String(text)
}

// HTML sends an HTML response.
func (c *Context) HTML(html string) error {
	c.response.SetHeader(contentTypeHeader, contentTypeHTML)
	return c.String(html)
}

// JSON encodes value as JSON and responds.
func (c *Context) JSON(value any) error {
	c.response.SetHeader(contentTypeHeader, contentTypeJSON)
	b, err := Json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Bytes(b)
}

// JSONAndStatus is JSON with an explicit status code.
func (c *Context) JSONAndStatus(status int, value any) error {
	c.status = status
	return c.JSON(value)
}

// YAML encodes value as YAML and responds.
func (c *Context) YAML(value any) error {
	c.response.SetHeader(contentTypeHeader, contentTypeYAML)
	b, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	return c.Bytes(b)
}

// TOML encodes value as TOML and responds.
func (c *Context) TOML(value any) error {
	c.response.SetHeader(contentTypeHeader, contentTypeTOML)
	b, err := toml.Marshal(value)
	if err != nil {
		return err
	}
	return c.Bytes(b)
}

// Msgpack encodes value as msgpack and responds.
func (c *Context) Msgpack(value any) error {
	c.response.SetHeader(contentTypeHeader, contentTypeMsgpack)
	var b []byte
	if err := codec.NewEncoderBytes(&b, &msgpackHandle).Encode(value); err != nil {
		return err
	}
	return c.Bytes(b)
}

// Proto encodes value as a protobuf message and responds.
func (c *Context) Proto(value proto.Message) error {
	c.response.SetHeader(contentTypeHeader, contentTypeProtobuf)
	b, err := proto.Marshal(value)
	if err != nil {
		return err
	}
	return c.Bytes(b)
}

// Error sends an error message to the client and returns it so the
// router's logging sees it too.
func (c *Context) Error(statusCode int, errorList ...any) error {
	c.status = statusCode

	if len(errorList) == 0 {
		message := http.StatusText(statusCode)
		_ = c.String(message)
		return errors.New(message)
	}

	var messageBuffer strings.Builder
	for index, param := range errorList {
		switch err := param.(type) {
		case string:
			messageBuffer.WriteString(err)
		case error:
			messageBuffer.WriteString(err.Error())
		default:
			continue
		}
		if index != len(errorList)-1 {
			messageBuffer.WriteString(": ")
		}
	}

	message := messageBuffer.String()
	_ = c.String(message)
	return errors.New(message)
}

// Redirect redirects to the given URL.
func (c *Context) Redirect(status int, u string) error {
	c.status = status
	c.response.SetHeader(locationHeader, u)
	c.response.WriteHeader(c.status)
	return nil
}

// Bind selects a binding from the method and content type and binds
// the request into obj.
func (c *Context) Bind(obj any) error {
	b := bind.Default(c.request.Method(), c.request.ContentType())
	return c.BindWith(obj, b)
}

// BindWith binds the request into obj with the given binding engine,
// leaving a rewindable body behind for later reads.
func (c *Context) BindWith(obj any, b bind.Binding) error {
	method := c.request.Method()
	isBodyRequest := method != http.MethodGet && method != http.MethodHead && method != http.MethodOptions

	var body []byte
	if isBodyRequest {
		var err error
		if body, err = c.request.RawDataSetBody(); err != nil {
			return err
		}
	}

	err := b.Bind(c.request.req, obj)
	if isBodyRequest {
		c.request.req.Body = io.NopCloser(bytes.NewBuffer(body))
	}
	return err
}

// MustBindWith is BindWith, answering 400 to the client on failure.
func (c *Context) MustBindWith(obj any, b bind.Binding) error {
	if err := c.BindWith(obj, b); err != nil {
		return c.Error(http.StatusBadRequest, err)
	}
	return nil
}

// BindJSON is a shortcut for BindWith(obj, bind.JSON).
func (c *Context) BindJSON(obj any) error {
	return c.BindWith(obj, bind.JSON)
}

// BindYAML is a shortcut for BindWith(obj, bind.YAML).
func (c *Context) BindYAML(obj any) error {
	return c.BindWith(obj, bind.YAML)
}

// BindTOML is a shortcut for BindWith(obj, bind.TOML).
func (c *Context) BindTOML(obj any) error {
	return c.BindWith(obj, bind.TOML)
}

// BindMsgpack is a shortcut for BindWith(obj, bind.Msgpack).
func (c *Context) BindMsgpack(obj any) error {
	return c.BindWith(obj, bind.Msgpack)
}

// BindProto is a shortcut for BindWith(obj, bind.Proto).
func (c *Context) BindProto(obj any) error {
	return c.BindWith(obj, bind.Proto)
}

// BindQuery binds the query string into obj.
func (c *Context) BindQuery(obj any) error {
	return c.BindWith(obj, bind.Query)
}

// BindPath binds the dynamic path captures into obj.
func (c *Context) BindPath(obj any) error {
	return bind.Path(c.Params(), obj)
}

// IP returns the IP from the connection's remote address.
func (c *Context) IP() string {
	if ip, _, err := net.SplitHostPort(strings.TrimSpace(c.request.req.RemoteAddr)); err == nil {
		return ip
	}
	return ""
}

// ClientIP tries to determine the real IP address of the client.
func (c *Context) ClientIP() string {
	ip := c.request.Header(forwardedForHeader)
	ip = strings.TrimSpace(strings.Split(ip, ",")[0])
	if ip == "" {
		ip = strings.TrimSpace(c.request.Header(realIPHeader))
	}
	if ip != "" {
		return ip
	}
	return c.IP()
}

// Cookie returns the named cookie's unescaped value.
func (c *Context) Cookie(name string) (string, error) {
	cookie, err := c.request.req.Cookie(name)
	if err != nil {
		return "", err
	}
	v, _ := url.QueryUnescape(cookie.Value)
	return v, nil
}

// SetSameSite sets the SameSite mode for cookies written afterwards.
func (c *Context) SetSameSite(sameSite http.SameSite) {
	c.sameSite = sameSite
}

// SetCookie adds a Set-Cookie header to the response.
func (c *Context) SetCookie(name, value string, maxAge int, path, domain string, secure, httpOnly bool) {
	if path == "" {
		path = "/"
	}
	http.SetCookie(c.response.rw, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(value),
		MaxAge:   maxAge,
		Path:     path,
		Domain:   domain,
		SameSite: c.sameSite,
		Secure:   secure,
		HttpOnly: httpOnly,
	})
}
