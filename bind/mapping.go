package bind

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// mapByTag fills obj's fields from values, matching each exported
// field by its tag (falling back to the lowercased field name). An
// optional keyFn rewrites lookup keys, e.g. header canonicalization.
// Embedded structs are flattened. Supported field kinds: string,
// bool, ints, uints, floats, time.Duration, pointers and slices of
// those.
func mapByTag(obj any, values url.Values, tag string, keyFn ...func(string) string) error {
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return errors.New("bind: target must be a pointer to a struct")
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		value := rv.Field(i)
		if field.Anonymous && value.Kind() == reflect.Struct {
			if err := mapByTag(value.Addr().Interface(), values, tag, keyFn...); err != nil {
				return err
			}
			continue
		}

		name := field.Tag.Get(tag)
		if name == "-" {
			continue
		}
		if idx := strings.Index(name, ","); idx != -1 {
			name = name[:idx]
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		if len(keyFn) > 0 {
			name = keyFn[0](name)
		}

		vs, ok := values[name]
		if !ok || len(vs) == 0 {
			continue
		}
		if err := setValue(value, vs); err != nil {
			return errors.Wrapf(err, "bind: field %s", field.Name)
		}
	}
	return nil
}

func setValue(v reflect.Value, vs []string) error {
	switch v.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(v.Type(), len(vs), len(vs))
		for i, s := range vs {
			if err := setScalar(out.Index(i), s); err != nil {
				return err
			}
		}
		v.Set(out)
		return nil
	case reflect.Ptr:
		elem := reflect.New(v.Type().Elem())
		if err := setScalar(elem.Elem(), vs[0]); err != nil {
			return err
		}
		v.Set(elem)
		return nil
	default:
		return setScalar(v, vs[0])
	}
}

func setScalar(v reflect.Value, s string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(s)
			if err != nil {
				return err
			}
			v.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return errors.Errorf("unsupported kind %s", v.Kind())
	}
	return nil
}
