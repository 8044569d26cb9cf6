package transport

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/iancoleman/strcase"
)

// Params are optional query parameters for list, get and delete requests.
// Nil values are omitted during serialization; everything else is
// stringified. The SDK passes them through to the server unmodified.
type Params map[string]any

// EncodeParams serializes params into URL query values. Keys with nil values
// are dropped. Slice values are encoded as repeated keys.
func EncodeParams(params Params) url.Values {
	values := url.Values{}
	for key, value := range params {
		if value == nil {
			continue
		}
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Ptr:
			if rv.IsNil() {
				continue
			}
			values.Set(key, stringify(rv.Elem().Interface()))
		case reflect.Slice, reflect.Array:
			for i := 0; i < rv.Len(); i++ {
				values.Add(key, stringify(rv.Index(i).Interface()))
			}
		default:
			values.Set(key, stringify(value))
		}
	}
	return values
}

// StructParams converts an options struct into Params. The query key for each
// exported field is taken from its `query` tag, falling back to the
// snake_case form of the field name. Nil pointers, nil slices and nil maps
// are omitted; a `query:"-"` tag skips the field entirely.
func StructParams(v any) Params {
	params := Params{}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return params
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return params
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		key := field.Tag.Get("query")
		if key == "-" {
			continue
		}
		if key == "" {
			key = strcase.ToSnake(field.Name)
		}
		fv := rv.Field(i)
		switch fv.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Map:
			if fv.IsNil() {
				continue
			}
			if fv.Kind() == reflect.Ptr {
				fv = fv.Elem()
			}
		}
		params[key] = fv.Interface()
	}
	return params
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}
