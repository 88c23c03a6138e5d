package interps

import (
	"fmt"
	"reflect"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

func toStarlarkValue(v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None

	case bool:
		return starlark.Bool(v)

	case []byte:
		return starlark.Bytes(v)
	case string:
		return starlark.String(v)

	case int:
		return starlark.MakeInt(v)
	case int8:
		return starlark.MakeInt(int(v))
	case int16:
		return starlark.MakeInt(int(v))
	case int32:
		return starlark.MakeInt(int(v))
	case int64:
		return starlark.MakeInt64(v)

	case uint:
		return starlark.MakeUint(v)
	case uint8:
		return starlark.MakeUint(uint(v))
	case uint16:
		return starlark.MakeUint(uint(v))
	case uint32:
		return starlark.MakeUint(uint(v))
	case uint64:
		return starlark.MakeUint64(v)

	case float32:
		return starlark.Float(v)
	case float64:
		return starlark.Float(v)

	case []any:
		elems := make([]starlark.Value, len(v))
		for i, e := range v {
			elems[i] = toStarlarkValue(e)
		}
		return starlark.NewList(elems)

	case map[string]any:
		d := starlark.NewDict(len(v))
		for k, val := range v {
			d.SetKey(starlark.String(k), toStarlarkValue(val))
		}
		return d

	case starlark.Value:
		return v

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool())

	case reflect.String:
		return starlark.String(value.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(value.Uint())

	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float())

	case reflect.Slice, reflect.Array:
		l := value.Len()
		elems := make([]starlark.Value, l)
		for i := range l {
			elem := value.Index(i)
			elems[i] = toStarlarkValue(elem.Interface())
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(
				toStarlarkValue(iter.Key().Interface()),
				toStarlarkValue(iter.Value().Interface()),
			)
		}
		return d

	case reflect.Struct:
		n := value.NumField()
		d := starlark.NewDict(n)
		typ := value.Type()
		for i := range n {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			d.SetKey(
				starlark.String(field.Name),
				toStarlarkValue(value.Field(i).Interface()),
			)
		}
		return d

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None
		}
		return toStarlarkValue(elem.Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface())

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}

// toGoValue converts a starlark value into something assignable to the
// given parameter type.
func toGoValue(value starlark.Value, t reflect.Type) (reflect.Value, error) {

	// parameters declared as starlark interfaces take the value as is
	if t.Kind() == reflect.Interface &&
		t.NumMethod() > 0 &&
		reflect.TypeOf(value).Implements(t) {
		return reflect.ValueOf(value), nil
	}

	converted := fromStarlarkValue(value)
	if converted == nil {
		return reflect.Zero(t), nil
	}

	rv := reflect.ValueOf(converted)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		switch rv.Kind() {
		case reflect.Int64, reflect.Float64:
			return rv.Convert(t), nil
		}
	case reflect.String:
		if rv.Kind() == reflect.String {
			return rv.Convert(t), nil
		}
	case reflect.Bool:
		if rv.Kind() == reflect.Bool {
			return rv.Convert(t), nil
		}
	}

	return reflect.Value{}, fmt.Errorf("cannot use %s as %v", value.Type(), t)
}

func fromStarlarkValue(value starlark.Value) any {
	switch value := value.(type) {

	case nil, starlark.NoneType:
		return nil

	case starlark.Bool:
		return bool(value)

	case starlark.Int:
		if i, ok := value.Int64(); ok {
			return i
		}
		return value.String()

	case starlark.Float:
		return float64(value)

	case starlark.String:
		return string(value)

	case starlark.Bytes:
		return []byte(value)

	case starlark.Tuple:
		elems := make([]any, len(value))
		for i, elem := range value {
			elems[i] = fromStarlarkValue(elem)
		}
		return elems

	case *starlark.List:
		elems := make([]any, 0, value.Len())
		for i := range value.Len() {
			elems = append(elems, fromStarlarkValue(value.Index(i)))
		}
		return elems

	case *starlark.Dict:
		ret := make(map[string]any, value.Len())
		for _, item := range value.Items() {
			key, ok := starlark.AsString(item[0])
			if !ok {
				key = item[0].String()
			}
			ret[key] = fromStarlarkValue(item[1])
		}
		return ret

	case *starlark.Set:
		elems := make([]any, 0, value.Len())
		iter := value.Iterate()
		defer iter.Done()
		var elem starlark.Value
		for iter.Next(&elem) {
			elems = append(elems, fromStarlarkValue(elem))
		}
		return elems

	}

	return value.String()
}
