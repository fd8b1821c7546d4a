package domain

import "reflect"

// StripUndefined drops nil values from string-keyed maps, recursing into
// nested maps and slices. It accepts any map[string]interface{} or
// []interface{} shaped type, including named ones such as bson.M and bson.A,
// and returns a value of the same type. Slices keep their length: elements
// are stripped one by one and a nil element stays nil.
func StripUndefined(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String || rv.Type().Elem().Kind() != reflect.Interface {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			val := iter.Value()
			if val.IsNil() {
				continue
			}
			out.SetMapIndex(iter.Key(), reflect.ValueOf(StripUndefined(val.Interface())))
		}
		return out.Interface()
	case reflect.Slice:
		if rv.Type().Elem().Kind() != reflect.Interface {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			el := rv.Index(i)
			if el.IsNil() {
				continue
			}
			out.Index(i).Set(reflect.ValueOf(StripUndefined(el.Interface())))
		}
		return out.Interface()
	default:
		return v
	}
}
