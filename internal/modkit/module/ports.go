package module

import "reflect"

// PortSet is a marker for module defined port sets
// modules define their own bundle struct and return it from Ports
type PortSet = any

// PortsOf pulls T out of a module's Ports() bundle
// the bundle may implement T itself or carry it in an exported, non nil field
func PortsOf[T any](m Module) (T, bool) { return resolve[T](m.Ports()) }

// MustPortsOf is PortsOf for wiring code that cannot continue without the port
func MustPortsOf[T any](m Module) T {
	if v, ok := PortsOf[T](m); ok {
		return v
	}
	var zero T
	panic("module: " + m.Name() + " exposes no " + reflect.TypeOf(&zero).Elem().String())
}

func resolve[T any](p any) (t T, ok bool) {
	if p == nil {
		return t, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return t, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return t, false
	}
	for _, sf := range reflect.VisibleFields(rv.Type()) {
		if !sf.IsExported() || len(sf.Index) > 1 {
			continue
		}
		f := rv.FieldByIndex(sf.Index)
		if isNilish(f) {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return t, false
}

// nil fields never satisfy a port
func isNilish(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}
