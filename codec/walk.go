package codec

import (
	"encoding"
	"io"
	"math"
	"reflect"
	"syscall"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	closerType        = reflect.TypeFor[io.Closer]()
	connType          = reflect.TypeFor[syscall.Conn]()
	marshalerType     = reflect.TypeFor[interface{ MarshalJSON() ([]byte, error) }]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	recordType        = reflect.TypeFor[*Record]()
)

// fieldPlans caches the indices of the struct fields a JSON encoder visits.
var fieldPlans = mustPlanCache(1024)

func mustPlanCache(size int) *lru.Cache[reflect.Type, []int] {
	c, err := lru.New[reflect.Type, []int](size)
	if err != nil {
		panic(err)
	}
	return c
}

// IsResource reports whether v is a handle to an external resource, such as
// an open file, socket, or database connection. Resources cannot be encoded.
func IsResource(v any) bool {
	if v == nil {
		return false
	}
	return isResourceType(reflect.TypeOf(v))
}

func isResourceType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return t.Implements(closerType) || t.Implements(connType)
}

type visitKey struct {
	ptr uintptr
	n   int
	typ reflect.Type
}

// walker checks a value graph before it reaches the backend encoder, which
// cannot report cycles without overflowing the stack.
type walker struct {
	path map[visitKey]struct{}
}

func walkValue(v any) Report {
	w := &walker{path: make(map[visitKey]struct{})}
	return w.walk(reflect.ValueOf(v))
}

func (w *walker) walk(v reflect.Value) Report {
	if !v.IsValid() {
		return Report{}
	}
	t := v.Type()

	if t == recordType {
		if v.IsNil() || !v.CanInterface() {
			return Report{}
		}
		rec := v.Interface().(*Record)
		return w.enter(v, 0, func() Report {
			var r Report
			rec.Range(func(name string, item any) bool {
				if !utf8.ValidString(name) {
					r = fail(StatusUTF8, -1, "malformed UTF-8 in field name %q", name)
					return false
				}
				r = w.walk(reflect.ValueOf(item))
				return r.OK()
			})
			return r
		})
	}

	if t.Kind() != reflect.Interface && isResourceType(t) {
		return fail(StatusUnsupportedType, -1, "resource handle of type %s cannot be encoded", t)
	}
	if isMarshaler(v) {
		return Report{}
	}

	switch v.Kind() {
	case reflect.String:
		if !utf8.ValidString(v.String()) {
			return fail(StatusUTF8, -1, "malformed UTF-8 in string %q", v.String())
		}
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fail(StatusInfOrNaN, -1, "unsupported value %v", f)
		}
	case reflect.Complex64, reflect.Complex128, reflect.Func:
		return fail(StatusUnsupportedType, -1, "unsupported type %s", t)
	case reflect.Interface:
		if v.IsNil() {
			return Report{}
		}
		return w.walk(v.Elem())
	case reflect.Pointer:
		if v.IsNil() {
			return Report{}
		}
		return w.enter(v, 0, func() Report { return w.walk(v.Elem()) })
	case reflect.Map:
		if !validMapKey(t.Key()) {
			return fail(StatusUnsupportedType, -1, "unsupported map key type %s", t.Key())
		}
		if v.IsNil() {
			return Report{}
		}
		return w.enter(v, 0, func() Report {
			iter := v.MapRange()
			for iter.Next() {
				if k := iter.Key(); k.Kind() == reflect.String && !utf8.ValidString(k.String()) {
					return fail(StatusUTF8, -1, "malformed UTF-8 in map key %q", k.String())
				}
				if r := w.walk(iter.Value()); !r.OK() {
					return r
				}
			}
			return Report{}
		})
	case reflect.Slice:
		if v.IsNil() || v.Len() == 0 {
			return Report{}
		}
		if t.Elem().Kind() == reflect.Uint8 && !isMarshalerType(t.Elem()) {
			return Report{}
		}
		return w.enter(v, v.Len(), func() Report { return w.elems(v) })
	case reflect.Array:
		return w.elems(v)
	case reflect.Struct:
		for _, i := range fieldPlan(t) {
			if r := w.walk(v.Field(i)); !r.OK() {
				return r
			}
		}
	}
	return Report{}
}

func (w *walker) elems(v reflect.Value) Report {
	for i := 0; i < v.Len(); i++ {
		if r := w.walk(v.Index(i)); !r.OK() {
			return r
		}
	}
	return Report{}
}

// enter marks a reference as being on the current path while fn runs.
func (w *walker) enter(v reflect.Value, n int, fn func() Report) Report {
	key := visitKey{ptr: v.Pointer(), n: n, typ: v.Type()}
	if _, ok := w.path[key]; ok {
		return fail(StatusRecursion, -1, "encountered a cycle via %s", v.Type())
	}
	w.path[key] = struct{}{}
	defer delete(w.path, key)
	return fn()
}

func isMarshaler(v reflect.Value) bool {
	if isMarshalerType(v.Type()) {
		return true
	}
	if v.Kind() != reflect.Pointer && v.CanAddr() {
		return isMarshalerType(reflect.PointerTo(v.Type()))
	}
	return false
}

func isMarshalerType(t reflect.Type) bool {
	return t.Implements(marshalerType) || t.Implements(textMarshalerType)
}

func validMapKey(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return t.Implements(textMarshalerType)
}

// fieldPlan returns the indices of the fields of struct type t that a JSON
// encoder writes: exported fields and embedded structs, minus `json:"-"`.
func fieldPlan(t reflect.Type) []int {
	if plan, ok := fieldPlans.Get(t); ok {
		return plan
	}
	plan := make([]int, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Tag.Get("json") == "-" {
			continue
		}
		if sf.Anonymous {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				if !sf.IsExported() {
					continue
				}
				ft = ft.Elem()
			}
			if !sf.IsExported() && ft.Kind() != reflect.Struct {
				continue
			}
		} else if !sf.IsExported() {
			continue
		}
		plan = append(plan, i)
	}
	fieldPlans.Add(t, plan)
	return plan
}
