package raw

import "github.com/tidwall/gjson"

// Attributes is the ordered list of per-entity attribute records
// (AbilitySpecial). Order matters: the first record holding a name wins.
type Attributes []*Record

// ParseAttributes accepts either a JSON array of objects or an object whose
// values are objects, and returns them in document order.
func ParseAttributes(v gjson.Result) Attributes {
	attrs := Attributes{}
	for _, el := range Values(v) {
		attrs = append(attrs, NewRecord(el))
	}
	return attrs
}

// AttributesOf returns the attribute records stored under field, or nil when
// the field is absent.
func AttributesOf(r *Record, field string) Attributes {
	v, ok := r.Get(field)
	if !ok || !(v.IsArray() || v.IsObject()) {
		return nil
	}
	return ParseAttributes(v)
}

// Value returns the value of the first record that holds name.
func (a Attributes) Value(name string) (string, bool) {
	for _, rec := range a {
		if s, ok := rec.String(name); ok {
			return s, true
		}
	}
	return "", false
}

// Values flattens an array, or the values of an object, into a slice.
// Scalars yield a single element.
func Values(v gjson.Result) []gjson.Result {
	switch {
	case v.IsArray():
		return v.Array()
	case v.IsObject():
		var out []gjson.Result
		v.ForEach(func(_, val gjson.Result) bool {
			out = append(out, val)
			return true
		})
		return out
	case v.Exists():
		return []gjson.Result{v}
	}
	return nil
}
