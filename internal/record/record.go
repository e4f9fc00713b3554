package record

import (
	"bytes"
	"encoding/json"
)

// NotFoundText is how the not-found sentinel is displayed and encoded.
const NotFoundText = "Not found"

// ValueKind tells which variant a Value holds.
type ValueKind int

const (
	KindText ValueKind = iota
	KindNotFound
	KindItems
)

// Value is one field value: a string, the not-found sentinel, or a line-item table.
type Value struct {
	kind  ValueKind
	text  string
	items []LineItem
}

// Text returns a scalar string value. The empty string is a valid value and
// is distinct from NotFound.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// NotFound returns the sentinel meaning the extractor ran but matched nothing.
func NotFound() Value {
	return Value{kind: KindNotFound}
}

// Items returns a line-item table value. The slice is copied.
func Items(items []LineItem) Value {
	cp := make([]LineItem, len(items))
	copy(cp, items)
	return Value{kind: KindItems, items: cp}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNotFound() bool { return v.kind == KindNotFound }

// String returns the display form of a scalar or sentinel value.
// Line-item values have no scalar form and return "".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNotFound:
		return NotFoundText
	}
	return ""
}

// LineItems returns a copy of the table rows, or nil for non-table values.
func (v Value) LineItems() []LineItem {
	if v.kind != KindItems {
		return nil
	}
	cp := make([]LineItem, len(v.items))
	copy(cp, v.items)
	return cp
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindItems:
		if v.items == nil {
			return []byte("[]"), nil
		}
		return marshal(v.items)
	default:
		return marshal(v.String())
	}
}

// marshal encodes without HTML escaping so MathML values stay readable.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// LineItem is one invoice row. Keys are fixed and always in this order.
type LineItem struct {
	Item     string `json:"Item"`
	Quantity string `json:"Quantity"`
	Price    string `json:"Price"`
}

// LineItemKeys lists the LineItem column names in display order.
var LineItemKeys = []string{"Item", "Quantity", "Price"}

// Values returns the row cells in LineItemKeys order.
func (li LineItem) Values() []string {
	return []string{li.Item, li.Quantity, li.Price}
}

// Field is a named value inside a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is an ordered field-name to value mapping produced by one
// extraction. Insertion order is display order.
type Record struct {
	fields []Field
	index  map[string]int
}

func New() *Record {
	return &Record{index: make(map[string]int)}
}

// Set adds a field, or replaces the value of an existing field in place.
func (r *Record) Set(name string, v Value) *Record {
	if i, ok := r.index[name]; ok {
		r.fields[i].Value = v
		return r
	}
	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: v})
	return r
}

func (r *Record) Get(name string) (Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return Value{}, false
	}
	return r.fields[i].Value, true
}

// Fields returns the fields in insertion order.
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

func (r *Record) Names() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

func (r *Record) Len() int { return len(r.fields) }

// MarshalJSON writes the record as a JSON object whose keys keep insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
