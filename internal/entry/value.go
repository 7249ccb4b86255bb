package entry

import "encoding/json"

// Type identifies the JSON type of a Value.
type Type int

const (
	TypeNull Type = iota
	TypeBool
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

var typeNames = [...]string{
	TypeNull:   "null",
	TypeBool:   "boolean",
	TypeNumber: "number",
	TypeString: "string",
	TypeArray:  "array",
	TypeObject: "object",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// Value is a decoded JSON value that remembers the member order of objects
// and the literal text of numbers.
type Value struct {
	Type    Type
	Bool    bool
	Number  json.Number
	Str     string
	Items   []Value
	Members []Member
}

// Member is one key/value pair of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Scalar reports whether v is neither an array nor an object.
func (v Value) Scalar() bool {
	return v.Type != TypeArray && v.Type != TypeObject
}

// Lookup returns the first member named key.
func Lookup(members []Member, key string) (Value, bool) {
	for _, m := range members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Null, String, Number and Bool build scalar values, mostly for tests.
func Null() Value { return Value{Type: TypeNull} }

func String(s string) Value { return Value{Type: TypeString, Str: s} }

func Number(literal string) Value { return Value{Type: TypeNumber, Number: json.Number(literal)} }

func Bool(b bool) Value { return Value{Type: TypeBool, Bool: b} }
