package chunkdb

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/IMvampireXD/MCBE-Storage-Database/lib/substrate"
)

// --------------------------------------------------------------------------
// Kind
// --------------------------------------------------------------------------

// Kind identifies which shape a Value holds. The kind is fixed when the
// Value is constructed, so the store never has to sniff shapes at read time.
type Kind uint8

const (
	KindAbsent     Kind = iota // no value (the delete-by-write sentinel)
	KindScalar                 // a bare number
	KindFlag                   // a boolean
	KindText                   // a string
	KindVector                 // the substrate's native 3-component record
	KindStructured             // any JSON-serializable composite
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "Absent"
	case KindScalar:
		return "Scalar"
	case KindFlag:
		return "Flag"
	case KindText:
		return "Text"
	case KindVector:
		return "Vector"
	case KindStructured:
		return "Structured"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Value
// --------------------------------------------------------------------------

// Value is the tagged logical value type of the store. Exactly one of the
// payload fields is meaningful, selected by kind.
type Value struct {
	kind Kind
	num  float64
	flag bool
	text string
	vec  substrate.Vector
	obj  any
}

// Absent returns the sentinel value representing "no value". Writing it to a
// key is equivalent to deleting the key.
func Absent() Value { return Value{kind: KindAbsent} }

// NewScalar creates a numeric Value.
func NewScalar(v float64) Value { return Value{kind: KindScalar, num: v} }

// NewFlag creates a boolean Value.
func NewFlag(v bool) Value { return Value{kind: KindFlag, flag: v} }

// NewText creates a string Value.
func NewText(v string) Value { return Value{kind: KindText, text: v} }

// NewVector creates a Value holding the substrate's native vector record.
func NewVector(x, y, z float64) Value {
	return Value{kind: KindVector, vec: substrate.Vector{X: x, Y: y, Z: z}}
}

// NewStructured creates a Value holding an arbitrary JSON-serializable
// composite. The composite is stored in its canonical JSON form; whether it
// actually serializes is only checked when the Value is written.
func NewStructured(v any) Value { return Value{kind: KindStructured, obj: v} }

// Kind returns the value's kind tag.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the value is the absence sentinel.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Float returns the numeric payload. Zero for non-scalar values.
func (v Value) Float() float64 { return v.num }

// Bool returns the boolean payload. False for non-flag values.
func (v Value) Bool() bool { return v.flag }

// Text returns the string payload. Empty for non-text values.
func (v Value) Text() string { return v.text }

// Vector returns the vector payload. Zero for non-vector values.
func (v Value) Vector() substrate.Vector { return v.vec }

// Any returns the value's dynamic representation: float64, bool, string,
// substrate.Vector, the structured payload as stored, or nil for Absent.
func (v Value) Any() any {
	switch v.kind {
	case KindScalar:
		return v.num
	case KindFlag:
		return v.flag
	case KindText:
		return v.text
	case KindVector:
		return v.vec
	case KindStructured:
		return v.obj
	default:
		return nil
	}
}

// Equal reports whether two values have the same kind and a structurally
// equal payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	if v.kind == KindStructured {
		return reflect.DeepEqual(v.obj, other.obj)
	}
	return v == other
}

func (v Value) String() string {
	return fmt.Sprintf("%s(%v)", v.kind, v.Any())
}

// --------------------------------------------------------------------------
// Dynamic Construction
// --------------------------------------------------------------------------

// From classifies a dynamic Go value into a Value. Numbers of any built-in
// numeric type become scalars, bool a flag, string text, a substrate.Vector
// (or a map with exactly the numeric fields x, y and z) a vector, nil the
// absence sentinel, and everything else a structured value.
func From(v any) Value {
	switch t := v.(type) {
	case nil:
		return Absent()
	case Value:
		return t
	case float64:
		return NewScalar(t)
	case float32:
		return NewScalar(float64(t))
	case int:
		return NewScalar(float64(t))
	case int8:
		return NewScalar(float64(t))
	case int16:
		return NewScalar(float64(t))
	case int32:
		return NewScalar(float64(t))
	case int64:
		return NewScalar(float64(t))
	case uint:
		return NewScalar(float64(t))
	case uint8:
		return NewScalar(float64(t))
	case uint16:
		return NewScalar(float64(t))
	case uint32:
		return NewScalar(float64(t))
	case uint64:
		return NewScalar(float64(t))
	case bool:
		return NewFlag(t)
	case string:
		return NewText(t)
	case substrate.Vector:
		return Value{kind: KindVector, vec: t}
	case map[string]any:
		if vec, ok := asVector(t); ok {
			return Value{kind: KindVector, vec: vec}
		}
		return NewStructured(t)
	default:
		return NewStructured(v)
	}
}

// asVector checks whether m has exactly the three numeric fields x, y and z
// and no others.
func asVector(m map[string]any) (substrate.Vector, bool) {
	if len(m) != 3 {
		return substrate.Vector{}, false
	}
	var vec substrate.Vector
	for field, dst := range map[string]*float64{"x": &vec.X, "y": &vec.Y, "z": &vec.Z} {
		raw, ok := m[field]
		if !ok {
			return substrate.Vector{}, false
		}
		f, ok := raw.(float64)
		if !ok {
			return substrate.Vector{}, false
		}
		*dst = f
	}
	return vec, true
}

// --------------------------------------------------------------------------
// Encoding Helpers
// --------------------------------------------------------------------------

// payload returns the text payload to persist for text-class values. The
// boolean return value reports whether the value is text-class at all
// (text or structured); other kinds use the substrate's native forms.
func (v Value) payload() (string, bool, error) {
	switch v.kind {
	case KindText:
		return v.text, true, nil
	case KindStructured:
		b, err := json.Marshal(v.obj)
		if err != nil {
			return "", true, NewError(RetCInternalError, fmt.Sprintf("serializing value: %v", err))
		}
		return string(b), true, nil
	default:
		return "", false, nil
	}
}

// native returns the substrate representation of a non-text-class value.
func (v Value) native() any {
	switch v.kind {
	case KindScalar:
		return v.num
	case KindFlag:
		return v.flag
	case KindVector:
		return v.vec
	default:
		return nil
	}
}

// fromNative wraps a raw substrate value read from a NATIVE entry.
func fromNative(raw any) Value {
	switch t := raw.(type) {
	case float64:
		return NewScalar(t)
	case bool:
		return NewFlag(t)
	case substrate.Vector:
		return Value{kind: KindVector, vec: t}
	case string:
		// not produced by this package, but tolerated for foreign entries
		return NewText(t)
	default:
		return NewStructured(raw)
	}
}

// decodeText turns a persisted text payload back into a Value. Non-empty
// payloads are parsed as canonical JSON; payloads that fail to parse are
// returned verbatim as text, so plain legacy strings stay retrievable.
func decodeText(payload string) Value {
	if payload == "" {
		return NewText("")
	}

	var decoded any
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return NewText(payload)
	}

	switch t := decoded.(type) {
	case float64:
		return NewScalar(t)
	case bool:
		return NewFlag(t)
	case string:
		return NewText(t)
	default:
		return NewStructured(decoded)
	}
}
