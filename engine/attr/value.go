package attr

import (
	"fmt"
	"strconv"

	e "github.com/tutumagi/scene/errors"
)

// Kind 属性值的类型
type Kind int8

// 支持的属性类型
const (
	Invalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	}
	return "invalid"
}

// Value 带类型标记的属性值
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

// Int value
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// Float value
func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// String value
func String(v string) Value {
	return Value{kind: KindString, s: v}
}

// Bool value
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// Kind of the value
func (v Value) Kind() Kind {
	return v.kind
}

// IsValid false for the zero Value
func (v Value) IsValid() bool {
	return v.kind != Invalid
}

func (v Value) mismatch(want Kind) error {
	return fmt.Errorf("want %s got %s: %w", want, v.kind, e.ErrTypeMismatch)
}

// AsInt 只有 int 类型才会成功，不做隐式转换
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, v.mismatch(KindInt)
	}
	return v.i, nil
}

// AsFloat imp.
func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, v.mismatch(KindFloat)
	}
	return v.f, nil
}

// AsString imp.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.s, nil
}

// AsBool imp.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.b, nil
}

// Interface returns the boxed go value, nil for Invalid
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBool:
		return v.b
	}
	return nil
}

// String 查询时使用的文本形式
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// Equal same kind and same payload
func (v Value) Equal(o Value) bool {
	return v == o
}
