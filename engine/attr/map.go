package attr

import (
	"fmt"
	"sort"

	e "github.com/tutumagi/scene/errors"
)

// Map 字符串为 key 的属性集合
type Map map[string]Value

// NewMap ctor
func NewMap() Map {
	return Map{}
}

// Copy returns a shallow copy, values are immutable so this is a full copy
func (m Map) Copy() Map {
	r := make(Map, len(m))
	for k, v := range m {
		r[k] = v
	}
	return r
}

// Set value for key, an invalid value deletes the key
func (m Map) Set(key string, v Value) {
	if !v.IsValid() {
		delete(m, key)
		return
	}
	m[key] = v
}

// Get value and presence
func (m Map) Get(key string) (Value, bool) {
	v, ok := m[key]
	return v, ok
}

// Has key
func (m Map) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Del key
func (m Map) Del(key string) {
	delete(m, key)
}

// Keys sorted
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m Map) lookup(key string) (Value, error) {
	v, ok := m[key]
	if !ok {
		return Value{}, fmt.Errorf("%s: %w", key, e.ErrAttrNotFound)
	}
	return v, nil
}

// Int typed getter
func (m Map) Int(key string) (int64, error) {
	v, err := m.lookup(key)
	if err != nil {
		return 0, err
	}
	return v.AsInt()
}

// Float typed getter
func (m Map) Float(key string) (float64, error) {
	v, err := m.lookup(key)
	if err != nil {
		return 0, err
	}
	return v.AsFloat()
}

// Str typed getter
func (m Map) Str(key string) (string, error) {
	v, err := m.lookup(key)
	if err != nil {
		return "", err
	}
	return v.AsString()
}

// Bool typed getter
func (m Map) Bool(key string) (bool, error) {
	v, err := m.lookup(key)
	if err != nil {
		return false, err
	}
	return v.AsBool()
}

// Match 文本形式相等
func (m Map) Match(key string, text string) bool {
	v, ok := m[key]
	return ok && v.String() == text
}
