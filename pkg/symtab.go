package ember

import "reflect"

// SymbolTable maps keys to values in insertion order. A table may be chained
// to a parent scope; lookups never walk the chain, callers do that through
// Parent when they need to. The zero value is an empty root scope.
type SymbolTable[K comparable, V any] struct {
	parent  *SymbolTable[K, V]
	entries map[K]V
	order   []K
}

// NewSymbolTable creates an empty root scope.
func NewSymbolTable[K comparable, V any]() *SymbolTable[K, V] {
	return NewChildSymbolTable[K, V](nil)
}

// NewChildSymbolTable creates an empty scope enclosed by parent. The child
// never mutates its parent.
func NewChildSymbolTable[K comparable, V any](parent *SymbolTable[K, V]) *SymbolTable[K, V] {
	return &SymbolTable[K, V]{
		parent:  parent,
		entries: make(map[K]V),
	}
}

func (t *SymbolTable[K, V]) Parent() *SymbolTable[K, V] {
	return t.parent
}

func (t *SymbolTable[K, V]) IsRoot() bool {
	return t.parent == nil
}

func (t *SymbolTable[K, V]) Len() int {
	return len(t.order)
}

// Add inserts a new key. Keys are unique within one table.
func (t *SymbolTable[K, V]) Add(key K, value V) error {
	if _, ok := t.entries[key]; ok {
		return &DuplicateKeyError{Key: key}
	}

	t.init()
	t.entries[key] = value
	t.order = append(t.order, key)
	return nil
}

// Get returns the value stored locally under key.
func (t *SymbolTable[K, V]) Get(key K) (V, error) {
	v, ok := t.entries[key]
	if !ok {
		return v, &KeyNotFoundError{Key: key}
	}

	return v, nil
}

// Set inserts or overwrites. An overwritten key keeps its position.
func (t *SymbolTable[K, V]) Set(key K, value V) {
	if _, ok := t.entries[key]; !ok {
		t.order = append(t.order, key)
	}

	t.init()
	t.entries[key] = value
}

func (t *SymbolTable[K, V]) init() {
	if t.entries == nil {
		t.entries = make(map[K]V)
	}
}

func (t *SymbolTable[K, V]) TryGetValue(key K) (V, bool) {
	v, ok := t.entries[key]
	return v, ok
}

func (t *SymbolTable[K, V]) ContainsKey(key K) bool {
	_, ok := t.entries[key]
	return ok
}

// TryGetValueLocal looks key up in this scope only.
func (t *SymbolTable[K, V]) TryGetValueLocal(key K) (V, bool, error) {
	var zero V
	if isNilKey(key) {
		return zero, false, &NullKeyError{}
	}

	v, ok := t.entries[key]
	return v, ok, nil
}

// ContainsKeyLocal reports whether key is bound in this scope only.
func (t *SymbolTable[K, V]) ContainsKeyLocal(key K) (bool, error) {
	if isNilKey(key) {
		return false, &NullKeyError{}
	}

	_, ok := t.entries[key]
	return ok, nil
}

func (t *SymbolTable[K, V]) Remove(key K) bool {
	if _, ok := t.entries[key]; !ok {
		return false
	}

	delete(t.entries, key)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}

	return true
}

func (t *SymbolTable[K, V]) Clear() {
	t.entries = make(map[K]V)
	t.order = nil
}

func (t *SymbolTable[K, V]) Keys() []K {
	keys := make([]K, len(t.order))
	copy(keys, t.order)

	return keys
}

func (t *SymbolTable[K, V]) Values() []V {
	values := make([]V, 0, len(t.order))
	for _, k := range t.order {
		values = append(values, t.entries[k])
	}

	return values
}

// Range calls fn for each entry in insertion order until fn returns false.
func (t *SymbolTable[K, V]) Range(fn func(key K, value V) bool) {
	for _, k := range t.order {
		if !fn(k, t.entries[k]) {
			return
		}
	}
}

func isNilKey(key interface{}) bool {
	if key == nil {
		return true
	}

	switch v := reflect.ValueOf(key); v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return v.IsNil()
	}

	return false
}
