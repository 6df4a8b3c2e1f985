package javadoc

// Ordered is a string-keyed map that remembers first insertion order.
// Re-putting an existing key replaces the value but keeps its position.
type Ordered[V any] struct {
	keys  []string
	items map[string]*V
}

// Put inserts or replaces the value stored under key.
func (o *Ordered[V]) Put(key string, v V) {
	if p, ok := o.items[key]; ok {
		*p = v
		return
	}
	if o.items == nil {
		o.items = make(map[string]*V)
	}
	o.keys = append(o.keys, key)
	o.items[key] = &v
}

// Get returns the value stored under key.
func (o *Ordered[V]) Get(key string) (*V, bool) {
	p, ok := o.items[key]
	return p, ok
}

// Len returns the number of keys.
func (o *Ordered[V]) Len() int {
	return len(o.keys)
}

// Keys returns the keys in first-seen order.
func (o *Ordered[V]) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Values returns pointers to the values in first-seen key order.
func (o *Ordered[V]) Values() []*V {
	out := make([]*V, 0, len(o.keys))
	for _, k := range o.keys {
		out = append(out, o.items[k])
	}
	return out
}

func (o *Ordered[V]) getOrPut(key string, mk func() V) *V {
	if p, ok := o.items[key]; ok {
		return p
	}
	o.Put(key, mk())
	return o.items[key]
}
