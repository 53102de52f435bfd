package query

import (
	"encoding/json"

	"github.com/soralog/soralog/pkg/field"
	"github.com/soralog/soralog/pkg/record"
)

// OtherKey collects records that ran out of keys under a branch that other
// records had split further.
const OtherKey = "__OTHER__"

// Counter is a tree of counts keyed by field renderings. A leaf is a count;
// a branch maps each rendering to a subtree. It encodes as a bare number or
// as a nested object.
type Counter struct {
	count    int
	children map[string]*Counter
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{}
}

// Add counts r under the renderings of names, one level per name. A name r
// does not have is skipped without adding a level.
func (c *Counter) Add(r record.Record, names []field.Name) {
	node := c
	for _, name := range names {
		v, ok := r.Field(name)
		if !ok {
			continue
		}
		node = node.child(v.String())
	}
	node.increment()
}

func (c *Counter) increment() {
	if c.children == nil {
		c.count++
		return
	}
	c.child(OtherKey).increment()
}

func (c *Counter) child(key string) *Counter {
	if c.children == nil {
		c.children = make(map[string]*Counter)
		// Keep what was already counted here.
		if c.count > 0 {
			c.children[OtherKey] = &Counter{count: c.count}
			c.count = 0
		}
	}
	child, ok := c.children[key]
	if !ok {
		child = &Counter{}
		c.children[key] = child
	}
	return child
}

// Count returns the total number of records counted in the tree.
func (c *Counter) Count() int {
	if c.children == nil {
		return c.count
	}
	total := 0
	for _, child := range c.children {
		total += child.Count()
	}
	return total
}

// Children returns the subtrees of a branch, or nil for a leaf.
func (c *Counter) Children() map[string]*Counter {
	return c.children
}

func (c *Counter) value() any {
	if c.children == nil {
		return c.count
	}
	return c.children
}

// MarshalJSON encodes a leaf as a number and a branch as an object with
// sorted keys.
func (c *Counter) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value())
}

// MarshalYAML mirrors MarshalJSON for yaml.v3.
func (c *Counter) MarshalYAML() (any, error) {
	return c.value(), nil
}
