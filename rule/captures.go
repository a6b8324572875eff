package rule

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// Discard is the capture name for values that are scanned but not stored.
// Empty name means the same.
const Discard = "_"

func discarded(name string) bool {
	return name == "" || name == Discard
}

// Captures is a record of named values captured by a rule.
// Names are kept in the order of their first appearance.
type Captures struct {
	names  []string
	values map[string]any
}

// NewCaptures creates empty record.
func NewCaptures() *Captures {
	return &Captures{values: make(map[string]any)}
}

// Put stores a value. Values with discarded names are dropped, repeated names overwrite values.
func (c *Captures) Put(name string, value any) {
	if discarded(name) {
		return
	}
	if _, found := c.values[name]; !found {
		c.names = append(c.names, name)
	}
	c.values[name] = value
}

// Get returns captured value.
func (c *Captures) Get(name string) (any, bool) {
	v, found := c.values[name]
	return v, found
}

// Has reports whether a value was captured under the name.
func (c *Captures) Has(name string) bool {
	_, found := c.values[name]
	return found
}

// Names returns capture names in order of appearance.
func (c *Captures) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of captured values.
func (c *Captures) Len() int {
	return len(c.names)
}

// Map returns a copy of captured values.
func (c *Captures) Map() map[string]any {
	res := make(map[string]any, len(c.values))
	for k, v := range c.values {
		res[k] = v
	}
	return res
}

// String returns captured value converted to string.
func (c *Captures) String(name string) (string, error) {
	v, found := c.values[name]
	if !found {
		return "", fmt.Errorf("no capture named %q", name)
	}
	return cast.ToStringE(v)
}

// Decode copies captured values to a struct (or map) pointed to by out.
// Fields are matched by name ignoring case or by `scan` tag, values are converted where possible.
func (c *Captures) Decode(out any) error {
	d, e := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "scan",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if e != nil {
		return e
	}
	return d.Decode(c.values)
}

// Get returns captured value of type T.
func Get[T any](c *Captures, name string) (T, error) {
	var zero T
	v, found := c.values[name]
	if !found {
		return zero, fmt.Errorf("no capture named %q", name)
	}

	res, valid := v.(T)
	if !valid {
		return zero, fmt.Errorf("capture %q is %T, not %v", name, v, reflect.TypeOf((*T)(nil)).Elem())
	}
	return res, nil
}

// MustGet is Get panicking on error.
func MustGet[T any](c *Captures, name string) T {
	res, e := Get[T](c, name)
	if e != nil {
		panic(e)
	}
	return res
}
