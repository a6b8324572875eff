package main

import (
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	"github.com/tidwall/btree"
	"gopkg.in/yaml.v3"

	"github.com/ava12/quickscan/cursor"
	"github.com/ava12/quickscan/rule"
)

// Plain converts a captured value to a value made of strings, numbers, booleans, slices, and string-keyed maps.
// Anchors are converted to offsets, key-value pairs to {key, value} maps, sets to sorted lists.
func Plain(v any) any {
	switch x := v.(type) {
	case nil, bool, string, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return x
	case cursor.Cursor:
		return x.Offset()
	case rule.Pairer:
		key, val := x.PairValues()
		return map[string]any{"key": Plain(key), "value": Plain(val)}
	case *btree.Map[string, any]:
		res := make(map[string]any, x.Len())
		x.Scan(func(key string, val any) bool {
			res[key] = Plain(val)
			return true
		})
		return res
	case map[any]struct{}:
		res := make([]string, 0, len(x))
		for key := range x {
			res = append(res, cast.ToString(Plain(key)))
		}
		sort.Strings(res)
		return res
	case map[any]any:
		res := make(map[string]any, len(x))
		for key, val := range x {
			res[cast.ToString(Plain(key))] = Plain(val)
		}
		return res
	case encoding.TextMarshaler:
		text, e := x.MarshalText()
		if e != nil {
			return fmt.Sprint(v)
		}
		return string(text)
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		res := make([]any, rv.Len())
		for i := range res {
			res[i] = Plain(rv.Index(i).Interface())
		}
		return res
	case reflect.Map:
		res := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			res[cast.ToString(Plain(iter.Key().Interface()))] = Plain(iter.Value().Interface())
		}
		return res
	default:
		return v
	}
}

// Record converts captured values to plain map, see Plain.
func Record(caps *rule.Captures) map[string]any {
	res := make(map[string]any, caps.Len())
	for _, name := range caps.Names() {
		v, _ := caps.Get(name)
		res[name] = Plain(v)
	}
	return res
}

// RecordWriter writes captured values in one of the output formats.
// Flush must be called after the last record.
type RecordWriter interface {
	Write(caps *rule.Captures) error
	Flush() error
}

func NewRecordWriter(format string, w io.Writer) RecordWriter {
	switch format {
	case JsonOutput:
		return jsonWriter{json.NewEncoder(w)}
	case YamlOutput:
		return &yamlWriter{w: w}
	case TomlOutput:
		return &tomlWriter{w: w}
	default:
		return textWriter{w}
	}
}

type textWriter struct {
	w io.Writer
}

func (tw textWriter) Write(caps *rule.Captures) error {
	names := caps.Names()
	parts := make([]string, len(names))
	for i, name := range names {
		v, _ := caps.Get(name)
		s, e := cast.ToStringE(Plain(v))
		if e != nil {
			s = fmt.Sprint(Plain(v))
		}
		parts[i] = name + "=" + s
	}
	_, e := fmt.Fprintln(tw.w, strings.Join(parts, " "))
	return e
}

func (textWriter) Flush() error {
	return nil
}

type jsonWriter struct {
	enc *json.Encoder
}

func (jw jsonWriter) Write(caps *rule.Captures) error {
	return jw.enc.Encode(Record(caps))
}

func (jsonWriter) Flush() error {
	return nil
}

// yamlWriter writes every record as a separate document.
type yamlWriter struct {
	w     io.Writer
	count int
}

func (yw *yamlWriter) Write(caps *rule.Captures) error {
	data, e := yaml.Marshal(Record(caps))
	if e != nil {
		return e
	}
	if yw.count > 0 {
		data = append([]byte("---\n"), data...)
	}
	yw.count++
	_, e = yw.w.Write(data)
	return e
}

func (*yamlWriter) Flush() error {
	return nil
}

// tomlWriter collects records and writes them as "records" array of tables.
type tomlWriter struct {
	w       io.Writer
	records []map[string]any
}

func (tw *tomlWriter) Write(caps *rule.Captures) error {
	tw.records = append(tw.records, Record(caps))
	return nil
}

func (tw *tomlWriter) Flush() error {
	if len(tw.records) == 0 {
		return nil
	}
	return toml.NewEncoder(tw.w).Encode(map[string]any{"records": tw.records})
}

// WriteValue writes a single value in given format, text format uses fmt.Stringer if v implements it.
func WriteValue(w io.Writer, format string, v any) error {
	var (
		data []byte
		e    error
	)
	switch format {
	case JsonOutput:
		data, e = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	case YamlOutput:
		data, e = yaml.Marshal(v)
	case TomlOutput:
		data, e = toml.Marshal(v)
	default:
		data = []byte(fmt.Sprintln(v))
	}
	if e == nil {
		_, e = w.Write(data)
	}
	return e
}
