package scanner

import (
	"fmt"
	"regexp"
	"sort"
)

// ArgKind is the kind of scanner factory argument.
type ArgKind int

const (
	IntArg ArgKind = iota
	StringArg
	ScannerArg
)

func (k ArgKind) String() string {
	switch k {
	case IntArg:
		return "integer"
	case StringArg:
		return "string"
	default:
		return "scanner"
	}
}

// Arg is scanner factory argument, only the field matching Kind is meaningful.
type Arg struct {
	Kind    ArgKind
	Int     int
	Str     string
	Scanner Scanner[any]
}

// Factory creates a scanner from arguments.
type Factory func(args []Arg) (Scanner[any], error)

// Registry maps scanner names to factories, it is used to build scanners named in pattern descriptions.
// Registry is not safe for concurrent modification, but concurrent Build calls are fine.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds or replaces a factory.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, found := r.factories[name]
	return found
}

// Names returns sorted list of registered names.
func (r *Registry) Names() []string {
	res := make([]string, 0, len(r.factories))
	for name := range r.factories {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Build creates scanner by name.
func (r *Registry) Build(name string, args []Arg) (Scanner[any], error) {
	f, found := r.factories[name]
	if !found {
		return nil, fmt.Errorf("unknown scanner %q", name)
	}

	sc, e := f(args)
	if e != nil {
		return nil, fmt.Errorf("scanner %s: %w", name, e)
	}
	return sc, nil
}

// Register adds argument-less factory returning sc.
func Register[T any](r *Registry, name string, sc Scanner[T]) {
	erased := Erase(sc)
	r.Register(name, func(args []Arg) (Scanner[any], error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("expecting no arguments, got %d", len(args))
		}
		return erased, nil
	})
}

func checkArgs(args []Arg, kinds ...ArgKind) error {
	if len(args) != len(kinds) {
		return fmt.Errorf("expecting %d arguments, got %d", len(kinds), len(args))
	}
	for i, a := range args {
		if a.Kind != kinds[i] {
			return fmt.Errorf("argument #%d must be %s, got %s", i+1, kinds[i], a.Kind)
		}
	}
	return nil
}

func widthFactory(wrap func(int, Scanner[any]) Scanner[any]) Factory {
	return func(args []Arg) (Scanner[any], error) {
		if e := checkArgs(args, IntArg, ScannerArg); e != nil {
			return nil, e
		}
		if args[0].Int < 0 {
			return nil, fmt.Errorf("negative width %d", args[0].Int)
		}
		return wrap(args[0].Int, args[1].Scanner), nil
	}
}

func regexpFactory(args []Arg) (Scanner[any], error) {
	var inner Scanner[any] = Erase(Everything)
	var e error
	if len(args) == 2 {
		e = checkArgs(args, StringArg, ScannerArg)
		inner = args[1].Scanner
	} else {
		e = checkArgs(args, StringArg)
	}
	if e != nil {
		return nil, e
	}

	re, e := regexp.Compile(args[0].Str)
	if e != nil {
		return nil, e
	}
	return Regexp(re, inner), nil
}

func pairFactory(build func(a, b Scanner[any]) Scanner[Pair[any, any]]) Factory {
	return func(args []Arg) (Scanner[any], error) {
		if e := checkArgs(args, ScannerArg, ScannerArg); e != nil {
			return nil, e
		}
		return Erase(build(args[0].Scanner, args[1].Scanner)), nil
	}
}

// DefaultRegistry returns new registry containing all standard scanners.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	Register(r, "int", Int[int]())
	Register(r, "i8", Int[int8]())
	Register(r, "i16", Int[int16]())
	Register(r, "i32", Int[int32]())
	Register(r, "i64", Int[int64]())
	Register(r, "uint", Int[uint]())
	Register(r, "u8", Int[uint8]())
	Register(r, "u16", Int[uint16]())
	Register(r, "u32", Int[uint32]())
	Register(r, "u64", Int[uint64]())
	Register(r, "f32", FloatOf[float32]())
	Register(r, "f64", FloatOf[float64]())
	Register(r, "hex", Hex[int64]())
	Register(r, "oct", Octal[int64]())
	Register(r, "bin", Binary[int64]())
	Register(r, "bool", Bool)
	Register(r, "char", Rune)

	Register(r, "string", Wordish)
	Register(r, "word", Word)
	Register(r, "wordish", Wordish)
	Register(r, "ident", Ident)
	Register(r, "line", Line)
	Register(r, "nonspace", NonSpace)
	Register(r, "number", Number)
	Register(r, "space", Space)
	Register(r, "horspace", HorSpace)
	Register(r, "newline", Newline)
	Register(r, "everything", Everything)
	Register(r, "quoted", QuotedString)

	Register(r, "duration", Duration)
	Register(r, "time", Time)
	Register(r, "ip", Addr)
	Register(r, "addrport", AddrPort)
	Register(r, "decimal", Decimal)
	Register(r, "uuid", UUID)
	Register(r, "bytesize", ByteSize)
	Register(r, "base58", Base58)

	r.Register("exact", widthFactory(ExactWidth[any]))
	r.Register("max", widthFactory(MaxWidth[any]))
	r.Register("min", widthFactory(MinWidth[any]))
	r.Register("re", regexpFactory)
	r.Register("upto", func(args []Arg) (Scanner[any], error) {
		if e := checkArgs(args, StringArg, ScannerArg); e != nil {
			return nil, e
		}
		if args[0].Str == "" {
			return nil, fmt.Errorf("empty delimiter")
		}
		return UpTo(args[0].Str, args[1].Scanner), nil
	})
	r.Register("kv", pairFactory(KeyValue[any, any]))
	r.Register("tuple", pairFactory(Tuple2[any, any]))
	r.Register("list", func(args []Arg) (Scanner[any], error) {
		if e := checkArgs(args, ScannerArg); e != nil {
			return nil, e
		}
		return Erase(List(args[0].Scanner)), nil
	})
	return r
}
