// Package grammar defines plain data description of a rule set.
// A description is produced by langdef package or decoded from JSON, YAML, or TOML file,
// and is compiled to a rule set by rule.Compile.
package grammar

type TermType string

const (
	LiteralTerm TermType = "literal"
	CaptureTerm TermType = "capture"
	RepeatTerm  TermType = "repeat"
	TailTerm    TermType = "tail"
	AnchorTerm  TermType = "anchor"
)

// DefaultScanner is the scanner name used for captures with no scanner.
const DefaultScanner = "string"

// Container names for repetitions:
const (
	ListContainer   = "list"
	SetContainer    = "set"
	MapContainer    = "map"
	SortedContainer = "sorted"
	JoinContainer   = "join"
	CountContainer  = "count"
)

// Arg is a scanner argument, exactly one field is set.
type Arg struct {
	Int     *int        `json:"int,omitempty" yaml:"int,omitempty" toml:"int,omitempty"`
	Str     *string     `json:"str,omitempty" yaml:"str,omitempty" toml:"str,omitempty"`
	Scanner *ScannerRef `json:"scanner,omitempty" yaml:"scanner,omitempty" toml:"scanner,omitempty"`
}

type ScannerRef struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Args []Arg  `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`
}

// Term describes a single pattern term. Fields used depend on Type:
//   - literal: Text;
//   - capture: Name, Scanner (DefaultScanner if nil);
//   - repeat: Min, Max (nil for no upper limit), Inner, Sep, Container, Text (separator for join container);
//   - tail, anchor: Name.
type Term struct {
	Type      TermType    `json:"type" yaml:"type" toml:"type"`
	Text      string      `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
	Name      string      `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Scanner   *ScannerRef `json:"scanner,omitempty" yaml:"scanner,omitempty" toml:"scanner,omitempty"`
	Min       int         `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
	Max       *int        `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty"`
	Inner     []Term      `json:"inner,omitempty" yaml:"inner,omitempty" toml:"inner,omitempty"`
	Sep       []Term      `json:"sep,omitempty" yaml:"sep,omitempty" toml:"sep,omitempty"`
	Container string      `json:"container,omitempty" yaml:"container,omitempty" toml:"container,omitempty"`
}

type Rule struct {
	Label string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Terms []Term `json:"terms" yaml:"terms" toml:"terms"`
}

// Policy contains policy names, see policy.Parse. Empty names mean defaults.
type Policy struct {
	Compare string `json:"compare,omitempty" yaml:"compare,omitempty" toml:"compare,omitempty"`
	Space   string `json:"space,omitempty" yaml:"space,omitempty" toml:"space,omitempty"`
	Words   string `json:"words,omitempty" yaml:"words,omitempty" toml:"words,omitempty"`
}

type Grammar struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Policy Policy `json:"policy,omitempty" yaml:"policy,omitempty" toml:"policy,omitempty"`
	Rules  []Rule `json:"rules" yaml:"rules" toml:"rules"`
}

func Lit(text string) Term {
	return Term{Type: LiteralTerm, Text: text}
}

func Capture(name string, sc *ScannerRef) Term {
	return Term{Type: CaptureTerm, Name: name, Scanner: sc}
}

// Repeat creates repetition term, negative max means no upper limit.
func Repeat(min, max int, inner ...Term) Term {
	t := Term{Type: RepeatTerm, Min: min, Inner: inner}
	if max >= 0 {
		t.Max = &max
	}
	return t
}

// SepBy returns a copy of repetition term with given separator.
func (t Term) SepBy(sep ...Term) Term {
	t.Sep = sep
	return t
}

// Collect returns a copy of repetition term with given container,
// text is the separator for join container and is ignored by others.
func (t Term) Collect(container, text string) Term {
	t.Container = container
	t.Text = text
	return t
}

func Tail(name string) Term {
	return Term{Type: TailTerm, Name: name}
}

func Anchor(name string) Term {
	return Term{Type: AnchorTerm, Name: name}
}

func Scanner(name string, args ...Arg) *ScannerRef {
	return &ScannerRef{Name: name, Args: args}
}

func IntArg(v int) Arg {
	return Arg{Int: &v}
}

func StrArg(v string) Arg {
	return Arg{Str: &v}
}

func ScannerArg(sc *ScannerRef) Arg {
	return Arg{Scanner: sc}
}
