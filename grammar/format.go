package grammar

import (
	"strconv"
	"strings"
)

// String returns pattern language description of the grammar, see langdef package.
// Policy and name are not included.
func (g *Grammar) String() string {
	rules := make([]string, len(g.Rules))
	for i, r := range g.Rules {
		rules[i] = r.String()
	}
	return strings.Join(rules, ";\n")
}

func (r Rule) String() string {
	res := formatTerms(r.Terms)
	if r.Label != "" {
		res = "@" + r.Label + " " + res
	}
	return res
}

func formatTerms(terms []Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

func (t Term) String() string {
	switch t.Type {
	case LiteralTerm:
		return strconv.Quote(t.Text)
	case CaptureTerm:
		if t.Scanner == nil {
			return "let " + t.Name
		}
		return "let " + t.Name + ": " + t.Scanner.String()
	case RepeatTerm:
		return t.formatRepeat()
	case TailTerm:
		return ".." + t.Name
	case AnchorTerm:
		return "^.." + t.Name
	default:
		return "<" + string(t.Type) + ">"
	}
}

func (t Term) formatRepeat() string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(formatTerms(t.Inner))
	sb.WriteByte(']')

	if len(t.Sep) == 1 && t.Sep[0].Type == LiteralTerm && t.Sep[0].Text == "," {
		sb.WriteByte(',')
	} else if len(t.Sep) > 0 {
		sb.WriteString(" (")
		sb.WriteString(formatTerms(t.Sep))
		sb.WriteByte(')')
	}

	sb.WriteString(FormatBound(t.Min, t.Max))
	if t.Container != "" {
		sb.WriteString(": ")
		sb.WriteString(t.Container)
		if t.Container == JoinContainer && t.Text != "" {
			sb.WriteString("(" + strconv.Quote(t.Text) + ")")
		}
	}
	return sb.String()
}

// FormatBound returns repetition quantifier, nil max means no upper limit.
func FormatBound(min int, max *int) string {
	switch {
	case max == nil && min == 0:
		return "*"
	case max == nil && min == 1:
		return "+"
	case max == nil:
		return "{" + strconv.Itoa(min) + ",}"
	case min == 0 && *max == 1:
		return "?"
	case min == *max:
		return "{" + strconv.Itoa(min) + "}"
	default:
		return "{" + strconv.Itoa(min) + "," + strconv.Itoa(*max) + "}"
	}
}

func (sr *ScannerRef) String() string {
	if len(sr.Args) == 0 {
		return sr.Name
	}

	args := make([]string, len(sr.Args))
	for i, a := range sr.Args {
		args[i] = a.String()
	}
	return sr.Name + "(" + strings.Join(args, ", ") + ")"
}

func (a Arg) String() string {
	switch {
	case a.Int != nil:
		return strconv.Itoa(*a.Int)
	case a.Str != nil:
		return strconv.Quote(*a.Str)
	case a.Scanner != nil:
		return a.Scanner.String()
	default:
		return "<nil>"
	}
}
