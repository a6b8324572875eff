package rule

import (
	"reflect"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ava12/quickscan"
	"github.com/ava12/quickscan/cursor"
	"github.com/ava12/quickscan/policy"
)

// Set is an ordered list of alternative rules.
// Set may be used concurrently as long as it is not modified.
type Set[R any] struct {
	name   string
	rules  []*Rule[R]
	log    *logrus.Logger
	policy *policy.Policy
}

// NewSet creates a rule set.
func NewSet[R any](rules ...*Rule[R]) *Set[R] {
	return &Set[R]{rules: rules}
}

// Named sets rule set name used in logs.
func (s *Set[R]) Named(name string) *Set[R] {
	s.name = name
	return s
}

// WithLogger sets logger, logrus standard logger is used by default.
func (s *Set[R]) WithLogger(l *logrus.Logger) *Set[R] {
	s.log = l
	return s
}

// WithPolicy makes the set use p instead of the policy of given cursor.
func (s *Set[R]) WithPolicy(p policy.Policy) *Set[R] {
	p = p.Normalize()
	s.policy = &p
	return s
}

// Add appends rules.
func (s *Set[R]) Add(rules ...*Rule[R]) *Set[R] {
	s.rules = append(s.rules, rules...)
	return s
}

// Name returns rule set name.
func (s *Set[R]) Name() string {
	return s.name
}

// Rules returns rule list.
func (s *Set[R]) Rules() []*Rule[R] {
	return s.rules
}

// Policy returns policy override, if any.
func (s *Set[R]) Policy() (policy.Policy, bool) {
	if s.policy == nil {
		return policy.Default, false
	}
	return *s.policy, true
}

func (s *Set[R]) logger() *logrus.Logger {
	if s.log == nil {
		return logrus.StandardLogger()
	}
	return s.log
}

func ruleName[R any](r *Rule[R], i int) string {
	if r.label != "" {
		return r.label
	}
	return "#" + strconv.Itoa(i+1)
}

// Match tries rules in order starting at c and returns result of the first matching one
// along with cursor after the matched text.
// If no rule matches returns the error that got furthest into the text,
// if several errors have the same offset the earliest rule wins.
func (s *Set[R]) Match(c cursor.Cursor) (R, cursor.Cursor, error) {
	var (
		zero     R
		furthest *quickscan.ScanError
	)
	if s.policy != nil {
		c = c.WithPolicy(*s.policy)
	}
	log := s.logger()

	for i, r := range s.rules {
		res, next, e := r.Match(c)
		if e == nil {
			if log.IsLevelEnabled(logrus.DebugLevel) {
				log.WithFields(logrus.Fields{
					"set":    s.name,
					"rule":   ruleName(r, i),
					"offset": next.Offset(),
				}).Debug("rule matched")
			}
			return res, next, nil
		}

		se := quickscan.AsScanError(e)
		if log.IsLevelEnabled(logrus.TraceLevel) {
			log.WithFields(logrus.Fields{
				"set":    s.name,
				"rule":   ruleName(r, i),
				"offset": se.Offset,
				"kind":   se.Kind,
			}).Trace("rule failed")
		}
		furthest = quickscan.FurthestAlong(furthest, se)
	}

	if furthest == nil {
		furthest = quickscan.SyntaxError(c.Offset(), "no rules to match")
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		log.WithFields(logrus.Fields{
			"set":    s.name,
			"offset": furthest.Offset,
			"kind":   furthest.Kind,
		}).Debug("no rule matched")
	}
	return zero, c, furthest
}

// Scan matches whole input against the set.
func (s *Set[R]) Scan(input string) (R, error) {
	res, _, e := s.Match(cursor.New(input))
	return res, e
}

// Input is a type accepted by Scan.
type Input interface {
	~string | ~[]byte | cursor.Cursor
}

func toCursor[I Input](input I) cursor.Cursor {
	if c, is := any(input).(cursor.Cursor); is {
		return c
	}

	v := reflect.ValueOf(input)
	if v.Kind() == reflect.String {
		return cursor.New(v.String())
	}
	return cursor.New(string(v.Bytes()))
}

// Scan matches input against rules in order and returns result of the first matching rule.
// Failure is reported as *quickscan.ScanError.
func Scan[R any, I Input](input I, rules ...*Rule[R]) (R, error) {
	res, _, e := NewSet(rules...).Match(toCursor(input))
	return res, e
}

// MustScan is Scan panicking on error.
func MustScan[R any, I Input](input I, rules ...*Rule[R]) R {
	res, e := Scan(input, rules...)
	if e != nil {
		panic(e)
	}
	return res
}
