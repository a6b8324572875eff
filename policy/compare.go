package policy

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	// Exact compares words byte by byte.
	Exact Compare = exactCompare{}

	// IgnoreASCIICase ignores case of ASCII letters only.
	IgnoreASCIICase Compare = asciiCaseCompare{}

	// IgnoreCase compares words after Unicode full case folding.
	IgnoreCase Compare = foldCompare{}

	// Normalized compares words after canonical decomposition (NFD).
	Normalized Compare = normCompare{}

	// IgnoreCaseNormalized compares words after both case folding and canonical decomposition.
	IgnoreCaseNormalized Compare = foldNormCompare{}
)

type exactCompare struct{}

func (exactCompare) Compare(a, b string) bool {
	return a == b
}

func (exactCompare) String() string {
	return "exact"
}

type asciiCaseCompare struct{}

func (asciiCaseCompare) Compare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca != cb && lowerASCII(ca) != lowerASCII(cb) {
			return false
		}
	}
	return true
}

func (asciiCaseCompare) String() string {
	return "ignore-ascii-case"
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

type foldCompare struct{}

// cases.Caser keeps state, so a fresh one is created for each comparison.
func (foldCompare) Compare(a, b string) bool {
	if a == b {
		return true
	}
	f := cases.Fold()
	return f.String(a) == f.String(b)
}

func (foldCompare) String() string {
	return "ignore-case"
}

type normCompare struct{}

func (normCompare) Compare(a, b string) bool {
	return a == b || norm.NFD.String(a) == norm.NFD.String(b)
}

func (normCompare) String() string {
	return "normalized"
}

type foldNormCompare struct{}

func (foldNormCompare) Compare(a, b string) bool {
	if a == b {
		return true
	}
	f := cases.Fold()
	return norm.NFD.String(f.String(norm.NFD.String(a))) == norm.NFD.String(f.String(norm.NFD.String(b)))
}

func (foldNormCompare) String() string {
	return "ignore-case-normalized"
}
