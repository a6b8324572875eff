package scanner

import (
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"
)

var (
	decimalRe  = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`)
	uuidRe     = regexp.MustCompile(`^(?:urn:uuid:|\{)?[0-9A-Fa-f]{8}-?[0-9A-Fa-f]{4}-?[0-9A-Fa-f]{4}-?[0-9A-Fa-f]{4}-?[0-9A-Fa-f]{12}\}?`)
	byteSizeRe = regexp.MustCompile(`^[0-9]+(?:\.[0-9]+)?(?: ?[KkMmGgTtPpEeZzYy]i?[Bb]?| ?[Bb](?:ytes?)?)?\b`)
)

// Decimal scans arbitrary precision decimal number.
var Decimal = parsed(decimalRe, "expected decimal number", decimal.NewFromString)

// UUID scans UUID in canonical, hex-only, URN, or braced form.
var UUID = parsed(uuidRe, "expected UUID", uuid.Parse)

// ByteSize scans human readable size like "42", "10 MB", or "1.5GiB" and returns the number of bytes.
var ByteSize = parsed(byteSizeRe, "expected byte size", humanize.ParseBytes)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Base58 scans a run of base58 (Bitcoin alphabet) characters and returns decoded bytes.
var Base58 Scanner[[]byte] = Func[[]byte](func(s string) ([]byte, int, error) {
	n := 0
	for n < len(s) && strings.IndexByte(base58Alphabet, s[n]) >= 0 {
		n++
	}
	if n == 0 {
		return nil, 0, syntax("expected base58 string")
	}

	res, e := base58.Decode(s[:n])
	if e != nil {
		return nil, 0, syntax("malformed base58 string")
	}
	return res, n, nil
})
