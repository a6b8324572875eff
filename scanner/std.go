package scanner

import (
	"net/netip"
	"regexp"
	"time"

	"github.com/ava12/quickscan"
)

var (
	durationRe = regexp.MustCompile(`^[+-]?(?:(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:ns|us|µs|μs|ms|s|m|h))+|^[+-]?0`)
	timeRe     = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}[Tt ][0-9]{2}:[0-9]{2}:[0-9]{2}(?:\.[0-9]+)?(?:[Zz]|[+-][0-9]{2}:[0-9]{2})`)
	ip4Re      = regexp.MustCompile(`^[0-9]{1,3}(?:\.[0-9]{1,3}){3}`)
	ip6Re      = regexp.MustCompile(`^[0-9A-Fa-f]{0,4}:[0-9A-Fa-f:.]*(?:%[0-9A-Za-z._-]+)?`)
	portRe     = regexp.MustCompile(`^:[0-9]{1,5}`)
)

func parsed[T any](re *regexp.Regexp, desc string, parse func(string) (T, error)) Scanner[T] {
	return Func[T](func(s string) (T, int, error) {
		var zero T
		text := re.FindString(s)
		if text == "" {
			return zero, 0, syntax(desc)
		}

		res, e := parse(text)
		if e != nil {
			return zero, 0, quickscan.WrapError(quickscan.Other, 0, e)
		}
		return res, len(text), nil
	})
}

// Duration scans time.Duration in the format produced by Duration.String.
var Duration = parsed(durationRe, "expected duration", time.ParseDuration)

// Time scans a timestamp in RFC 3339 format (fractional seconds allowed).
var Time = parsed(timeRe, "expected RFC 3339 timestamp", func(s string) (time.Time, error) {
	if s[10] != 'T' {
		s = s[:10] + "T" + s[11:]
	}
	if last := len(s) - 1; s[last] == 'z' {
		s = s[:last] + "Z"
	}
	return time.Parse(time.RFC3339Nano, s)
})

func scanAddr(s string) (netip.Addr, int, error) {
	text := ip4Re.FindString(s)
	if text == "" {
		text = ip6Re.FindString(s)
	}
	if text == "" {
		return netip.Addr{}, 0, syntax("expected IP address")
	}

	res, e := netip.ParseAddr(text)
	if e != nil {
		return netip.Addr{}, 0, quickscan.WrapError(quickscan.Other, 0, e)
	}
	return res, len(text), nil
}

// Addr scans IPv4 or IPv6 address, IPv6 may contain zone.
var Addr Scanner[netip.Addr] = Func[netip.Addr](scanAddr)

// AddrPort scans "ipv4:port" or "[ipv6]:port".
var AddrPort Scanner[netip.AddrPort] = Func[netip.AddrPort](func(s string) (netip.AddrPort, int, error) {
	var n int
	if s != "" && s[0] == '[' {
		_, an, e := scanAddr(s[1:])
		if e != nil {
			return netip.AddrPort{}, 0, quickscan.AsScanError(e).Shift(1)
		}
		n = an + 1
		if n >= len(s) || s[n] != ']' {
			return netip.AddrPort{}, 0, quickscan.SyntaxError(n, "expected `]`")
		}
		n++
	} else {
		text := ip4Re.FindString(s)
		if text == "" {
			return netip.AddrPort{}, 0, syntax("expected IP address and port")
		}
		n = len(text)
	}

	port := portRe.FindString(s[n:])
	if port == "" {
		return netip.AddrPort{}, 0, quickscan.SyntaxError(n, "expected port number")
	}
	n += len(port)

	res, e := netip.ParseAddrPort(s[:n])
	if e != nil {
		return netip.AddrPort{}, 0, quickscan.WrapError(quickscan.Other, 0, e)
	}
	return res, n, nil
})
