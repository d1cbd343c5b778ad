package ipv4

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// ParseError reports the token that failed to parse. It unwraps to one of
// ErrMalformed, ErrUnderspecified or ErrOverspecified.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads a network in one of these forms:
//
//	10/8  172.16/16  192.168.0/24   shorthand, trailing zero octets omitted
//	10.0.0.1/32                     standard CIDR
//	10.0.0.0/255.0.0.0              dotted netmask or hostmask
//	10.0.0.1                        bare address, taken as /32
//
// A shorthand prefix may not be longer than the octets it was given, and no
// form may set bits beyond its prefix.
func Parse(s string) (Network, error) {
	s = strings.TrimSpace(s)
	n, err := parse(s)
	if err != nil {
		return Network{}, &ParseError{Input: s, Err: err}
	}
	return n, nil
}

func parse(s string) (Network, error) {
	addrPart, maskPart, hasMask := strings.Cut(s, "/")

	fields := strings.Split(addrPart, ".")
	if len(fields) > 4 {
		return Network{}, errNotSubnet
	}
	var octets [4]int
	for i, f := range fields {
		o, ok := decimal(f, 3)
		if !ok {
			return Network{}, errNotSubnet
		}
		octets[i] = o
	}
	base, err := AddrFromOctets(octets[0], octets[1], octets[2], octets[3])
	if err != nil {
		return Network{}, err
	}

	switch k := len(fields); {
	case !hasMask && k == 4:
		return NewNetwork(base, 32)
	case !hasMask:
		return Network{}, errNotSubnet
	case k == 4 && strings.Contains(maskPart, "."):
		mask, err := parseDottedMask(maskPart)
		if err != nil {
			return Network{}, err
		}
		return NewNetwork(base, mask)
	default:
		m, ok := decimal(maskPart, 2)
		if !ok {
			return Network{}, errNotSubnet
		}
		if m > 32 {
			return Network{}, fmt.Errorf("%w: mask length out of range: %d (must be 0-32)", ErrMalformed, m)
		}
		if m > 8*k {
			return Network{}, fmt.Errorf("%w: /%d exceeds the %d bits given by %d octet(s)", ErrUnderspecified, m, 8*k, k)
		}
		return NewNetwork(base, m)
	}
}

var errNotSubnet = fmt.Errorf("%w: must look like e.g. 192.0.2/24", ErrMalformed)

// decimal accepts 1 to maxDigits ASCII digits with no leading zero.
func decimal(s string, maxDigits int) (int, bool) {
	if s == "" || len(s) > maxDigits || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(s)
	return v, err == nil
}

func parseDottedMask(s string) (int, error) {
	fields := strings.Split(s, ".")
	if len(fields) != 4 {
		return 0, errNotSubnet
	}
	var o [4]int
	for i, f := range fields {
		v, ok := decimal(f, 3)
		if !ok {
			return 0, errNotSubnet
		}
		o[i] = v
	}
	m, err := AddrFromOctets(o[0], o[1], o[2], o[3])
	if err != nil {
		return 0, err
	}
	return maskLength(m)
}

// maskLength reads m as a netmask (255.255.0.0) first and as a hostmask
// (0.0.255.255) second.
func maskLength(m Addr) (int, error) {
	if h := ^uint32(m); h&(h+1) == 0 {
		return bits.OnesCount32(uint32(m)), nil
	}
	if h := uint32(m); h&(h+1) == 0 {
		return 32 - bits.OnesCount32(h), nil
	}
	return 0, fmt.Errorf("%w: non-contiguous mask: %s", ErrMalformed, m)
}
