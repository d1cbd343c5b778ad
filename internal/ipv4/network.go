package ipv4

import (
	"cmp"
	"errors"
	"fmt"
)

var (
	ErrMalformed      = errors.New("not an IPv4 subnet")
	ErrUnderspecified = errors.New("network bits are underspecified")
	ErrOverspecified  = errors.New("host bits set")
)

// Network is a CIDR block. The zero value is 0.0.0.0/0.
type Network struct {
	base Addr
	bits int
}

// NewNetwork builds base/bits. It fails rather than masking when base has
// bits set beyond the prefix.
func NewNetwork(base Addr, bits int) (Network, error) {
	if bits < 0 || bits > 32 {
		return Network{}, fmt.Errorf("%w: mask length out of range: %d (must be 0-32)", ErrMalformed, bits)
	}
	n := Network{base: base, bits: bits}
	if base&n.Hostmask() != 0 {
		return Network{}, fmt.Errorf("%w: %s/%d", ErrOverspecified, base, bits)
	}
	return n, nil
}

// MustNetwork is NewNetwork for literals known to be valid.
func MustNetwork(base Addr, bits int) Network {
	n, err := NewNetwork(base, bits)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Network) Base() Addr { return n.base }

func (n Network) Bits() int { return n.bits }

func (n Network) Hostmask() Addr {
	return Addr(uint32(0xffffffff) >> n.bits)
}

func (n Network) Netmask() Addr { return ^n.Hostmask() }

// Broadcast is the last address of the block.
func (n Network) Broadcast() Addr { return n.base | n.Hostmask() }

func (n Network) String() string {
	return fmt.Sprintf("%s/%d", n.base, n.bits)
}

// Contains reports whether o lies entirely within n.
func (n Network) Contains(o Network) bool {
	return n.base <= o.base && o.Broadcast() <= n.Broadcast()
}

func (n Network) Overlaps(o Network) bool {
	return n.base <= o.Broadcast() && o.base <= n.Broadcast()
}

// Supernet returns the enclosing block one bit shorter. There is none for /0.
func (n Network) Supernet() (Network, bool) {
	if n.bits == 0 {
		return Network{}, false
	}
	p := Network{bits: n.bits - 1}
	p.base = n.base & p.Netmask()
	return p, true
}

// Clamp shortens the prefix to at most maxBits, masking off the bits it drops.
func (n Network) Clamp(maxBits int) Network {
	if maxBits < 0 {
		maxBits = 0
	}
	if n.bits <= maxBits {
		return n
	}
	c := Network{bits: maxBits}
	c.base = n.base & c.Netmask()
	return c
}

func (n Network) Compare(o Network) int {
	if c := cmp.Compare(n.base, o.base); c != 0 {
		return c
	}
	return cmp.Compare(n.bits, o.bits)
}

// siblingOf reports whether n and hi tile their common parent with n as the
// lower half.
func (n Network) siblingOf(hi Network) bool {
	if n.bits != hi.bits || n.bits == 0 {
		return false
	}
	half := Addr(1) << (32 - n.bits)
	return n.base&half == 0 && n.base|half == hi.base
}
