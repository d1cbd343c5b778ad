package ipv4

import (
	"fmt"
)

// Addr is an IPv4 address held as a 32-bit unsigned integer.
type Addr uint32

func AddrFromOctets(a, b, c, d int) (Addr, error) {
	for _, o := range [4]int{a, b, c, d} {
		if o < 0 || o > 255 {
			return 0, fmt.Errorf("%w: octet out of range: %d (must be 0-255)", ErrMalformed, o)
		}
	}
	return Addr(uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d)), nil
}

func (a Addr) Octets() [4]byte {
	return [4]byte{byte(a >> 24), byte(a >> 16), byte(a >> 8), byte(a)}
}

func (a Addr) String() string {
	o := a.Octets()
	return fmt.Sprintf("%d.%d.%d.%d", o[0], o[1], o[2], o[3])
}
