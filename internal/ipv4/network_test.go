package ipv4

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Network {
	t.Helper()
	n, err := Parse(s)
	require.NoError(t, err, "parse %s", s)
	return n
}

func TestAddrFromOctets(t *testing.T) {
	tests := []struct {
		octets [4]int
		want   Addr
	}{
		{[4]int{0, 0, 0, 0}, 0x00000000},
		{[4]int{0, 0, 0, 1}, 0x00000001},
		{[4]int{128, 0, 0, 0}, 0x80000000},
		{[4]int{255, 255, 255, 254}, 0xfffffffe},
		{[4]int{255, 255, 255, 255}, 0xffffffff},
	}
	for _, tt := range tests {
		got, err := AddrFromOctets(tt.octets[0], tt.octets[1], tt.octets[2], tt.octets[3])
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, [4]byte{byte(tt.octets[0]), byte(tt.octets[1]), byte(tt.octets[2]), byte(tt.octets[3])}, got.Octets())
	}

	_, err := AddrFromOctets(256, 0, 0, 0)
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = AddrFromOctets(0, 0, 0, -1)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestAddr_String(t *testing.T) {
	assert.Equal(t, "0.0.0.0", Addr(0).String())
	assert.Equal(t, "192.168.1.1", Addr(0xc0a80101).String())
	assert.Equal(t, "255.255.255.255", Addr(0xffffffff).String())
}

func TestNewNetwork(t *testing.T) {
	n, err := NewNetwork(0x0a000000, 8)
	require.NoError(t, err)
	assert.Equal(t, Addr(0x0a000000), n.Base())
	assert.Equal(t, 8, n.Bits())
	assert.Equal(t, "10.0.0.0/8", n.String())

	_, err = NewNetwork(0x0a000001, 8)
	assert.True(t, errors.Is(err, ErrOverspecified), "got %v", err)

	_, err = NewNetwork(0, 33)
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = NewNetwork(0, -1)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestNetwork_Masks(t *testing.T) {
	tests := []struct {
		bits     int
		hostmask Addr
		netmask  Addr
	}{
		{0, 0xffffffff, 0x00000000},
		{16, 0x0000ffff, 0xffff0000},
		{32, 0x00000000, 0xffffffff},
	}
	for _, tt := range tests {
		n := MustNetwork(0, tt.bits)
		assert.Equal(t, tt.hostmask, n.Hostmask(), "/%d hostmask", tt.bits)
		assert.Equal(t, tt.netmask, n.Netmask(), "/%d netmask", tt.bits)
	}
}

func TestNetwork_Broadcast(t *testing.T) {
	tests := []struct {
		net  Network
		want Addr
	}{
		{MustNetwork(0x00000000, 0), 0xffffffff},
		{MustNetwork(0x0a000000, 8), 0x0affffff},
		{MustNetwork(0xac110000, 16), 0xac11ffff},
		{MustNetwork(0xc0a80100, 24), 0xc0a801ff},
		{MustNetwork(0xc0a80101, 32), 0xc0a80101},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.net.Broadcast(), tt.net.String())
	}
}

func TestNetwork_ContainsOverlaps(t *testing.T) {
	all := mustParse(t, "0/0")
	ten := mustParse(t, "10/8")
	tenOne := mustParse(t, "10.1/16")
	eleven := mustParse(t, "11/8")

	assert.True(t, all.Contains(ten))
	assert.True(t, ten.Contains(tenOne))
	assert.True(t, ten.Contains(ten))
	assert.False(t, tenOne.Contains(ten))
	assert.False(t, ten.Contains(eleven))

	assert.True(t, tenOne.Overlaps(ten))
	assert.True(t, ten.Overlaps(tenOne))
	assert.False(t, ten.Overlaps(eleven))
}

func TestNetwork_Supernet(t *testing.T) {
	p, ok := mustParse(t, "192.168.0.128/25").Supernet()
	require.True(t, ok)
	assert.Equal(t, "192.168.0.0/24", p.String())

	p, ok = mustParse(t, "128/1").Supernet()
	require.True(t, ok)
	assert.Equal(t, "0.0.0.0/0", p.String())

	_, ok = mustParse(t, "0/0").Supernet()
	assert.False(t, ok)
}

func TestNetwork_Clamp(t *testing.T) {
	assert.Equal(t, "10.0.0.0/8", mustParse(t, "10.1.2.3/32").Clamp(8).String())
	assert.Equal(t, "10.1.2.0/24", mustParse(t, "10.1.2/24").Clamp(30).String())
	assert.Equal(t, "0.0.0.0/0", mustParse(t, "192.168.1.1").Clamp(0).String())
}

func TestNetwork_siblingOf(t *testing.T) {
	lo := mustParse(t, "192.168.0.0/25")
	hi := mustParse(t, "192.168.0.128/25")
	assert.True(t, lo.siblingOf(hi))
	assert.False(t, hi.siblingOf(lo))

	// Adjacent but under different parents.
	assert.False(t, mustParse(t, "10.0.1/24").siblingOf(mustParse(t, "10.0.2/24")))
	assert.False(t, lo.siblingOf(mustParse(t, "192.168.1/24")))
}
