package bits

import (
	"fmt"
	mathbits "math/bits"
	"sync/atomic"
)

// BitArray is a fixed-length sequence of bits packed MSB-first into bytes.
// Once frozen it rejects writes; reads stay safe from any goroutine.
type BitArray struct {
	data   []byte
	length int64
	frozen atomic.Bool
}

// NewBitArray returns an all-zero array of n bits.
func NewBitArray(n int64) *BitArray {
	if n < 0 {
		panic(fmt.Sprintf("bits: negative length %d", n))
	}
	return &BitArray{
		data:   make([]byte, byteLen(n)),
		length: n,
	}
}

// FromBytes copies the first n bits of data. n < 0 means all of data.
func FromBytes(data []byte, n int64) (*BitArray, error) {
	if n < 0 {
		n = int64(len(data)) * 8
	}
	if byteLen(n) > int64(len(data)) {
		return nil, fmt.Errorf("bits: %d bits requested from %d bytes", n, len(data))
	}
	a := NewBitArray(n)
	copy(a.data, data[:byteLen(n)])
	a.clearTail()
	return a, nil
}

// Clone returns an independent, unfrozen copy.
func (a *BitArray) Clone() *BitArray {
	c := &BitArray{
		data:   make([]byte, len(a.data)),
		length: a.length,
	}
	copy(c.data, a.data)
	return c
}

func (a *BitArray) Len() int64 {
	return a.length
}

func (a *BitArray) At(i int64) bool {
	a.check(i)
	return a.data[i>>3]&(0x80>>(i&7)) != 0
}

func (a *BitArray) Set(i int64, v bool) {
	a.mustWritable()
	a.check(i)
	if v {
		a.data[i>>3] |= 0x80 >> (i & 7)
	} else {
		a.data[i>>3] &^= 0x80 >> (i & 7)
	}
}

func (a *BitArray) Flip(i int64) {
	a.mustWritable()
	a.check(i)
	a.data[i>>3] ^= 0x80 >> (i & 7)
}

// Count returns the number of set bits.
func (a *BitArray) Count() int64 {
	var n int
	for _, b := range a.data {
		n += mathbits.OnesCount8(b)
	}
	return int64(n)
}

// Bytes returns a copy of the packed bits; trailing pad bits are zero.
func (a *BitArray) Bytes() []byte {
	out := make([]byte, len(a.data))
	copy(out, a.data)
	return out
}

func (a *BitArray) Freeze() {
	a.frozen.Store(true)
}

func (a *BitArray) Frozen() bool {
	return a.frozen.Load()
}

// Equal reports whether both arrays hold the same bits.
func (a *BitArray) Equal(b *BitArray) bool {
	if a.length != b.length {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

// String renders the bits as '0'/'1', mostly for tests and logs.
func (a *BitArray) String() string {
	buf := make([]byte, a.length)
	for i := int64(0); i < a.length; i++ {
		buf[i] = '0'
		if a.At(i) {
			buf[i] = '1'
		}
	}
	return string(buf)
}

// Parse builds an array from a string of '0' and '1'.
func Parse(s string) (*BitArray, error) {
	a := NewBitArray(int64(len(s)))
	for i, c := range s {
		switch c {
		case '0':
		case '1':
			a.Set(int64(i), true)
		default:
			return nil, fmt.Errorf("bits: invalid character %q at %d", c, i)
		}
	}
	return a, nil
}

func (a *BitArray) check(i int64) {
	if i < 0 || i >= a.length {
		panic(fmt.Sprintf("bits: index %d out of range [0, %d)", i, a.length))
	}
}

func (a *BitArray) mustWritable() {
	if a.frozen.Load() {
		panic("bits: write to frozen array")
	}
}

func (a *BitArray) clearTail() {
	if r := a.length & 7; r != 0 {
		a.data[len(a.data)-1] &= byte(0xFF << (8 - r))
	}
}

func byteLen(n int64) int64 {
	return (n + 7) / 8
}
