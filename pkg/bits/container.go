package bits

// Container owns one BitArray and a display name. After Freeze it is
// treated as immutable: consumers Clone before mutating.
type Container struct {
	name string
	bits *BitArray
}

func NewContainer(name string, bits *BitArray) *Container {
	if bits == nil {
		bits = NewBitArray(0)
	}
	return &Container{name: name, bits: bits}
}

func (c *Container) Name() string {
	return c.name
}

func (c *Container) Bits() *BitArray {
	return c.bits
}

func (c *Container) Len() int64 {
	return c.bits.Len()
}

// Freeze marks the container's bits read-only and returns the container so
// it can be published in one expression.
func (c *Container) Freeze() *Container {
	c.bits.Freeze()
	return c
}

func (c *Container) Frozen() bool {
	return c.bits.Frozen()
}

// Clone deep-copies the bits under a new name. An empty name keeps the
// original one.
func (c *Container) Clone(name string) *Container {
	if name == "" {
		name = c.name
	}
	return &Container{name: name, bits: c.bits.Clone()}
}

// Range is a half-open span of bit indices [Start, End).
type Range struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

func (r Range) Len() int64 {
	return r.End - r.Start
}
