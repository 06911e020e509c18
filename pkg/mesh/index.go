package mesh

// IndexWidth is the element width of an IndexArray, selected at allocation
// time from the largest vertex index the array must hold.
type IndexWidth uint8

const (
	IndexUint16 IndexWidth = iota
	IndexUint32
)

// Size returns the byte size of one index element.
func (w IndexWidth) Size() int {
	if w == IndexUint32 {
		return 4
	}
	return 2
}

// WidthFor returns the narrowest width that can hold maxIndex.
func WidthFor(maxIndex int) IndexWidth {
	if maxIndex > 0xFFFF {
		return IndexUint32
	}
	return IndexUint16
}

// IndexArray holds the vertex indices of an indexed mesh. The element
// width is a tagged variant fixed at allocation; values are transparently
// widened or narrowed when copied between arrays of different widths.
type IndexArray struct {
	width IndexWidth
	u16   []uint16
	u32   []uint32

	count int

	staged   bool
	released bool

	// Retain and DoNotStage follow the same release policy as
	// AttributeArray.
	Retain     bool
	DoNotStage bool
}

// NewIndexArray allocates an index array with capacity elements, wide
// enough to hold maxIndex. Count starts at capacity; lower it with
// SetCount to draw fewer indices than are allocated.
func NewIndexArray(capacity, maxIndex int) *IndexArray {
	a := &IndexArray{width: WidthFor(maxIndex), count: capacity}
	a.alloc(capacity)
	return a
}

func (a *IndexArray) alloc(capacity int) {
	if a.width == IndexUint32 {
		a.u32 = make([]uint32, capacity)
		a.u16 = nil
	} else {
		a.u16 = make([]uint16, capacity)
		a.u32 = nil
	}
	a.released = false
}

// Width returns the element width.
func (a *IndexArray) Width() IndexWidth { return a.width }

// Capacity returns the allocated element count.
func (a *IndexArray) Capacity() int {
	if a.width == IndexUint32 {
		return len(a.u32)
	}
	return len(a.u16)
}

// Count returns the number of indices logically in use.
func (a *IndexArray) Count() int { return a.count }

// SetCount sets the logical index count, clamped to capacity.
func (a *IndexArray) SetCount(n int) {
	if n > a.Capacity() {
		n = a.Capacity()
	}
	if n < 0 {
		n = 0
	}
	a.count = n
}

// SetAllocatedCapacity resizes the array, preserving the first
// min(n, old) values. n == 0 frees the storage.
func (a *IndexArray) SetAllocatedCapacity(n int) {
	if n == 0 {
		a.u16, a.u32 = nil, nil
		a.count = 0
		a.staged = false
		return
	}
	if a.width == IndexUint32 {
		old := a.u32
		a.u32 = make([]uint32, n)
		copy(a.u32, old)
	} else {
		old := a.u16
		a.u16 = make([]uint16, n)
		copy(a.u16, old)
	}
	a.released = false
	a.staged = false
	a.count = n
}

// At returns the index value at position i.
func (a *IndexArray) At(i int) (int, error) {
	if err := a.checkAccess(i); err != nil {
		return 0, err
	}
	if a.width == IndexUint32 {
		return int(a.u32[i]), nil
	}
	return int(a.u16[i]), nil
}

// Set stores an index value at position i. The value must fit the
// array's element width.
func (a *IndexArray) Set(i, v int) error {
	if err := a.checkAccess(i); err != nil {
		return err
	}
	if v < 0 {
		return ErrIndexWidth
	}
	if a.width == IndexUint32 {
		a.u32[i] = uint32(v)
		return nil
	}
	if v > 0xFFFF {
		return ErrIndexWidth
	}
	a.u16[i] = uint16(v)
	return nil
}

func (a *IndexArray) checkAccess(i int) error {
	if a.released {
		return ErrReleased
	}
	if i < 0 || i >= a.Capacity() {
		return ErrVertexRange
	}
	return nil
}

// Bytes returns the raw little-endian bytes of the index storage for
// staging, or nil when released. The slice is a fresh copy built per
// call; cache it when uploading the same indices more than once.
func (a *IndexArray) Bytes() []byte {
	if a.released {
		return nil
	}
	if a.width == IndexUint32 {
		if a.u32 == nil {
			return nil
		}
		b := make([]byte, 4*len(a.u32))
		for i, v := range a.u32 {
			b[i*4] = byte(v)
			b[i*4+1] = byte(v >> 8)
			b[i*4+2] = byte(v >> 16)
			b[i*4+3] = byte(v >> 24)
		}
		return b
	}
	if a.u16 == nil {
		return nil
	}
	b := make([]byte, 2*len(a.u16))
	for i, v := range a.u16 {
		b[i*2] = byte(v)
		b[i*2+1] = byte(v >> 8)
	}
	return b
}

// IsStaged reports whether the indices have been handed to a GPU buffer.
func (a *IndexArray) IsStaged() bool { return a.staged }

// SetStaged records staging state.
func (a *IndexArray) SetStaged(staged bool) { a.staged = staged }

// Released reports whether the host copy has been released.
func (a *IndexArray) Released() bool { return a.released }

func (a *IndexArray) release() {
	a.u16, a.u32 = nil, nil
	a.released = true
}
