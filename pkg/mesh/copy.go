package mesh

// recordStride returns the shared record stride of an interleaved mesh.
func (m *Mesh) recordStride() int {
	attrs := m.Attributes()
	if len(attrs) == 0 {
		return 0
	}
	return attrs[0].stride
}

// CopyVertices shifts a contiguous run of count vertices from srcIdx to
// dstIdx within this mesh, across every attribute. Overlapping runs are
// handled like memmove. Used for compaction after partial removal.
func (m *Mesh) CopyVertices(count, srcIdx, dstIdx int) error {
	if count <= 0 {
		return nil
	}
	if srcIdx < 0 || dstIdx < 0 || srcIdx+count > m.capacity || dstIdx+count > m.capacity {
		return ErrVertexRange
	}
	attrs := m.Attributes()
	for _, a := range attrs {
		if a.released || a.data == nil {
			return ErrReleased
		}
	}
	if m.interleaved {
		stride := m.recordStride()
		copy(m.shared[dstIdx*stride:(dstIdx+count)*stride],
			m.shared[srcIdx*stride:(srcIdx+count)*stride])
		return nil
	}
	for _, a := range attrs {
		es := a.ElemSize()
		copy(a.data[dstIdx*es:(dstIdx+count)*es],
			a.data[srcIdx*es:(srcIdx+count)*es])
	}
	return nil
}

// CopyVerticesFrom copies a run of count vertices from src into this
// mesh, attribute by attribute, matching by semantic (and channel for
// texture coordinates). Semantics present here but absent in src receive
// a per-semantic default value; semantics present only in src are
// ignored.
func (m *Mesh) CopyVerticesFrom(src *Mesh, count, srcIdx, dstIdx int) error {
	if count <= 0 {
		return nil
	}
	if srcIdx < 0 || dstIdx < 0 || dstIdx+count > m.capacity || srcIdx+count > src.capacity {
		return ErrVertexRange
	}
	for _, a := range m.Attributes() {
		var sa *AttributeArray
		if a.semantic == SemTexCoord {
			sa = src.TexCoord(a.unit)
		} else {
			sa = src.Attribute(a.semantic)
		}
		for j := 0; j < count; j++ {
			var err error
			if sa == nil {
				err = writeDefaultValue(a, dstIdx+j)
			} else {
				err = copyConvertValue(a, dstIdx+j, sa, srcIdx+j)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// copyConvertValue copies one vertex's value between arrays of the same
// semantic, converting between differing element layouts component-wise.
func copyConvertValue(dst *AttributeArray, di int, src *AttributeArray, si int) error {
	if dst.elemType == src.elemType && dst.elemCount == src.elemCount {
		if err := dst.checkAccess(di); err != nil {
			return err
		}
		if err := src.checkAccess(si); err != nil {
			return err
		}
		copy(dst.valueBytes(di), src.valueBytes(si))
		return nil
	}
	comps := dst.elemCount
	if src.elemCount < comps {
		comps = src.elemCount
	}
	// Normalize color components across integer widths.
	scale := float32(1)
	if dst.semantic == SemColor {
		scale = colorScale(dst.elemType) / colorScale(src.elemType)
	}
	for c := 0; c < comps; c++ {
		f, err := src.Float32At(si, c)
		if err != nil {
			return err
		}
		if err := dst.SetFloat32At(di, c, f*scale); err != nil {
			return err
		}
	}
	return nil
}

// writeDefaultValue stores the semantic's default at vertex i: identity
// normal and basis tangents, opaque white color, zero texture coordinate,
// unit first bone weight, zero bone indices, unit point size.
func writeDefaultValue(a *AttributeArray, i int) error {
	var comps [4]float32
	switch a.semantic {
	case SemNormal:
		comps = [4]float32{0, 0, 1, 0}
	case SemTangent:
		comps = [4]float32{1, 0, 0, 0}
	case SemBitangent:
		comps = [4]float32{0, 1, 0, 0}
	case SemColor:
		s := colorScale(a.elemType)
		comps = [4]float32{s, s, s, s}
	case SemBoneWeights:
		comps = [4]float32{1, 0, 0, 0}
	case SemPointSize:
		comps = [4]float32{1, 0, 0, 0}
	case SemLocation:
		comps = [4]float32{0, 0, 0, 1}
	}
	n := a.elemCount
	if n > 4 {
		n = 4
	}
	for c := 0; c < n; c++ {
		if err := a.SetFloat32At(i, c, comps[c]); err != nil {
			return err
		}
	}
	// Influence counts beyond four stay zero, matching the unused-slot
	// convention of bone weight and index attributes.
	for c := n; c < a.elemCount; c++ {
		if err := a.SetFloat32At(i, c, 0); err != nil {
			return err
		}
	}
	return nil
}

// CopyIndices copies a run of count index values from srcIdx to dstIdx
// within this mesh's index array, adding offset to each copied value.
// Used to re-base indices after their vertex block has been relocated.
// No-op on a non-indexed mesh.
func (m *Mesh) CopyIndices(count, srcIdx, dstIdx, offset int) error {
	if m.indexes == nil || count <= 0 {
		return nil
	}
	// Walk backwards when ranges overlap with dst after src.
	if dstIdx > srcIdx && dstIdx < srcIdx+count {
		for j := count - 1; j >= 0; j-- {
			v, err := m.indexes.At(srcIdx + j)
			if err != nil {
				return err
			}
			if err := m.indexes.Set(dstIdx+j, v+offset); err != nil {
				return err
			}
		}
		return nil
	}
	for j := 0; j < count; j++ {
		v, err := m.indexes.At(srcIdx + j)
		if err != nil {
			return err
		}
		if err := m.indexes.Set(dstIdx+j, v+offset); err != nil {
			return err
		}
	}
	return nil
}

// CopyIndicesFrom copies a run of count index values from src's index
// array into this mesh's, adding offset to each value. Element width
// differences are widened or narrowed per value; a value too large for
// this array's width fails with ErrIndexWidth.
//
// When src has no index array, indices are synthesized as offset,
// offset+1, ... so an un-indexed source mesh can be merged into an
// indexed destination. No-op when this mesh has no index array.
func (m *Mesh) CopyIndicesFrom(src *Mesh, count, srcIdx, dstIdx, offset int) error {
	if m.indexes == nil || count <= 0 {
		return nil
	}
	for j := 0; j < count; j++ {
		v := offset + j
		if src.indexes != nil {
			sv, err := src.indexes.At(srcIdx + j)
			if err != nil {
				return err
			}
			v = sv + offset
		}
		if err := m.indexes.Set(dstIdx+j, v); err != nil {
			return err
		}
	}
	return nil
}
