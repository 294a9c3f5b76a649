// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import (
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// testSlot returns a FrameSlot whose uniform is backed by plain Go
// memory, so transform writes can be tested without a device.
func testSlot(idx int) (FrameSlot, []float32) {
	bs := make([]float32, TransformSize/4)
	sl := FrameSlot{Index: idx}
	sl.Unif.Size = TransformSize
	sl.Unif.Ptr = unsafe.Pointer(&bs[0])
	return sl, bs
}

func TestWriteTransform(t *testing.T) {
	sl, bs := testSlot(0)
	mtx := TransformMatrix(0.5, 2, 4.0/3.0)
	sl.WriteTransform(mtx)
	assert.Equal(t, mtx[:], bs)

	// writing the same matrix again leaves the memory identical
	sl.WriteTransform(mtx)
	assert.Equal(t, mtx[:], bs)

	mtx2 := TransformMatrix(1.5, 2, 4.0/3.0)
	sl.WriteTransform(mtx2)
	assert.Equal(t, mtx2[:], bs)
}

func TestWriteTransformSlotIndependence(t *testing.T) {
	s0, b0 := testSlot(0)
	s1, b1 := testSlot(1)

	m0 := TransformMatrix(0.25, 1, 1)
	m1 := TransformMatrix(0.75, 1, 1)
	s0.WriteTransform(m0)
	s1.WriteTransform(m1)

	// each slot holds only its own matrix
	assert.Equal(t, m0[:], b0)
	assert.Equal(t, m1[:], b1)

	s0.WriteTransform(mgl32.Ident4())
	assert.Equal(t, m1[:], b1)
}

func TestFrameSlotsConfigErrors(t *testing.T) {
	lay := StdQuadLayout()
	tx := &Texture{}
	tx.Defaults()

	fs := &FrameSlots{}
	err := fs.Config(nil, nil, lay, tx, 0)
	assert.Error(t, err)

	// a texture that never completed upload cannot be bound
	tx.Image.Layout = LayoutTransferDst
	err = fs.Config(nil, nil, lay, tx, 3)
	assert.Error(t, err)
	assert.Equal(t, 0, fs.NSlots())
}
