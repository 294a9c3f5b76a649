// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	vk "github.com/goki/vulkan"
)

// stubSync implements FrameSync with a canned slot sequence.
type stubSync struct {
	seq  []int
	next int
	err  error
}

func (ss *stubSync) AcquireFrameSlot() (int, error) {
	if ss.err != nil {
		return -1, ss.err
	}
	idx := ss.seq[ss.next%len(ss.seq)]
	ss.next++
	return idx, nil
}

// testSystem returns a System with an uploaded-state texture and n
// slice-backed frame slots, no device involved.
func testSystem(n int) (*System, [][]float32) {
	sy := &System{}
	tx := &Texture{}
	tx.Defaults()
	tx.Image.Format.Set(256, 128, vk.FormatR8g8b8a8Srgb)
	tx.Image.Layout = LayoutShaderReadOnly
	sy.Texture = tx
	bufs := make([][]float32, n)
	for i := 0; i < n; i++ {
		sl, bs := testSlot(i)
		sy.Slots.Slots = append(sy.Slots.Slots, sl)
		bufs[i] = bs
	}
	return sy, bufs
}

func TestOrchestratorAdvance(t *testing.T) {
	sy, bufs := testSystem(3)
	ss := &stubSync{seq: []int{0, 1, 2}}
	or := &Orchestrator{Sys: sy, Sync: ss}
	view := image.Point{X: 800, Y: 600}

	idx, mtx, err := or.Advance(0, view)
	assert.NoError(t, err)
	assert.Equal(t, 0, idx)
	assertMat4(t, TransformMatrix(0, 2, 4.0/3.0), mtx)
	assert.Equal(t, mtx[:], bufs[0])

	// time accumulates the sum of deltas
	idx, mtx, err = or.Advance(0.25, view)
	assert.NoError(t, err)
	assert.Equal(t, 1, idx)
	idx, mtx, err = or.Advance(0.5, view)
	assert.NoError(t, err)
	assert.Equal(t, 2, idx)
	assert.InDelta(t, 0.75, or.Time, mtxTol)
	assertMat4(t, TransformMatrix(0.75, 2, 4.0/3.0), mtx)
	assert.Equal(t, mtx[:], bufs[2])

	// slot 1 still holds its own earlier matrix
	m1 := TransformMatrix(0.25, 2, 4.0/3.0)
	assert.Equal(t, m1[:], bufs[1])
}

func TestOrchestratorAcquireError(t *testing.T) {
	sy, _ := testSystem(2)
	ss := &stubSync{err: errors.New("device lost")}
	or := &Orchestrator{Sys: sy, Sync: ss}

	idx, _, err := or.Advance(0.1, image.Point{X: 100, Y: 100})
	assert.Error(t, err)
	assert.Equal(t, -1, idx)
	// time still advances, matching real elapsed time
	assert.InDelta(t, 0.1, or.Time, mtxTol)
}

func TestOrchestratorSlotRange(t *testing.T) {
	sy, _ := testSystem(2)
	ss := &stubSync{seq: []int{5}}
	or := &Orchestrator{Sys: sy, Sync: ss}

	idx, _, err := or.Advance(0, image.Point{X: 100, Y: 100})
	assert.Error(t, err)
	assert.Equal(t, -1, idx)
}

func TestOrchestratorDegenerateView(t *testing.T) {
	sy, bufs := testSystem(1)
	ss := &stubSync{seq: []int{0}}
	or := &Orchestrator{Sys: sy, Sync: ss}

	// zero-height viewport falls back to aspect 1
	_, mtx, err := or.Advance(0, image.Point{})
	assert.NoError(t, err)
	assertMat4(t, TransformMatrix(0, 2, 1), mtx)
	assert.Equal(t, mtx[:], bufs[0])
}
