// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	vk "github.com/goki/vulkan"
)

// QuadVerts is the number of vertices drawn per frame: one 4-vertex
// triangle strip generated in the vertex shader from gl_VertexIndex.
const QuadVerts = 4

// FrameSync is the external fencing capability: it blocks until a
// frame slot is safe to reuse and returns its index.  The Surface
// implements it with a swapchain acquire gated on the frame fence;
// tests can drive the Orchestrator with any stand-in.
type FrameSync interface {
	// AcquireFrameSlot returns the index of the next safe frame slot,
	// blocking until the slot's previous use has completed.
	AcquireFrameSlot() (int, error)
}

// Orchestrator drives the per-frame flow: acquire a safe slot,
// advance the animation clock, compute the transform, write it into
// the slot's uniform, then bind and draw.  Time accumulates the
// deltas passed to Advance, so animation speed follows real frame
// durations rather than a frame counter.
type Orchestrator struct {
	Sys  *System   `desc:"system holding the texture, frame slots, and pipeline"`
	Sync FrameSync `desc:"external fencing, provides safe frame slot indexes"`

	// accumulated animation time in seconds, advanced by Advance
	Time float32 `desc:"accumulated animation time in seconds, advanced by Advance"`
}

// Advance runs the device-free part of a frame: adds delta to the
// accumulated time, acquires a safe slot, computes the transform for
// the current time and viewport size, and writes it into the slot's
// uniform.  Returns the slot index and the matrix written.
func (or *Orchestrator) Advance(delta float32, viewSize image.Point) (int, mgl32.Mat4, error) {
	or.Time += delta
	idx, err := or.Sync.AcquireFrameSlot()
	if err != nil {
		return -1, mgl32.Ident4(), err
	}
	if idx < 0 || idx >= or.Sys.Slots.NSlots() {
		return -1, mgl32.Ident4(), fmt.Errorf("vquad.Orchestrator: acquired slot %d out of range [0, %d)", idx, or.Sys.Slots.NSlots())
	}
	viewAspect := float32(1)
	if viewSize.Y > 0 {
		viewAspect = float32(viewSize.X) / float32(viewSize.Y)
	}
	mtx := TransformMatrix(or.Time, or.Sys.Texture.Image.Format.Aspect(), viewAspect)
	or.Sys.Slots.Slots[idx].WriteTransform(mtx)
	return idx, mtx, nil
}

// Record adds the bind and draw commands for the given slot to cmd:
// bind the pipeline, bind the slot's descriptor set, and draw the
// 4-vertex quad as one instance.  The render pass must already be
// active on cmd.
func (or *Orchestrator) Record(cmd vk.CommandBuffer, pl *Pipeline, idx int) {
	sl := &or.Sys.Slots.Slots[idx]
	pl.BindPipeline(cmd)
	vk.CmdBindDescriptorSets(cmd, vk.PipelineBindPointGraphics, or.Sys.Layout.VkPipelineLayout,
		0, 1, []vk.DescriptorSet{sl.DescSet}, 0, nil)
	pl.Draw(cmd, QuadVerts, 1, 0, 0)
}

// RenderFrame runs one full frame against the given surface:
// Advance, then record the render pass with the quad draw, submit,
// and present.  Returns the slot index rendered.
func (or *Orchestrator) RenderFrame(delta float32, sf *Surface, pl *Pipeline) (int, error) {
	idx, _, err := or.Advance(delta, sf.Format.Size)
	if err != nil {
		return -1, err
	}
	cmd := or.Sys.RenderCmd(sf.FrameIndex)
	or.Sys.ResetBeginRenderPass(cmd, sf.Frames[idx])
	or.Record(cmd, pl, idx)
	or.Sys.EndRenderPass(cmd)
	sf.SubmitRender(cmd)
	err = sf.PresentImage(idx)
	return idx, err
}
