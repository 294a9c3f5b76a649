// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

// System manages the full set of resources for rendering the
// textured quad: the binding Layout, the Texture, the per-frame
// Slots, the Render pass, and the Pipelines that draw with them.
// It maintains its own logical device and associated queue.
type System struct {
	Name         string               `desc:"optional name of this System"`
	GPU          *GPU                 `desc:"gpu device"`
	Device       Device               `desc:"logical device for this System -- has its own queues"`
	CmdPool      CmdPool              `desc:"rendering cmd pool specific to this system"`
	TransferPool CmdPool              `desc:"transient cmd pool for one-time texture uploads"`
	Layout       BindingLayout        `desc:"the fixed binding layout shared by pipelines and frame slots"`
	Texture      *Texture             `desc:"the texture rendered on the quad, set by UploadTexture"`
	Slots        FrameSlots           `desc:"per-frame uniform buffers and descriptor sets"`
	Render       Render               `desc:"render pass for this system"`
	Pipelines    []*Pipeline          `desc:"all pipelines"`
	PipelineMap  map[string]*Pipeline `desc:"map of all pipelines -- names must be unique"`
}

// Init initializes the System with the given device, making the
// command pools.  The given device is typically the Surface device.
func (sy *System) Init(gp *GPU, name string, dev *Device) {
	sy.GPU = gp
	sy.Name = name
	sy.Device = *dev
	sy.CmdPool.ConfigResettable(&sy.Device)
	sy.TransferPool.ConfigTransient(&sy.Device)
}

// ConfigQuadLayout configures the standard textured-quad binding
// layout on this system.  Must be called before Config.
func (sy *System) ConfigQuadLayout() {
	sy.Layout = *StdQuadLayout()
}

// ConfigRender configures the render pass for the given image
// format, typically the Surface Format.
func (sy *System) ConfigRender(imgFmt *ImageFormat) {
	sy.Render.Config(sy.Device.Device, imgFmt)
}

// Config configures the binding layout and all pipelines, after
// everything has been setup (layout slots, render pass, shaders).
// ConfigFrames is a separate step requiring the uploaded Texture.
func (sy *System) Config() {
	err := sy.Layout.Config(sy.Device.Device)
	IfPanic(err)
	if Debug {
		fmt.Printf("%s\n", sy.Layout.StringDoc())
	}
	for _, pl := range sy.Pipelines {
		pl.Config()
	}
}

// ConfigFrames configures n frame slots, one per swapchain image,
// each with its own uniform buffer and descriptor set bound to the
// system Texture, and allocates one rendering command buffer per
// frame in flight.  The Texture must have been uploaded first.
func (sy *System) ConfigFrames(n int) error {
	err := sy.Slots.Config(sy.GPU, sy.Device.Device, &sy.Layout, sy.Texture, n)
	if err != nil {
		return err
	}
	sy.CmdPool.NewBuffers(&sy.Device, n)
	return nil
}

// RenderCmd returns the rendering command buffer for the given frame
// sync index.  Each frame index records into its own buffer, which is
// only reset after that frame's fence has been waited, so a pending
// buffer is never reset.
func (sy *System) RenderCmd(frameIdx int) vk.CommandBuffer {
	return sy.CmdPool.Buffs[frameIdx]
}

// AddPipeline adds given pipeline
func (sy *System) AddPipeline(pl *Pipeline) {
	if sy.PipelineMap == nil {
		sy.PipelineMap = make(map[string]*Pipeline)
	}
	sy.Pipelines = append(sy.Pipelines, pl)
	sy.PipelineMap[pl.Name] = pl
}

// NewPipeline returns a new pipeline added to this System,
// initialized for use in this system.
func (sy *System) NewPipeline(name string) *Pipeline {
	pl := &Pipeline{Name: name}
	pl.Init(sy)
	sy.AddPipeline(pl)
	return pl
}

// SetClearColor sets the RGBA colors to set when starting new render
func (sy *System) SetClearColor(r, g, b, a float32) {
	sy.Render.SetClearColor(r, g, b, a)
}

func (sy *System) Destroy() {
	vk.DeviceWaitIdle(sy.Device.Device)
	for _, pl := range sy.Pipelines {
		pl.Destroy()
	}
	sy.Slots.Destroy(sy.Device.Device)
	if sy.Texture != nil {
		sy.Texture.Destroy()
		sy.Texture = nil
	}
	sy.Layout.Destroy(sy.Device.Device)
	sy.CmdPool.Destroy(sy.Device.Device)
	sy.TransferPool.Destroy(sy.Device.Device)
	sy.Render.Destroy()
	sy.GPU = nil
}

//////////////////////////////////////////////////////////////////////////
// Rendering

// ResetBeginRenderPass adds commands to the given command buffer
// to reset the command buffer and call begin on it, then starts
// the render pass on given framebuffer, clearing to ClearVals.
func (sy *System) ResetBeginRenderPass(cmd vk.CommandBuffer, fr *Framebuffer) {
	CmdResetBegin(cmd)
	sy.Render.BeginRenderPass(cmd, fr)
}

// EndRenderPass adds commands to the given command buffer
// to end the render pass.  It does not call EndCommandBuffer,
// in case any further commands are to be added.
func (sy *System) EndRenderPass(cmd vk.CommandBuffer) {
	// Note that ending the renderpass changes the image's layout from
	// vk.ImageLayoutColorAttachmentOptimal to vk.ImageLayoutPresentSrc
	vk.CmdEndRenderPass(cmd)
}
