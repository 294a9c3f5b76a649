// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import (
	vk "github.com/goki/vulkan"
)

// Render manages the color-only render pass and clear values
// for rendering the quad into surface framebuffers.
type Render struct {
	Dev       vk.Device       `desc:"device the render pass is configured on"`
	Format    ImageFormat     `desc:"image format being rendered to"`
	ClearVals []vk.ClearValue `desc:"clear values for the color attachment"`

	VkClearPass vk.RenderPass `view:"-" desc:"render pass that clears the frame first"`
}

// Config configures the render pass for the given target image format,
// with a single color attachment that is cleared at the start and
// transitioned to present at the end.
func (rp *Render) Config(dev vk.Device, imgFmt *ImageFormat) {
	rp.Dev = dev
	rp.Format = *imgFmt
	rp.SetClearColor(0, 0, 0, 1)

	var renderPass vk.RenderPass
	ret := vk.CreateRenderPass(dev, &vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments: []vk.AttachmentDescription{{
			Format:         imgFmt.Format,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         vk.AttachmentLoadOpClear,
			StoreOp:        vk.AttachmentStoreOpStore,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
			FinalLayout:    vk.ImageLayoutPresentSrc,
		}},
		SubpassCount: 1,
		PSubpasses: []vk.SubpassDescription{{
			PipelineBindPoint:    vk.PipelineBindPointGraphics,
			ColorAttachmentCount: 1,
			PColorAttachments: []vk.AttachmentReference{{
				Attachment: 0,
				Layout:     vk.ImageLayoutColorAttachmentOptimal,
			}},
		}},
		DependencyCount: 1,
		PDependencies: []vk.SubpassDependency{{
			SrcSubpass:    vk.SubpassExternal,
			DstSubpass:    0,
			SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
			DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
			SrcAccessMask: 0,
			DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
		}},
	}, nil, &renderPass)
	IfPanic(NewError(ret))
	rp.VkClearPass = renderPass
}

// SetClearColor sets the RGBA colors to clear to when starting a render
func (rp *Render) SetClearColor(r, g, b, a float32) {
	if len(rp.ClearVals) != 1 {
		rp.ClearVals = make([]vk.ClearValue, 1)
	}
	rp.ClearVals[0].SetColor([]float32{r, g, b, a})
}

// BeginRenderPass adds commands to the given command buffer to start
// the render pass on given framebuffer, clearing first, and sets the
// dynamic viewport and scissor to the full frame.
func (rp *Render) BeginRenderPass(cmd vk.CommandBuffer, fr *Framebuffer) {
	w, h := fr.Image.Format.Size32()
	vk.CmdBeginRenderPass(cmd, &vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  rp.VkClearPass,
		Framebuffer: fr.Framebuffer,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{},
			Extent: vk.Extent2D{Width: w, Height: h},
		},
		ClearValueCount: uint32(len(rp.ClearVals)),
		PClearValues:    rp.ClearVals,
	}, vk.SubpassContentsInline)

	vk.CmdSetViewport(cmd, 0, 1, []vk.Viewport{{
		Width:    float32(w),
		Height:   float32(h),
		MinDepth: 0,
		MaxDepth: 1,
	}})
	vk.CmdSetScissor(cmd, 0, 1, []vk.Rect2D{{
		Offset: vk.Offset2D{},
		Extent: vk.Extent2D{Width: w, Height: h},
	}})
}

func (rp *Render) Destroy() {
	if rp.VkClearPass == nil {
		return
	}
	vk.DestroyRenderPass(rp.Dev, rp.VkClearPass, nil)
	rp.VkClearPass = nil
	rp.Dev = nil
}

//////////////////////////////////////////////////////////////////

// Framebuffer combines an Image and a Render pass into a vulkan
// framebuffer render target.
type Framebuffer struct {
	Image       Image          `desc:"the image behind the framebuffer, includes the format"`
	Render      *Render        `desc:"pointer to the associated render pass"`
	Framebuffer vk.Framebuffer `desc:"vulkan framebuffer"`
}

// ConfigSurfaceImage configures settings for given existing surface
// image and format.  Does not yet make the Framebuffer because it
// still needs the Render pass (see ConfigRender).
func (fb *Framebuffer) ConfigSurfaceImage(dev vk.Device, fmt ImageFormat, img vk.Image) {
	fb.Image.Format.Defaults()
	fb.Image.Format = fmt
	fb.Image.SetVkImage(dev, img) // makes view
}

// ConfigRender sets the Render pass and makes the framebuffer for it,
// assuming the image is already set.
func (fb *Framebuffer) ConfigRender(rp *Render) {
	fb.Render = rp
	fb.Config()
}

// Config configures a new vulkan framebuffer object with current
// settings, destroying any existing.
func (fb *Framebuffer) Config() {
	fb.DestroyFrame()
	w, h := fb.Image.Format.Size32()
	var frameBuff vk.Framebuffer
	ret := vk.CreateFramebuffer(fb.Render.Dev, &vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      fb.Render.VkClearPass,
		AttachmentCount: 1,
		PAttachments:    []vk.ImageView{fb.Image.View},
		Width:           w,
		Height:          h,
		Layers:          1,
	}, nil, &frameBuff)
	IfPanic(NewError(ret))
	fb.Framebuffer = frameBuff
}

// DestroyFrame destroys the framebuffer if non-nil
func (fb *Framebuffer) DestroyFrame() {
	if fb.Render == nil || fb.Render.Dev == nil || fb.Framebuffer == nil {
		return
	}
	vk.DestroyFramebuffer(fb.Render.Dev, fb.Framebuffer, nil)
	fb.Framebuffer = nil
}

// Destroy destroys everything
func (fb *Framebuffer) Destroy() {
	fb.DestroyFrame()
	fb.Image.Destroy()
	fb.Render = nil
}
