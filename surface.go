// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This is initially adapted from https://github.com/vulkan-go/asche
// Copyright © 2017 Maxim Kupriianov <max@kc.vc>, under the MIT License

package vquad

import (
	"errors"
	"log"

	vk "github.com/goki/vulkan"
)

// Surface manages the physical device for the visible image
// of a window surface, and the swapchain for presenting images.
// It implements FrameSync: AcquireFrameSlot waits on the frame
// fence and acquires the next swapchain image.
type Surface struct {
	GPU        *GPU           `desc:"pointer to gpu device, for convenience"`
	Device     Device         `desc:"device for this surface -- each window surface has its own device, configured for that surface"`
	Render     *Render        `desc:"the Render pass for this Surface, typically from a System"`
	Format     ImageFormat    `desc:"has the current swapchain image format and dimensions"`
	NFrames    int            `desc:"number of frames to maintain in the swapchain -- set to a requested amount, and after Init reflects the actual number"`
	Frames     []*Framebuffer `desc:"framebuffers for each visible image owned by the Surface"`
	FrameIndex int            `desc:"index for the current frame sync resources"`

	ImageAcquiredSemaphores []vk.Semaphore `view:"-" desc:"one per frame, signaled when the image is acquired"`
	RenderDoneSemaphores    []vk.Semaphore `view:"-" desc:"one per frame, signaled when rendering completes"`
	RenderFences            []vk.Fence     `view:"-" desc:"one per frame, gates reuse of the frame's resources"`
	ImageFences             []vk.Fence     `view:"-" desc:"one per image, the render fence of the frame that last used it"`

	Surface   vk.Surface   `view:"-" desc:"vulkan handle for surface"`
	Swapchain vk.Swapchain `view:"-" desc:"vulkan handle for swapchain"`
}

// NewSurface returns a new Surface initialized for given GPU and
// vulkan surface handle, obtained from the OS-specific window.
func NewSurface(gp *GPU, vs vk.Surface) *Surface {
	sf := &Surface{}
	sf.Defaults()
	err := sf.Init(gp, vs)
	IfPanic(err)
	return sf
}

func (sf *Surface) Defaults() {
	sf.NFrames = 3 // requested, will be updated with actual
	sf.Format.Set(1024, 768, vk.FormatR8g8b8a8Srgb)
}

// Init initializes the device and all other resources for the surface
// based on the vulkan surface handle which must be obtained from the
// OS-specific window, created first (e.g., via glfw).
// Vulkan errors from device and swapchain setup are recovered
// and returned as the error value.
func (sf *Surface) Init(gp *GPU, vs vk.Surface) (err error) {
	defer CheckErr(&err)
	sf.GPU = gp
	sf.Surface = vs
	var queueCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(sf.GPU.GPU, &queueCount, nil)
	queueProperties := make([]vk.QueueFamilyProperties, queueCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(sf.GPU.GPU, &queueCount, queueProperties)
	if queueCount == 0 { // probably should try another GPU
		return errors.New("vulkan error: no queue families found on GPU 0")
	}

	// note: this differs from the generic Device.FindQueue in
	// requiring present support on the surface.
	found := false
	for i := uint32(0); i < queueCount; i++ {
		queueProperties[i].Deref()
		var supportsPresent vk.Bool32
		vk.GetPhysicalDeviceSurfaceSupport(sf.GPU.GPU, i, sf.Surface, &supportsPresent)
		required := vk.QueueFlags(vk.QueueGraphicsBit)
		if supportsPresent.B() && queueProperties[i].QueueFlags&required != 0 {
			sf.Device.QueueIndex = i
			found = true
			break
		}
	}
	if !found {
		return errors.New("vquad.Surface: could not find queue with graphics and present capabilities")
	}

	sf.Device.MakeDevice(gp)
	sf.InitSwapchain()
	sf.ConfigSync()
	return nil
}

// InitSwapchain initializes the swapchain for surface.
// This assumes a new swapchain creation, or reuses the old one if present.
func (sf *Surface) InitSwapchain() {
	var surfaceCapabilities vk.SurfaceCapabilities
	ret := vk.GetPhysicalDeviceSurfaceCapabilities(sf.GPU.GPU, sf.Surface, &surfaceCapabilities)
	IfPanic(NewError(ret))
	surfaceCapabilities.Deref()

	var formatCount uint32
	vk.GetPhysicalDeviceSurfaceFormats(sf.GPU.GPU, sf.Surface, &formatCount, nil)
	formats := make([]vk.SurfaceFormat, formatCount)
	vk.GetPhysicalDeviceSurfaceFormats(sf.GPU.GPU, sf.Surface, &formatCount, formats)

	var format vk.SurfaceFormat
	if formatCount == 1 {
		formats[0].Deref()
		if formats[0].Format == vk.FormatUndefined {
			format = formats[0]
			format.Format = sf.Format.Format
		} else {
			format = formats[0]
		}
	} else if formatCount == 0 {
		IfPanic(errors.New("vulkan error: surface has no pixel formats"))
	} else {
		formats[0].Deref()
		// select the first one available
		format = formats[0]
	}

	var swapchainSize vk.Extent2D
	surfaceCapabilities.CurrentExtent.Deref()
	if surfaceCapabilities.CurrentExtent.Width == vk.MaxUint32 {
		w, h := sf.Format.Size32()
		swapchainSize.Width = w
		swapchainSize.Height = h
	} else {
		swapchainSize = surfaceCapabilities.CurrentExtent
	}

	// FIFO is supported on all vulkan implementations and has no tearing.
	swapchainPresentMode := vk.PresentModeFifo

	desiredSwapchainImages := uint32(sf.NFrames)
	if desiredSwapchainImages < surfaceCapabilities.MinImageCount {
		desiredSwapchainImages = surfaceCapabilities.MinImageCount
	}
	if surfaceCapabilities.MaxImageCount > 0 && desiredSwapchainImages > surfaceCapabilities.MaxImageCount {
		desiredSwapchainImages = surfaceCapabilities.MaxImageCount
	}

	var preTransform vk.SurfaceTransformFlagBits
	requiredTransforms := vk.SurfaceTransformIdentityBit
	supportedTransforms := surfaceCapabilities.SupportedTransforms
	if vk.SurfaceTransformFlagBits(supportedTransforms)&requiredTransforms != 0 {
		preTransform = requiredTransforms
	} else {
		preTransform = surfaceCapabilities.CurrentTransform
	}

	// one of these is guaranteed to be supported
	compositeAlpha := vk.CompositeAlphaOpaqueBit
	compositeAlphaFlags := []vk.CompositeAlphaFlagBits{
		vk.CompositeAlphaOpaqueBit, // this only affects blending with other windows in OS
		vk.CompositeAlphaPreMultipliedBit,
		vk.CompositeAlphaPostMultipliedBit,
		vk.CompositeAlphaInheritBit,
	}
	for i := 0; i < len(compositeAlphaFlags); i++ {
		alphaFlags := vk.CompositeAlphaFlags(compositeAlphaFlags[i])
		if surfaceCapabilities.SupportedCompositeAlpha&alphaFlags != 0 {
			compositeAlpha = compositeAlphaFlags[i]
			break
		}
	}

	var swapchain vk.Swapchain
	oldSwapchain := sf.Swapchain
	swci := &vk.SwapchainCreateInfo{
		SType:           vk.StructureTypeSwapchainCreateInfo,
		Surface:         sf.Surface,
		MinImageCount:   desiredSwapchainImages,
		ImageFormat:     format.Format,
		ImageColorSpace: format.ColorSpace,
		ImageExtent: vk.Extent2D{
			Width:  swapchainSize.Width,
			Height: swapchainSize.Height,
		},
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		PreTransform:     preTransform,
		CompositeAlpha:   compositeAlpha,
		ImageArrayLayers: 1,
		ImageSharingMode: vk.SharingModeExclusive,
		PresentMode:      swapchainPresentMode,
		OldSwapchain:     oldSwapchain,
		Clipped:          vk.True,
	}
	ret = vk.CreateSwapchain(sf.Device.Device, swci, nil, &swapchain)
	IfPanic(NewError(ret))
	if oldSwapchain != vk.NullSwapchain {
		vk.DestroySwapchain(sf.Device.Device, oldSwapchain, nil)
	}
	sf.Swapchain = swapchain
	sf.Format.Set(int(swapchainSize.Width), int(swapchainSize.Height), format.Format)

	var imageCount uint32
	ret = vk.GetSwapchainImages(sf.Device.Device, sf.Swapchain, &imageCount, nil)
	IfPanic(NewError(ret))
	sf.NFrames = int(imageCount)
	swapchainImages := make([]vk.Image, imageCount)
	ret = vk.GetSwapchainImages(sf.Device.Device, sf.Swapchain, &imageCount, swapchainImages)
	IfPanic(NewError(ret))
	for i := 0; i < len(sf.Frames); i++ {
		sf.Frames[i].Destroy()
	}
	sf.Frames = make([]*Framebuffer, sf.NFrames)
	for i := 0; i < len(swapchainImages); i++ {
		fr := &Framebuffer{}
		fr.ConfigSurfaceImage(sf.Device.Device, sf.Format, swapchainImages[i])
		sf.Frames[i] = fr
	}
	if Debug {
		log.Printf("vquad.Surface: swapchain: %d frames, %s\n", sf.NFrames, sf.Format.String())
	}
}

// ConfigSync makes the per-frame semaphores and fences used to
// sequence rendering with the swapchain.
func (sf *Surface) ConfigSync() {
	semaphoreCreateInfo := &vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	sf.ImageAcquiredSemaphores = make([]vk.Semaphore, sf.NFrames)
	sf.RenderDoneSemaphores = make([]vk.Semaphore, sf.NFrames)
	sf.RenderFences = make([]vk.Fence, sf.NFrames)
	sf.ImageFences = make([]vk.Fence, sf.NFrames)
	sf.FrameIndex = 0
	for i := 0; i < sf.NFrames; i++ {
		ret := vk.CreateSemaphore(sf.Device.Device, semaphoreCreateInfo, nil, &sf.ImageAcquiredSemaphores[i])
		IfPanic(NewError(ret))
		ret = vk.CreateSemaphore(sf.Device.Device, semaphoreCreateInfo, nil, &sf.RenderDoneSemaphores[i])
		IfPanic(NewError(ret))
		ret = vk.CreateFence(sf.Device.Device, &vk.FenceCreateInfo{
			SType: vk.StructureTypeFenceCreateInfo,
			Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
		}, nil, &sf.RenderFences[i])
		IfPanic(NewError(ret))
	}
}

// FreeSync frees the per-frame semaphores and fences
func (sf *Surface) FreeSync() {
	for i := 0; i < len(sf.RenderFences); i++ {
		vk.DestroySemaphore(sf.Device.Device, sf.ImageAcquiredSemaphores[i], nil)
		vk.DestroySemaphore(sf.Device.Device, sf.RenderDoneSemaphores[i], nil)
		vk.DestroyFence(sf.Device.Device, sf.RenderFences[i], nil)
	}
	sf.ImageAcquiredSemaphores = nil
	sf.RenderDoneSemaphores = nil
	sf.RenderFences = nil
	sf.ImageFences = nil
}

// SetRender sets the Render pass and configures the frame framebuffers
func (sf *Surface) SetRender(rp *Render) {
	sf.Render = rp
	for _, fr := range sf.Frames {
		fr.ConfigRender(rp)
	}
}

// ReInitSwapchain does a re-initialize of swapchain, freeing the
// existing framebuffers and sync objects first.  Must be called when
// the window is resized or the swapchain goes out of date.
func (sf *Surface) ReInitSwapchain() {
	vk.DeviceWaitIdle(sf.Device.Device)
	sf.FreeSync()
	sf.InitSwapchain()
	sf.ConfigSync()
	for _, fr := range sf.Frames {
		fr.ConfigRender(sf.Render)
	}
}

// AcquireFrameSlot implements FrameSync for the Orchestrator:
// it waits on the current frame fence, so this frame index's command
// buffer can be re-recorded, then acquires the next swapchain image
// and waits on the fence of the frame that last used that image, so
// the image's slot resources are safe to rewrite.
// Re-initializes the swapchain and retries if it has gone out of date.
func (sf *Surface) AcquireFrameSlot() (int, error) {
	dev := sf.Device.Device
	fence := []vk.Fence{sf.RenderFences[sf.FrameIndex]}
	vk.WaitForFences(dev, 1, fence, vk.True, vk.MaxUint64)

	var idx uint32
	ret := vk.AcquireNextImage(dev, sf.Swapchain, vk.MaxUint64,
		sf.ImageAcquiredSemaphores[sf.FrameIndex], vk.NullFence, &idx)
	switch ret {
	case vk.ErrorOutOfDate:
		sf.ReInitSwapchain() // remakes the sync objects, resets FrameIndex
		ret = vk.AcquireNextImage(dev, sf.Swapchain, vk.MaxUint64,
			sf.ImageAcquiredSemaphores[sf.FrameIndex], vk.NullFence, &idx)
		if IsError(ret) {
			return -1, NewError(ret)
		}
		fence = []vk.Fence{sf.RenderFences[sf.FrameIndex]}
		vk.WaitForFences(dev, 1, fence, vk.True, vk.MaxUint64)
	case vk.Suboptimal, vk.Success:
	default:
		return -1, NewError(ret)
	}
	imgFence := sf.ImageFences[idx]
	if imgFence != vk.NullFence && imgFence != fence[0] {
		vk.WaitForFences(dev, 1, []vk.Fence{imgFence}, vk.True, vk.MaxUint64)
	}
	sf.ImageFences[idx] = fence[0]
	vk.ResetFences(dev, 1, fence)
	return int(idx), nil
}

// SubmitRender submits the given rendering command buffer, waiting on
// the image-acquired semaphore, signaling the render-done semaphore,
// and signaling the frame fence on completion.
func (sf *Surface) SubmitRender(cmd vk.CommandBuffer) {
	ret := vk.QueueSubmit(sf.Device.Queue, 1, []vk.SubmitInfo{{
		SType: vk.StructureTypeSubmitInfo,
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{sf.ImageAcquiredSemaphores[sf.FrameIndex]},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{cmd},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{sf.RenderDoneSemaphores[sf.FrameIndex]},
	}}, sf.RenderFences[sf.FrameIndex])
	IfPanic(NewError(ret))
}

// PresentImage presents the given swapchain image index, waiting on
// render-done, and advances the frame sync index.
func (sf *Surface) PresentImage(imageIdx int) error {
	ret := vk.QueuePresent(sf.Device.Queue, &vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{sf.RenderDoneSemaphores[sf.FrameIndex]},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{sf.Swapchain},
		PImageIndices:      []uint32{uint32(imageIdx)},
	})
	sf.FrameIndex = (sf.FrameIndex + 1) % sf.NFrames

	switch ret {
	case vk.ErrorOutOfDate, vk.Suboptimal:
		sf.ReInitSwapchain()
		return nil
	case vk.Success:
		return nil
	default:
		return NewError(ret)
	}
}

func (sf *Surface) Destroy() {
	vk.DeviceWaitIdle(sf.Device.Device)
	sf.FreeSync()
	for _, fr := range sf.Frames {
		fr.Destroy()
	}
	sf.Frames = nil
	if sf.Swapchain != vk.NullSwapchain {
		vk.DestroySwapchain(sf.Device.Device, sf.Swapchain, nil)
		sf.Swapchain = vk.NullSwapchain
	}
	if sf.Surface != vk.NullSurface {
		vk.DestroySurface(sf.GPU.Instance, sf.Surface, nil)
		sf.Surface = vk.NullSurface
	}
	sf.Device.Destroy()
	sf.GPU = nil
}
