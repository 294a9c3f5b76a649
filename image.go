// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This is initially adapted from https://github.com/vulkan-go/asche
// Copyright © 2017 Maxim Kupriianov <max@kc.vc>, under the MIT License

package vquad

import (
	"fmt"
	"image"
	"log"

	vk "github.com/goki/vulkan"
)

// ImageFormat describes the size and format of an Image
type ImageFormat struct {
	Size   image.Point `desc:"Size of image"`
	Format vk.Format   `desc:"Image format -- FormatR8g8b8a8Srgb is a standard default"`
}

func (im *ImageFormat) Defaults() {
	im.Format = vk.FormatR8g8b8a8Srgb
}

func (im *ImageFormat) SetSize(w, h int) {
	im.Size = image.Point{X: w, Y: h}
}

func (im *ImageFormat) Set(w, h int, ft vk.Format) {
	im.SetSize(w, h)
	im.Format = ft
}

// Size32 returns size as uint32 values
func (im *ImageFormat) Size32() (width, height uint32) {
	width = uint32(im.Size.X)
	height = uint32(im.Size.Y)
	return
}

// Aspect returns the width / height aspect ratio of the image
func (im *ImageFormat) Aspect() float32 {
	if im.Size.Y == 0 {
		return 1
	}
	return float32(im.Size.X) / float32(im.Size.Y)
}

// ByteSize returns the total number of bytes for an RGBA image of our size
func (im *ImageFormat) ByteSize() int {
	return 4 * im.Size.X * im.Size.Y
}

func (im *ImageFormat) String() string {
	return fmt.Sprintf("Size: %v  Format: %d", im.Size, im.Format)
}

// Image represents a vulkan image with an associated ImageView,
// and the current tracked Layout of the image.  All layout changes
// go through Transition, so Layout always names the actual device
// layout after the recorded commands execute.
type Image struct {
	Format ImageFormat  `desc:"format & size of image"`
	Image  vk.Image     `desc:"vulkan image handle"`
	View   vk.ImageView `desc:"vulkan image view"`
	Dev    vk.Device    `desc:"device the image is allocated on"`

	// current layout state, advanced by Transition
	Layout ImageLayouts `desc:"current layout state, advanced by Transition"`

	// [view: -] device-local memory backing the image, if we allocated it
	Mem vk.DeviceMemory `view:"-" desc:"device-local memory backing the image, if we allocated it"`
}

// HasView returns true if the image is set and has a view
func (im *Image) HasView() bool {
	return im.View != nil
}

// SetVkImage sets an externally-owned image (e.g., a swapchain image)
// and makes a standard view for it.  Any existing view is destroyed.
func (im *Image) SetVkImage(dev vk.Device, img vk.Image) {
	im.DestroyView()
	im.Image = img
	im.Dev = dev
	im.ConfigStdView()
}

// AllocImage allocates a new device-local 2D image of the current
// Format, usable as a transfer destination and sampled texture.
// The image starts in LayoutUndefined.
func (im *Image) AllocImage(gp *GPU, dev vk.Device) {
	im.Dev = dev
	w, h := im.Format.Size32()
	var img vk.Image
	ret := vk.CreateImage(dev, &vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Format:    im.Format.Format,
		Extent: vk.Extent3D{
			Width:  w,
			Height: h,
			Depth:  1,
		},
		MipLevels:     1,
		ArrayLayers:   1,
		Samples:       vk.SampleCount1Bit,
		Tiling:        vk.ImageTilingOptimal,
		Usage:         vk.ImageUsageFlags(vk.ImageUsageTransferDstBit | vk.ImageUsageSampledBit),
		InitialLayout: vk.ImageLayoutUndefined,
		SharingMode:   vk.SharingModeExclusive,
	}, nil, &img)
	IfPanic(NewError(ret))
	im.Image = img
	im.Layout = LayoutUndefined

	var memReqs vk.MemoryRequirements
	vk.GetImageMemoryRequirements(dev, im.Image, &memReqs)
	memReqs.Deref()

	memType, ok := FindRequiredMemoryType(gp.MemoryProps, vk.MemoryPropertyFlagBits(memReqs.MemoryTypeBits), vk.MemoryPropertyDeviceLocalBit)
	if !ok {
		log.Println("vulkan warning: failed to find device local memory type for image")
	}
	var memory vk.DeviceMemory
	ret = vk.AllocateMemory(dev, &vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  memReqs.Size,
		MemoryTypeIndex: memType,
	}, nil, &memory)
	IfPanic(NewError(ret))
	vk.BindImageMemory(dev, im.Image, memory, 0)
	im.Mem = memory
}

// ConfigStdView makes a standard 2D image view, for current image,
// format, and device.
func (im *Image) ConfigStdView() {
	im.DestroyView()
	var view vk.ImageView
	ret := vk.CreateImageView(im.Dev, &vk.ImageViewCreateInfo{
		SType:  vk.StructureTypeImageViewCreateInfo,
		Format: im.Format.Format,
		Components: vk.ComponentMapping{ // this is the default anyway
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
		ViewType: vk.ImageViewType2d,
		Image:    im.Image,
	}, nil, &view)
	IfPanic(NewError(ret))
	im.View = view
}

// Transition records a pipeline barrier on cmd moving the image to
// the given layout state, and updates the tracked Layout.
// Returns an error, recording nothing, if the edge is not a valid
// one in the layout state machine.
func (im *Image) Transition(cmd vk.CommandBuffer, to ImageLayouts) error {
	tr, err := TransitionInfo(im.Layout, to)
	if err != nil {
		if Debug {
			log.Println(err)
		}
		return err
	}
	vk.CmdPipelineBarrier(cmd, tr.SrcStage, tr.DstStage, 0, 0, nil, 0, nil,
		1, []vk.ImageMemoryBarrier{{
			SType:               vk.StructureTypeImageMemoryBarrier,
			OldLayout:           tr.From.VkLayout(),
			NewLayout:           tr.To.VkLayout(),
			SrcAccessMask:       tr.SrcAccess,
			DstAccessMask:       tr.DstAccess,
			SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
			DstQueueFamilyIndex: vk.QueueFamilyIgnored,
			Image:               im.Image,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		}})
	im.Layout = to
	return nil
}

// CopyRec returns the BufferImageCopy region for transferring the
// full tightly-packed image from a staging buffer.
func (im *Image) CopyRec() vk.BufferImageCopy {
	w, h := im.Format.Size32()
	return vk.BufferImageCopy{
		BufferOffset:      0,
		BufferRowLength:   0, // packed
		BufferImageHeight: 0,
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LayerCount: 1,
		},
		ImageOffset: vk.Offset3D{},
		ImageExtent: vk.Extent3D{
			Width:  w,
			Height: h,
			Depth:  1,
		},
	}
}

// DestroyView destroys any existing view
func (im *Image) DestroyView() {
	if im.View == nil {
		return
	}
	vk.DestroyImageView(im.Dev, im.View, nil)
	im.View = nil
}

// Destroy destroys the view, and the image and its memory if owned
func (im *Image) Destroy() {
	im.DestroyView()
	if im.Mem != vk.NullDeviceMemory {
		vk.DestroyImage(im.Dev, im.Image, nil)
		vk.FreeMemory(im.Dev, im.Mem, nil)
		im.Mem = vk.NullDeviceMemory
	}
	im.SetNil()
}

// SetNil sets everything to nil, for shared image
func (im *Image) SetNil() {
	im.View = nil
	im.Image = nil
	im.Dev = nil
	im.Layout = LayoutUndefined
}
