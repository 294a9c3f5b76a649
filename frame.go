// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	vk "github.com/goki/vulkan"
)

// TransformSize is the byte size of the per-frame transform uniform,
// one 4x4 float32 matrix.
const TransformSize = 16 * 4

// FrameSlot holds the per-swapchain-image rendering resources:
// one mapped uniform buffer for the transform, and one descriptor
// set bound once at config to the shared texture and that buffer.
// While slot N is being prepared, the other slots' buffers and sets
// are untouched, so writes here never race frames in flight.
type FrameSlot struct {
	Index int `desc:"index of this slot, = swapchain image index"`

	// mapped uniform buffer holding the transform matrix
	Unif HostBuff `desc:"mapped uniform buffer holding the transform matrix"`

	// [view: -] descriptor set for this slot, written once at config
	DescSet vk.DescriptorSet `view:"-" desc:"descriptor set for this slot, written once at config"`
}

// WriteTransform writes the transform matrix into this slot's mapped
// uniform memory.  No device calls are involved, and writing the same
// matrix again leaves the memory identical.
func (fs *FrameSlot) WriteTransform(mtx mgl32.Mat4) {
	fs.Unif.CopyBytes(unsafe.Pointer(&mtx))
}

// FrameSlots manages the per-frame slots for all swapchain images,
// with one shared descriptor pool sized to exactly the slot count.
type FrameSlots struct {
	Slots []FrameSlot `desc:"one slot per swapchain image"`
	Pool  DescPool    `desc:"shared pool, sized to the number of slots"`
}

// Config allocates and binds n frame slots against the given layout
// and texture.  The texture must have completed upload, i.e., be in
// LayoutShaderReadOnly.  The pool is created with exactly n sets, so
// any further allocation from it fails.
func (fs *FrameSlots) Config(gp *GPU, dev vk.Device, lay *BindingLayout, tx *Texture, n int) error {
	if n <= 0 {
		return fmt.Errorf("vquad.FrameSlots: need at least 1 slot, got %d", n)
	}
	if tx.Image.Layout != LayoutShaderReadOnly {
		return fmt.Errorf("vquad.FrameSlots: texture layout is %s, must be %s (upload not completed?)",
			tx.Image.Layout.String(), LayoutShaderReadOnly.String())
	}
	if err := lay.ValidateWrite(0, SampledTexture); err != nil {
		return err
	}
	if err := lay.ValidateWrite(1, UniformBuffer); err != nil {
		return err
	}
	if err := fs.Pool.Config(dev, lay, n); err != nil {
		return err
	}
	fs.Slots = make([]FrameSlot, n)
	for i := range fs.Slots {
		sl := &fs.Slots[i]
		sl.Index = i
		sl.Unif.Alloc(gp, dev, vk.BufferUsageUniformBufferBit, TransformSize)
		ds, err := fs.Pool.Alloc(dev, lay)
		if err != nil {
			return err
		}
		sl.DescSet = ds
		vk.UpdateDescriptorSets(dev, 2, []vk.WriteDescriptorSet{{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          sl.DescSet,
			DstBinding:      0,
			DescriptorCount: 1,
			DescriptorType:  SampledTexture.VkDescriptor(),
			PImageInfo: []vk.DescriptorImageInfo{{
				ImageLayout: LayoutShaderReadOnly.VkLayout(),
				ImageView:   tx.Image.View,
				Sampler:     tx.VkSampler,
			}},
		}, {
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          sl.DescSet,
			DstBinding:      1,
			DescriptorCount: 1,
			DescriptorType:  UniformBuffer.VkDescriptor(),
			PBufferInfo: []vk.DescriptorBufferInfo{{
				Buffer: sl.Unif.Buff,
				Offset: 0,
				Range:  vk.DeviceSize(TransformSize),
			}},
		}}, 0, nil)
	}
	return nil
}

// NSlots returns the number of configured slots
func (fs *FrameSlots) NSlots() int {
	return len(fs.Slots)
}

func (fs *FrameSlots) Destroy(dev vk.Device) {
	for i := range fs.Slots {
		fs.Slots[i].Unif.Free(dev)
	}
	fs.Slots = nil
	fs.Pool.Destroy(dev)
}
