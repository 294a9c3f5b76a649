// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import (
	"log"
	"unsafe"

	vk "github.com/goki/vulkan"
)

// HostBuff is a host-visible buffer that remains memory mapped
// for its entire lifetime.  It is used for texture upload staging
// and for the per-frame transform uniforms.
type HostBuff struct {
	GPU *GPU

	// allocated buffer size in bytes
	Size int `desc:"allocated buffer size in bytes"`

	// [view: -] logical buffer descriptor
	Buff vk.Buffer `view:"-" desc:"logical buffer descriptor"`

	// [view: -] host CPU-visible memory backing the buffer
	Mem vk.DeviceMemory `view:"-" desc:"host CPU-visible memory backing the buffer"`

	// [view: -] memory mapped pointer into host memory -- remains mapped
	Ptr unsafe.Pointer `view:"-" desc:"memory mapped pointer into host memory -- remains mapped"`
}

// Alloc allocates and maps a host-visible buffer of given size and usage,
// freeing any existing allocation first.
func (hb *HostBuff) Alloc(gp *GPU, dev vk.Device, usage vk.BufferUsageFlagBits, bsz int) {
	if bsz == hb.Size {
		return
	}
	hb.Free(dev)
	if bsz == 0 {
		return
	}
	hb.GPU = gp
	hb.Buff = NewBuffer(dev, bsz, usage)
	hb.Mem = AllocBuffMem(gp, dev, hb.Buff, vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit)
	hb.Size = bsz
	hb.Ptr = MapMemory(dev, hb.Mem, hb.Size)
}

// Bytes returns the mapped memory as a byte slice,
// which can be written to directly.
func (hb *HostBuff) Bytes() []byte {
	const m = 0x7fffffff
	return (*[m]byte)(hb.Ptr)[:hb.Size]
}

// Floats32 returns the mapped memory as a float32 slice,
// which can be written to directly.
func (hb *HostBuff) Floats32() []float32 {
	const m = 0x7fffffff
	nf := hb.Size / 4
	return (*[m]float32)(hb.Ptr)[:nf]
}

// CopyBytes copies bytes from given source pointer into mapped memory.
func (hb *HostBuff) CopyBytes(srcPtr unsafe.Pointer) {
	dst := hb.Bytes()
	const m = 0x7fffffff
	src := (*[m]byte)(srcPtr)[:hb.Size]
	copy(dst, src)
}

// Free unmaps and frees the buffer memory.
func (hb *HostBuff) Free(dev vk.Device) {
	if hb.Size == 0 {
		return
	}
	vk.UnmapMemory(dev, hb.Mem)
	FreeBuffMem(dev, &hb.Mem)
	DestroyBuffer(dev, &hb.Buff)
	hb.Size = 0
	hb.Ptr = nil
}

/////////////////////////////////////////////////////////////////////
// Basic memory functions

// NewBuffer makes a buffer of given size, usage
func NewBuffer(dev vk.Device, size int, usage vk.BufferUsageFlagBits) vk.Buffer {
	if size == 0 {
		return vk.NullBuffer
	}
	var buffer vk.Buffer
	ret := vk.CreateBuffer(dev, &vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Usage:       vk.BufferUsageFlags(usage),
		Size:        vk.DeviceSize(size),
		SharingMode: vk.SharingModeExclusive,
	}, nil, &buffer)
	IfPanic(NewError(ret))
	return buffer
}

// AllocBuffMem allocates memory for given buffer, with given properties
func AllocBuffMem(gp *GPU, dev vk.Device, buffer vk.Buffer, props vk.MemoryPropertyFlagBits) vk.DeviceMemory {
	// Ask device about its memory requirements.
	var memReqs vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(dev, buffer, &memReqs)
	memReqs.Deref()

	memProps := gp.MemoryProps
	memType, ok := FindRequiredMemoryType(memProps, vk.MemoryPropertyFlagBits(memReqs.MemoryTypeBits), props)
	if !ok {
		log.Println("vulkan warning: failed to find required memory type")
	}

	var memory vk.DeviceMemory
	ret := vk.AllocateMemory(dev, &vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  memReqs.Size,
		MemoryTypeIndex: memType,
	}, nil, &memory)
	IfPanic(NewError(ret))
	vk.BindBufferMemory(dev, buffer, memory, 0)
	return memory
}

// MapMemory maps the buffer memory, returning a pointer into start of buffer memory
func MapMemory(dev vk.Device, mem vk.DeviceMemory, size int) unsafe.Pointer {
	var buffPtr unsafe.Pointer
	ret := vk.MapMemory(dev, mem, 0, vk.DeviceSize(size), 0, &buffPtr)
	if IsError(ret) {
		log.Printf("vulkan MapMemory warning: failed to map device memory for data (len=%d)", size)
		return nil
	}
	return buffPtr
}

// FreeBuffMem frees given device memory to nil
func FreeBuffMem(dev vk.Device, memory *vk.DeviceMemory) {
	if *memory == vk.NullDeviceMemory {
		return
	}
	vk.FreeMemory(dev, *memory, nil)
	*memory = vk.NullDeviceMemory
}

// DestroyBuffer destroys given buffer and nils the pointer
func DestroyBuffer(dev vk.Device, buff *vk.Buffer) {
	if *buff == vk.NullBuffer {
		return
	}
	vk.DestroyBuffer(dev, *buff, nil)
	*buff = vk.NullBuffer
}

// FindRequiredMemoryType finds a memory type index on the device
// matching the given requirements.
func FindRequiredMemoryType(props vk.PhysicalDeviceMemoryProperties,
	deviceRequirements, hostRequirements vk.MemoryPropertyFlagBits) (uint32, bool) {

	for i := uint32(0); i < vk.MaxMemoryTypes; i++ {
		if deviceRequirements&(vk.MemoryPropertyFlagBits(1)<<i) != 0 {
			props.MemoryTypes[i].Deref()
			flags := props.MemoryTypes[i].PropertyFlags
			if flags&vk.MemoryPropertyFlags(hostRequirements) != 0 {
				return i, true
			}
		}
	}
	return 0, false
}
