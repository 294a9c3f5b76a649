// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This is initially adapted from https://github.com/vulkan-go/asche
// Copyright © 2017 Maxim Kupriianov <max@kc.vc>, under the MIT License

package vquad

import vk "github.com/goki/vulkan"

// CmdPool is a command pool with one current command buffer,
// and optionally a set of per-frame buffers (see NewBuffers).
type CmdPool struct {
	Pool  vk.CommandPool
	Buff  vk.CommandBuffer
	Buffs []vk.CommandBuffer
}

// ConfigTransient configures the pool for transient command buffers,
// used for one-time uploads and transfers.
func (cp *CmdPool) ConfigTransient(dv *Device) {
	var cmdPool vk.CommandPool
	ret := vk.CreateCommandPool(dv.Device, &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: dv.QueueIndex,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateTransientBit),
	}, nil, &cmdPool)
	IfPanic(NewError(ret))
	cp.Pool = cmdPool
}

// ConfigResettable configures the pool for repeatedly re-recorded
// command buffers, used for per-frame rendering.
func (cp *CmdPool) ConfigResettable(dv *Device) {
	var cmdPool vk.CommandPool
	ret := vk.CreateCommandPool(dv.Device, &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: dv.QueueIndex,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}, nil, &cmdPool)
	IfPanic(NewError(ret))
	cp.Pool = cmdPool
}

// NewBuffer allocates a new primary command buffer in the pool,
// sets it as the current Buff, and returns it.
func (cp *CmdPool) NewBuffer(dv *Device) vk.CommandBuffer {
	var cmdBuff = make([]vk.CommandBuffer, 1)
	ret := vk.AllocateCommandBuffers(dv.Device, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        cp.Pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}, cmdBuff)
	IfPanic(NewError(ret))
	cp.Buff = cmdBuff[0]
	return cp.Buff
}

// NewBuffers allocates n primary command buffers in the pool and
// saves them in Buffs, one per frame in flight, so a buffer is only
// re-recorded once its frame's fence has been waited.
func (cp *CmdPool) NewBuffers(dv *Device, n int) []vk.CommandBuffer {
	cmdBuffs := make([]vk.CommandBuffer, n)
	ret := vk.AllocateCommandBuffers(dv.Device, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        cp.Pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: uint32(n),
	}, cmdBuffs)
	IfPanic(NewError(ret))
	cp.Buffs = cmdBuffs
	return cp.Buffs
}

// BeginCmdOneTime allocates a new buffer as the current Buff and
// does BeginCommandBuffer on it with the one-time-submit flag.
func (cp *CmdPool) BeginCmdOneTime(dv *Device) vk.CommandBuffer {
	CmdBeginOneTime(cp.NewBuffer(dv))
	return cp.Buff
}

// EndSubmitWaitFree ends the current buffer, submits it to the device
// queue, waits for the queue to finish, and frees the buffer.
func (cp *CmdPool) EndSubmitWaitFree(dv *Device) {
	cp.EndSubmitWait(dv)
	cp.FreeBuffer(dv)
}

// FreeBuffer frees the current buffer without submitting it,
// abandoning anything recorded so far.
func (cp *CmdPool) FreeBuffer(dv *Device) {
	if cp.Buff == nil {
		return
	}
	vk.FreeCommandBuffers(dv.Device, cp.Pool, 1, []vk.CommandBuffer{cp.Buff})
	cp.Buff = nil
}

// EndSubmitWait ends the current buffer, submits it, and waits for
// the queue to finish.
func (cp *CmdPool) EndSubmitWait(dv *Device) {
	CmdEnd(cp.Buff)
	CmdSubmit(cp.Buff, dv)
	vk.QueueWaitIdle(dv.Queue)
}

// Destroy the command pool
func (cp *CmdPool) Destroy(dev vk.Device) {
	if cp.Pool == nil {
		return
	}
	vk.DestroyCommandPool(dev, cp.Pool, nil)
	cp.Pool = nil
}

// CmdBegin does BeginCommandBuffer on given command buffer
func CmdBegin(cmd vk.CommandBuffer) {
	ret := vk.BeginCommandBuffer(cmd, &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	})
	IfPanic(NewError(ret))
}

// CmdBeginOneTime does BeginCommandBuffer with the one-time-submit flag
func CmdBeginOneTime(cmd vk.CommandBuffer) {
	ret := vk.BeginCommandBuffer(cmd, &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	})
	IfPanic(NewError(ret))
}

// CmdResetBegin resets the command buffer and begins recording
func CmdResetBegin(cmd vk.CommandBuffer) {
	vk.ResetCommandBuffer(cmd, 0)
	CmdBegin(cmd)
}

// CmdEnd does EndCommandBuffer on given command buffer
func CmdEnd(cmd vk.CommandBuffer) {
	ret := vk.EndCommandBuffer(cmd)
	IfPanic(NewError(ret))
}

// CmdSubmit submits given command buffer to the device queue,
// without any semaphores or fences.
func CmdSubmit(cmd vk.CommandBuffer, dv *Device) {
	ret := vk.QueueSubmit(dv.Queue, 1, []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{cmd},
	}}, vk.NullFence)
	IfPanic(NewError(ret))
}
