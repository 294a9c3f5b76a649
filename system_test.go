// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	vk "github.com/goki/vulkan"
)

var _ FrameSync = (*Surface)(nil)

// TestRenderCmdPerFrame verifies that each frame index records into its
// own command buffer, so resetting one never touches a buffer that a
// prior frame may still have pending.
func TestRenderCmdPerFrame(t *testing.T) {
	sy := &System{}
	nf := 3
	var base vk.CommandBuffer
	for i := 0; i < nf; i++ {
		cb := vk.CommandBuffer(unsafe.Add(unsafe.Pointer(base), 8*(i+1)))
		sy.CmdPool.Buffs = append(sy.CmdPool.Buffs, cb)
	}
	seen := map[vk.CommandBuffer]bool{}
	for i := 0; i < nf; i++ {
		cmd := sy.RenderCmd(i)
		assert.Equal(t, sy.CmdPool.Buffs[i], cmd)
		assert.False(t, seen[cmd], "frame %d shares a command buffer with an earlier frame", i)
		seen[cmd] = true
	}
}
