// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import (
	"testing"

	"github.com/stretchr/testify/assert"

	vk "github.com/goki/vulkan"
)

func TestTransitionUploadEdges(t *testing.T) {
	tr, err := TransitionInfo(LayoutUndefined, LayoutTransferDst)
	assert.NoError(t, err)
	assert.Equal(t, vk.AccessFlags(0), tr.SrcAccess)
	assert.Equal(t, vk.AccessFlags(vk.AccessTransferWriteBit), tr.DstAccess)
	assert.Equal(t, vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit), tr.SrcStage)
	assert.Equal(t, vk.PipelineStageFlags(vk.PipelineStageTransferBit), tr.DstStage)

	tr, err = TransitionInfo(LayoutTransferDst, LayoutShaderReadOnly)
	assert.NoError(t, err)
	assert.Equal(t, vk.AccessFlags(vk.AccessTransferWriteBit), tr.SrcAccess)
	assert.Equal(t, vk.AccessFlags(vk.AccessShaderReadBit), tr.DstAccess)
	assert.Equal(t, vk.PipelineStageFlags(vk.PipelineStageTransferBit), tr.SrcStage)
	assert.Equal(t, vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit), tr.DstStage)
}

func TestTransitionInvalidEdges(t *testing.T) {
	invalid := [][2]ImageLayouts{
		{LayoutUndefined, LayoutShaderReadOnly}, // must go through TransferDst
		{LayoutUndefined, LayoutUndefined},
		{LayoutTransferDst, LayoutUndefined},
		{LayoutTransferDst, LayoutTransferDst},
		{LayoutShaderReadOnly, LayoutTransferDst}, // no re-upload
		{LayoutShaderReadOnly, LayoutUndefined},
		{LayoutShaderReadOnly, LayoutShaderReadOnly},
	}
	for _, iv := range invalid {
		_, err := TransitionInfo(iv[0], iv[1])
		assert.Error(t, err, "transition %s -> %s", iv[0].String(), iv[1].String())
	}
}

func TestImageLayoutsString(t *testing.T) {
	assert.Equal(t, "LayoutTransferDst", LayoutTransferDst.String())
	var il ImageLayouts
	assert.NoError(t, (&il).FromString("LayoutShaderReadOnly"))
	assert.Equal(t, LayoutShaderReadOnly, il)

	assert.Equal(t, vk.ImageLayoutUndefined, LayoutUndefined.VkLayout())
	assert.Equal(t, vk.ImageLayoutTransferDstOptimal, LayoutTransferDst.VkLayout())
	assert.Equal(t, vk.ImageLayoutShaderReadOnlyOptimal, LayoutShaderReadOnly.VkLayout())
}
