// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import (
	"fmt"

	"github.com/goki/ki/kit"
	vk "github.com/goki/vulkan"
)

// ImageLayouts are the tracked image layout states for a texture Image,
// recorded on the Image and advanced only through valid transitions.
// A texture can only be bound for sampling once it reaches
// LayoutShaderReadOnly.
type ImageLayouts int32

const (
	// LayoutUndefined is the initial state of a freshly created image --
	// its contents are undefined and it cannot be read by anything.
	LayoutUndefined ImageLayouts = iota

	// LayoutTransferDst is the state during upload, when the image is
	// the destination of a buffer-to-image copy.
	LayoutTransferDst

	// LayoutShaderReadOnly is the final state where the image can be
	// sampled in the fragment shader.  Uploads always end here.
	LayoutShaderReadOnly

	ImageLayoutsN
)

//go:generate stringer -type=ImageLayouts

var KiT_ImageLayouts = kit.Enums.AddEnum(ImageLayoutsN, kit.NotBitFlag, nil)

// VkLayout returns the vulkan image layout for this state
func (il ImageLayouts) VkLayout() vk.ImageLayout {
	return VulkanImageLayouts[il]
}

// VulkanImageLayouts maps ImageLayouts to vulkan layouts
var VulkanImageLayouts = map[ImageLayouts]vk.ImageLayout{
	LayoutUndefined:      vk.ImageLayoutUndefined,
	LayoutTransferDst:    vk.ImageLayoutTransferDstOptimal,
	LayoutShaderReadOnly: vk.ImageLayoutShaderReadOnlyOptimal,
}

// Transition has the pipeline barrier parameters for one valid edge
// in the image layout state machine.
type Transition struct {
	From      ImageLayouts
	To        ImageLayouts
	SrcAccess vk.AccessFlags
	DstAccess vk.AccessFlags
	SrcStage  vk.PipelineStageFlags
	DstStage  vk.PipelineStageFlags
}

// TransitionInfo returns the barrier parameters for the given edge.
// Only Undefined -> TransferDst and TransferDst -> ShaderReadOnly
// are valid -- any other pair returns an error and must not be recorded.
func TransitionInfo(from, to ImageLayouts) (Transition, error) {
	tr := Transition{From: from, To: to}
	switch {
	case from == LayoutUndefined && to == LayoutTransferDst:
		tr.SrcAccess = 0
		tr.DstAccess = vk.AccessFlags(vk.AccessTransferWriteBit)
		tr.SrcStage = vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit)
		tr.DstStage = vk.PipelineStageFlags(vk.PipelineStageTransferBit)
	case from == LayoutTransferDst && to == LayoutShaderReadOnly:
		tr.SrcAccess = vk.AccessFlags(vk.AccessTransferWriteBit)
		tr.DstAccess = vk.AccessFlags(vk.AccessShaderReadBit)
		tr.SrcStage = vk.PipelineStageFlags(vk.PipelineStageTransferBit)
		tr.DstStage = vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit)
	default:
		return tr, fmt.Errorf("vquad: unsupported image layout transition: %s -> %s", from.String(), to.String())
	}
	return tr, nil
}
