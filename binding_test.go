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

func TestStdQuadLayout(t *testing.T) {
	bl := StdQuadLayout()
	assert.Equal(t, 2, bl.Slots.Len())

	tex, err := bl.SlotTry(0)
	assert.NoError(t, err)
	assert.Equal(t, "Tex", tex.Name)
	assert.Equal(t, SampledTexture, tex.Role)
	assert.Equal(t, ShaderStageFlags[FragmentShader], tex.Shaders)
	assert.Equal(t, vk.DescriptorTypeCombinedImageSampler, tex.Role.VkDescriptor())

	mtx, err := bl.SlotTry(1)
	assert.NoError(t, err)
	assert.Equal(t, "Mtx", mtx.Name)
	assert.Equal(t, UniformBuffer, mtx.Role)
	assert.Equal(t, ShaderStageFlags[VertexShader], mtx.Shaders)
	assert.Equal(t, vk.DescriptorTypeUniformBuffer, mtx.Role.VkDescriptor())

	_, err = bl.SlotTry(2)
	assert.Error(t, err)
}

func TestAddSlotDuplicate(t *testing.T) {
	bl := &BindingLayout{}
	_, err := bl.AddSlot(0, "Tex", SampledTexture, FragmentShader)
	assert.NoError(t, err)
	_, err = bl.AddSlot(0, "Tex2", SampledTexture, FragmentShader)
	assert.Error(t, err)
	assert.Equal(t, 1, bl.Slots.Len())
}

func TestLayoutImmutable(t *testing.T) {
	bl := StdQuadLayout()
	// fake a configured layout so no device is needed
	var dl vk.DescriptorSetLayout
	bl.VkLayout = vk.DescriptorSetLayout(unsafe.Add(unsafe.Pointer(dl), 1))

	_, err := bl.AddSlot(2, "Extra", UniformBuffer, VertexShader)
	assert.Error(t, err)
	assert.Equal(t, 2, bl.Slots.Len())

	err = bl.Config(nil)
	assert.Error(t, err)
}

func TestConfigEmptyLayout(t *testing.T) {
	bl := &BindingLayout{}
	assert.Error(t, bl.Config(nil))
}

func TestValidateWrite(t *testing.T) {
	bl := StdQuadLayout()
	assert.NoError(t, bl.ValidateWrite(0, SampledTexture))
	assert.NoError(t, bl.ValidateWrite(1, UniformBuffer))

	// role mismatches
	assert.Error(t, bl.ValidateWrite(0, UniformBuffer))
	assert.Error(t, bl.ValidateWrite(1, SampledTexture))

	// no such slot
	assert.Error(t, bl.ValidateWrite(2, UniformBuffer))
	assert.Error(t, bl.ValidateWrite(-1, SampledTexture))
}

func TestDescPoolExhaustion(t *testing.T) {
	bl := StdQuadLayout()
	dp := &DescPool{MaxSets: 2, NAlloc: 2}
	// capacity is checked before any device call
	_, err := dp.Alloc(nil, bl)
	assert.Error(t, err)

	dp.NAlloc = 3
	_, err = dp.Alloc(nil, bl)
	assert.Error(t, err)
}

func TestLayoutStringDoc(t *testing.T) {
	bl := StdQuadLayout()
	doc := bl.StringDoc()
	assert.Contains(t, doc, "Tex")
	assert.Contains(t, doc, "Mtx")
	assert.Contains(t, doc, SampledTexture.String())
	assert.Contains(t, doc, UniformBuffer.String())
}
