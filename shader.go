// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import (
	"log"
	"os"
	"unsafe"

	"github.com/goki/ki/kit"
	vk "github.com/goki/vulkan"
)

// Shader manages a single shader program
type Shader struct {
	Name     string
	Type     ShaderTypes
	VkModule vk.ShaderModule `desc:"compiled shader module"`
}

// OpenFile loads given SPIR-V ".spv" code from file for the Shader.
func (sh *Shader) OpenFile(dev vk.Device, fname string) error {
	b, err := os.ReadFile(fname)
	if err != nil {
		log.Printf("vquad.Shader OpenFile: %s error: %v\n", fname, err)
		return err
	}
	return sh.OpenCode(dev, b)
}

// OpenCode loads given SPIR-V code for the Shader.
func (sh *Shader) OpenCode(dev vk.Device, code []byte) error {
	uicode := SliceUint32(code)
	var module vk.ShaderModule
	ret := vk.CreateShaderModule(dev, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint64(len(code)),
		PCode:    uicode,
	}, nil, &module)
	if err := NewError(ret); err != nil {
		log.Printf("vquad.Shader OpenCode: %s error: %v\n", sh.Name, err)
		return err
	}
	sh.VkModule = module
	return nil
}

// Free deletes the shader module, which can be done after the
// pipeline is created.
func (sh *Shader) Free(dev vk.Device) {
	if sh.VkModule == nil {
		return
	}
	vk.DestroyShaderModule(dev, sh.VkModule, nil)
	sh.VkModule = nil
}

// SliceUint32 returns a uint32 slice view of a byte slice,
// for shader code.
func SliceUint32(data []byte) []uint32 {
	const m = 0x7fffffff
	return (*[m / 4]uint32)(unsafe.Pointer(unsafe.SliceData(data)))[:len(data)/4]
}

// ShaderTypes is a list of GPU shader types
type ShaderTypes int32

const (
	VertexShader ShaderTypes = iota
	TessCtrlShader
	TessEvalShader
	GeometryShader
	FragmentShader
	ComputeShader
	ShaderTypesN
)

//go:generate stringer -type=ShaderTypes

var KiT_ShaderTypes = kit.Enums.AddEnum(ShaderTypesN, kit.NotBitFlag, nil)

// ShaderStageFlags maps shader types into their vulkan stage flags
var ShaderStageFlags = map[ShaderTypes]vk.ShaderStageFlagBits{
	VertexShader:   vk.ShaderStageVertexBit,
	TessCtrlShader: vk.ShaderStageTessellationControlBit,
	TessEvalShader: vk.ShaderStageTessellationEvaluationBit,
	GeometryShader: vk.ShaderStageGeometryBit,
	FragmentShader: vk.ShaderStageFragmentBit,
	ComputeShader:  vk.ShaderStageComputeBit,
}
