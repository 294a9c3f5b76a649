// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import (
	"fmt"
	"log"
	"strings"

	"github.com/goki/ki/indent"
	"github.com/goki/ki/kit"
	vk "github.com/goki/vulkan"
	"goki.dev/ordmap"
)

// VarRoles are the roles a binding slot can play in the shaders.
type VarRoles int32

const (
	UndefRole VarRoles = iota

	// SampledTexture is a combined image sampler, sampled in the shader
	SampledTexture

	// UniformBuffer is a read-only uniform buffer, e.g., the transform matrix
	UniformBuffer

	VarRolesN
)

//go:generate stringer -type=VarRoles

var KiT_VarRoles = kit.Enums.AddEnum(VarRolesN, kit.NotBitFlag, nil)

// VkDescriptor returns the vulkan descriptor type for this role
func (vr VarRoles) VkDescriptor() vk.DescriptorType {
	return RoleDescriptors[vr]
}

// RoleDescriptors maps VarRoles into vulkan descriptor types
var RoleDescriptors = map[VarRoles]vk.DescriptorType{
	SampledTexture: vk.DescriptorTypeCombinedImageSampler,
	UniformBuffer:  vk.DescriptorTypeUniformBuffer,
}

// BindingSlot describes one slot in a BindingLayout: its index,
// name, role, and the shader stages that read it.
type BindingSlot struct {
	Slot    int                    `desc:"binding index in the descriptor set"`
	Name    string                 `desc:"name of the slot, for docs and errors"`
	Role    VarRoles               `desc:"role of the resource bound at this slot"`
	Shaders vk.ShaderStageFlagBits `desc:"bit flags for the set of shaders that read this slot"`
}

func (bs *BindingSlot) String() string {
	return fmt.Sprintf("%d:\t%s\t%s", bs.Slot, bs.Name, bs.Role.String())
}

// BindingLayout is the fixed resource contract between the CPU side
// and the shaders: an ordered set of binding slots that becomes a
// vulkan descriptor set layout and pipeline layout.
// Once Config has run on a device the layout is immutable: further
// AddSlot or Config calls return an error, and every descriptor
// write is checked against it with ValidateWrite.
type BindingLayout struct {
	Slots ordmap.Map[int, *BindingSlot] `desc:"slots ordered by binding index"`

	VkLayout         vk.DescriptorSetLayout `view:"-" desc:"vulkan descriptor set layout, created in Config"`
	VkPipelineLayout vk.PipelineLayout      `view:"-" desc:"vulkan pipeline layout over the descriptor set layout"`
}

// AddSlot adds a slot with given binding index, name, role, and
// the shaders that use it.  Duplicate indices and adding after
// Config are errors.
func (bl *BindingLayout) AddSlot(slot int, name string, role VarRoles, shaders ...ShaderTypes) (*BindingSlot, error) {
	if bl.VkLayout != nil {
		err := fmt.Errorf("vquad.BindingLayout: AddSlot %s after Config -- layout is immutable", name)
		if Debug {
			log.Println(err)
		}
		return nil, err
	}
	if _, has := bl.Slots.IdxByKeyTry(slot); has {
		err := fmt.Errorf("vquad.BindingLayout: slot %d already exists", slot)
		if Debug {
			log.Println(err)
		}
		return nil, err
	}
	bs := &BindingSlot{Slot: slot, Name: name, Role: role}
	for _, sh := range shaders {
		bs.Shaders |= ShaderStageFlags[sh]
	}
	bl.Slots.Add(slot, bs)
	return bs, nil
}

// SlotTry returns the slot at given binding index,
// returning error if not found.
func (bl *BindingLayout) SlotTry(slot int) (*BindingSlot, error) {
	i, has := bl.Slots.IdxByKeyTry(slot)
	if !has {
		return nil, fmt.Errorf("vquad.BindingLayout: no slot at binding %d", slot)
	}
	return bl.Slots.ValByIdx(i), nil
}

// Config creates the vulkan descriptor set layout and pipeline
// layout for the current slots.  After this the layout is immutable.
func (bl *BindingLayout) Config(dev vk.Device) error {
	if bl.VkLayout != nil {
		return fmt.Errorf("vquad.BindingLayout: Config called twice -- layout is immutable")
	}
	if bl.Slots.Len() == 0 {
		return fmt.Errorf("vquad.BindingLayout: no slots added")
	}
	var binds []vk.DescriptorSetLayoutBinding
	for _, kv := range bl.Slots.Order {
		bs := kv.Val
		binds = append(binds, vk.DescriptorSetLayoutBinding{
			Binding:         uint32(bs.Slot),
			DescriptorType:  bs.Role.VkDescriptor(),
			DescriptorCount: 1,
			StageFlags:      vk.ShaderStageFlags(bs.Shaders),
		})
	}
	var descLayout vk.DescriptorSetLayout
	ret := vk.CreateDescriptorSetLayout(dev, &vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(binds)),
		PBindings:    binds,
	}, nil, &descLayout)
	if err := NewError(ret); err != nil {
		return err
	}
	bl.VkLayout = descLayout

	var pipelineLayout vk.PipelineLayout
	ret = vk.CreatePipelineLayout(dev, &vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: 1,
		PSetLayouts:    []vk.DescriptorSetLayout{bl.VkLayout},
	}, nil, &pipelineLayout)
	if err := NewError(ret); err != nil {
		return err
	}
	bl.VkPipelineLayout = pipelineLayout
	return nil
}

// ValidateWrite checks that writing a resource of given role at given
// slot matches the contract.  Call before every descriptor write.
func (bl *BindingLayout) ValidateWrite(slot int, role VarRoles) error {
	bs, err := bl.SlotTry(slot)
	if err != nil {
		if Debug {
			log.Println(err)
		}
		return err
	}
	if bs.Role != role {
		err := fmt.Errorf("vquad.BindingLayout: slot %d (%s) has role %s, cannot write %s", slot, bs.Name, bs.Role.String(), role.String())
		if Debug {
			log.Println(err)
		}
		return err
	}
	return nil
}

// StringDoc returns info on the slots
func (bl *BindingLayout) StringDoc() string {
	ispc := 4
	var sb strings.Builder
	sb.WriteString("BindingLayout:\n")
	for _, kv := range bl.Slots.Order {
		sb.WriteString(fmt.Sprintf("%sSlot: %s\n", indent.Spaces(1, ispc), kv.Val.String()))
	}
	return sb.String()
}

func (bl *BindingLayout) Destroy(dev vk.Device) {
	if bl.VkPipelineLayout != nil {
		vk.DestroyPipelineLayout(dev, bl.VkPipelineLayout, nil)
		bl.VkPipelineLayout = nil
	}
	if bl.VkLayout != nil {
		vk.DestroyDescriptorSetLayout(dev, bl.VkLayout, nil)
		bl.VkLayout = nil
	}
}

// StdQuadLayout returns the standard textured-quad layout:
// slot 0 = sampled texture read by the fragment shader,
// slot 1 = transform uniform read by the vertex shader.
// This is the only layout the quad pipeline and frame slots use.
func StdQuadLayout() *BindingLayout {
	bl := &BindingLayout{}
	bl.AddSlot(0, "Tex", SampledTexture, FragmentShader)
	bl.AddSlot(1, "Mtx", UniformBuffer, VertexShader)
	return bl
}

///////////////////////////////////////////////////////////////////
// DescPool

// DescPool is a descriptor pool with a fixed number of sets.
// Alloc checks remaining capacity before calling into vulkan, so
// over-allocation fails deterministically at creation time instead
// of surfacing later at draw.
type DescPool struct {
	MaxSets int `desc:"number of sets the pool was created with"`
	NAlloc  int `desc:"number of sets allocated so far"`

	VkPool vk.DescriptorPool `view:"-" desc:"vulkan descriptor pool"`
}

// Config creates the pool with capacity for maxSets copies of the
// given layout.
func (dp *DescPool) Config(dev vk.Device, bl *BindingLayout, maxSets int) error {
	if maxSets <= 0 {
		return fmt.Errorf("vquad.DescPool: maxSets must be positive, got %d", maxSets)
	}
	roleCounts := map[VarRoles]int{}
	for _, kv := range bl.Slots.Order {
		roleCounts[kv.Val.Role]++
	}
	var pools []vk.DescriptorPoolSize
	for ri := UndefRole + 1; ri < VarRolesN; ri++ {
		n := roleCounts[ri]
		if n == 0 {
			continue
		}
		pools = append(pools, vk.DescriptorPoolSize{
			Type:            RoleDescriptors[ri],
			DescriptorCount: uint32(maxSets * n),
		})
	}
	var descPool vk.DescriptorPool
	ret := vk.CreateDescriptorPool(dev, &vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       uint32(maxSets),
		PoolSizeCount: uint32(len(pools)),
		PPoolSizes:    pools,
	}, nil, &descPool)
	if err := NewError(ret); err != nil {
		return err
	}
	dp.VkPool = descPool
	dp.MaxSets = maxSets
	dp.NAlloc = 0
	return nil
}

// Alloc allocates one descriptor set of the given layout from the
// pool.  Fails with an error before touching the device if the pool
// is exhausted.
func (dp *DescPool) Alloc(dev vk.Device, bl *BindingLayout) (vk.DescriptorSet, error) {
	if dp.NAlloc >= dp.MaxSets {
		err := fmt.Errorf("vquad.DescPool: exhausted: %d sets already allocated from pool of %d", dp.NAlloc, dp.MaxSets)
		if Debug {
			log.Println(err)
		}
		return vk.NullDescriptorSet, err
	}
	var dset vk.DescriptorSet
	ret := vk.AllocateDescriptorSets(dev, &vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     dp.VkPool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{bl.VkLayout},
	}, &dset)
	if err := NewError(ret); err != nil {
		return vk.NullDescriptorSet, err
	}
	dp.NAlloc++
	return dset, nil
}

func (dp *DescPool) Destroy(dev vk.Device) {
	if dp.VkPool == nil {
		return
	}
	vk.DestroyDescriptorPool(dev, dp.VkPool, nil)
	dp.VkPool = nil
	dp.MaxSets = 0
	dp.NAlloc = 0
}
