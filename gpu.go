// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This is initially adapted from https://github.com/vulkan-go/asche
// Copyright © 2017 Maxim Kupriianov <max@kc.vc>, under the MIT License

package vquad

import (
	"errors"
	"log"
	"strings"

	vk "github.com/goki/vulkan"
)

// TheGPU is a global for the last GPU configured, used in various
// places that do not have direct access.
var TheGPU *GPU

// GPU represents the vulkan instance and physical GPU hardware.
// Config creates the instance and selects the device.
type GPU struct {
	Instance vk.Instance       `desc:"vulkan instance handle"`
	GPU      vk.PhysicalDevice `desc:"the physical GPU hardware device"`

	Name string `desc:"name of application passed to vulkan"`

	DeviceName string `desc:"name of the physical device, from its properties"`

	GPUProps vk.PhysicalDeviceProperties `desc:"properties of the selected physical device"`

	MemoryProps vk.PhysicalDeviceMemoryProperties `desc:"memory properties of the selected physical device"`

	DeviceExts []string `desc:"device extensions to enable, e.g., the swapchain extension added by NewGraphicsGPU"`

	InstanceExts []string `desc:"instance extensions to enable, e.g., the surface extensions from the window system"`

	ValidationLayers []string `desc:"validation layers to enable, set in Config when Debug is on"`
}

// NewGPU returns a new GPU with platform defaults set.
// Call AddInstanceExt with window-system extensions before Config.
func NewGPU() *GPU {
	gp := &GPU{}
	gp.Defaults()
	return gp
}

// NewGraphicsGPU returns a new GPU configured for presenting to
// a surface, with the swapchain device extension added.
func NewGraphicsGPU() *GPU {
	gp := &GPU{}
	gp.Defaults()
	gp.DeviceExts = append(gp.DeviceExts, vk.KhrSwapchainExtensionName)
	return gp
}

func (gp *GPU) Defaults() {
	PlatformDefaults(gp)
}

// AddInstanceExt adds given extensions to the instance extension list
func (gp *GPU) AddInstanceExt(exts ...string) {
	gp.InstanceExts = append(gp.InstanceExts, exts...)
}

// AddDeviceExt adds given extensions to the device extension list
func (gp *GPU) AddDeviceExt(exts ...string) {
	gp.DeviceExts = append(gp.DeviceExts, exts...)
}

// Config creates the vulkan instance and selects the first
// available physical device.  Name is the application name.
func (gp *GPU) Config(name string) error {
	gp.Name = name
	if Debug {
		gp.ValidationLayers = append(gp.ValidationLayers, "VK_LAYER_KHRONOS_validation")
	}

	var instance vk.Instance
	ret := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			ApiVersion:         vk.MakeVersion(1, 2, 0),
			ApplicationVersion: vk.MakeVersion(1, 0, 0),
			PApplicationName:   SafeString(name),
			PEngineName:        "vquad\x00",
		},
		EnabledExtensionCount:   uint32(len(gp.InstanceExts)),
		PpEnabledExtensionNames: SafeStrings(gp.InstanceExts),
		EnabledLayerCount:       uint32(len(gp.ValidationLayers)),
		PpEnabledLayerNames:     SafeStrings(gp.ValidationLayers),
		Flags:                   InstanceFlags,
	}, nil, &instance)
	if err := NewError(ret); err != nil {
		return err
	}
	gp.Instance = instance
	vk.InitInstance(instance)

	var gpuCount uint32
	ret = vk.EnumeratePhysicalDevices(gp.Instance, &gpuCount, nil)
	if err := NewError(ret); err != nil {
		return err
	}
	if gpuCount == 0 {
		return errors.New("vquad: no GPU devices found")
	}
	gpus := make([]vk.PhysicalDevice, gpuCount)
	vk.EnumeratePhysicalDevices(gp.Instance, &gpuCount, gpus)
	gp.GPU = gpus[0]

	vk.GetPhysicalDeviceProperties(gp.GPU, &gp.GPUProps)
	gp.GPUProps.Deref()
	gp.GPUProps.Limits.Deref()
	gp.DeviceName = CleanString(string(gp.GPUProps.DeviceName[:]))
	vk.GetPhysicalDeviceMemoryProperties(gp.GPU, &gp.MemoryProps)
	gp.MemoryProps.Deref()

	if Debug {
		log.Printf("vquad: using GPU: %s\n", gp.DeviceName)
	}
	TheGPU = gp
	return nil
}

// NewGraphicsSystem returns a new rendering System using this GPU
// and the given device, which is typically the Surface device.
func (gp *GPU) NewGraphicsSystem(name string, dev *Device) *System {
	sy := &System{}
	sy.Init(gp, name, dev)
	return sy
}

// NewDevice returns a new device for this GPU with a graphics queue.
func (gp *GPU) NewDevice() (*Device, error) {
	dev := &Device{}
	err := dev.Init(gp, vk.QueueGraphicsBit)
	if err != nil {
		return nil, err
	}
	return dev, nil
}

func (gp *GPU) Destroy() {
	if gp.Instance != nil {
		vk.DestroyInstance(gp.Instance, nil)
		gp.Instance = nil
	}
	gp.GPU = nil
}

// SafeString returns a null-terminated copy of s for vulkan.
func SafeString(s string) string {
	if len(s) == 0 {
		return "\x00"
	}
	if s[len(s)-1] != '\x00' {
		return s + "\x00"
	}
	return s
}

// SafeStrings null-terminates each string in the list for vulkan.
func SafeStrings(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = SafeString(s)
	}
	return out
}

// CleanString strips trailing nulls from a fixed-size vulkan string.
func CleanString(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}
