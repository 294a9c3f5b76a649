// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This is initially adapted from https://github.com/vulkan-go/asche
// Copyright © 2017 Maxim Kupriianov <max@kc.vc>, under the MIT License

package vquad

import (
	"testing"
	"unsafe"

	vk "github.com/goki/vulkan"
)

// TestPtrFuncs can only be run on desktop platform where actual pointers are used
func TestPtrFuncs(t *testing.T) {
	var ptr32bit uint64
	var cmdPool vk.CommandPool

	if !IsNil(ptr32bit) {
		t.Errorf("ptr32bit should be nil!\n")
	}
	if !IsNil(cmdPool) {
		t.Errorf("cmdPool should be nil!\n")
	}

	ptr32bit = 10
	cmdPool = vk.CommandPool(unsafe.Add(unsafe.Pointer(cmdPool), 100))

	if IsNil(ptr32bit) {
		t.Errorf("ptr32bit should not be nil!\n")
	}
	if IsNil(cmdPool) {
		t.Errorf("cmdPool should not be nil!\n")
	}

	SetNil(unsafe.Pointer(&ptr32bit))
	SetNil(unsafe.Pointer(&cmdPool))

	if !IsNil(ptr32bit) {
		t.Errorf("ptr32bit should be nil!\n")
	}
	if !IsNil(cmdPool) {
		t.Errorf("cmdPool should be nil!\n")
	}
}

func TestEnumStrings(t *testing.T) {
	if FragmentShader.String() != "FragmentShader" {
		t.Errorf("FragmentShader.String() = %s\n", FragmentShader.String())
	}
	var st ShaderTypes
	if err := st.FromString("ComputeShader"); err != nil || st != ComputeShader {
		t.Errorf("ShaderTypes.FromString(ComputeShader) = %v, %v\n", st, err)
	}
	if MirrorClampToEdge.String() != "MirrorClampToEdge" {
		t.Errorf("MirrorClampToEdge.String() = %s\n", MirrorClampToEdge.String())
	}
	if BorderWhite.String() != "BorderWhite" {
		t.Errorf("BorderWhite.String() = %s\n", BorderWhite.String())
	}
	if TriangleStrip.String() != "TriangleStrip" {
		t.Errorf("TriangleStrip.String() = %s\n", TriangleStrip.String())
	}
	var tp Topologies
	if err := tp.FromString("NoSuchTopology"); err == nil {
		t.Errorf("FromString should fail on an unknown name!\n")
	}
}

func TestCheckErr(t *testing.T) {
	panicky := func() (err error) {
		defer CheckErr(&err)
		IfPanic(NewError(vk.ErrorDeviceLost))
		return nil
	}
	err := panicky()
	if err == nil {
		t.Errorf("CheckErr should have recovered the panic into err!\n")
	}
	fine := func() (err error) {
		defer CheckErr(&err)
		IfPanic(NewError(vk.Success))
		return nil
	}
	if err := fine(); err != nil {
		t.Errorf("CheckErr should leave err nil when nothing panics: %v\n", err)
	}
}

func TestNewError(t *testing.T) {
	if NewError(vk.Success) != nil {
		t.Errorf("NewError(Success) should be nil!\n")
	}
	err := NewError(vk.ErrorDeviceLost)
	if err == nil {
		t.Errorf("NewError(ErrorDeviceLost) should not be nil!\n")
	}
	if IsError(vk.Success) {
		t.Errorf("Success should not be an error!\n")
	}
	if !IsError(vk.ErrorOutOfDate) {
		t.Errorf("ErrorOutOfDate should be an error!\n")
	}
}
