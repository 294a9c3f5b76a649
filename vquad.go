// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This is initially adapted from https://github.com/vulkan-go/asche
// Copyright © 2017 Maxim Kupriianov <max@kc.vc>, under the MIT License

/*
Package vquad renders a single textured quad with Vulkan, using
explicit, tracked resource state.

The core pieces are:

* Texture upload: CPU pixels go through a host-visible staging buffer
into a device-local image, with the image layout driven through an
explicit state machine (Undefined -> TransferDst -> ShaderReadOnly).
The tracked layout lives on the Image and only valid transitions can
be recorded.

* BindingLayout: the fixed shader resource contract, slot 0 = sampled
texture in the fragment shader, slot 1 = transform uniform in the
vertex shader (StdQuadLayout).  Once configured on the device it is
immutable, and every descriptor write is validated against it.

* FrameSlots: one uniform buffer and one descriptor set per swapchain
image, so a transform can be written for the slot being prepared while
other slots are still in flight.

* Orchestrator: per-frame flow of acquire slot -> compute transform ->
write uniform -> bind -> draw.  Slot acquisition goes through the
FrameSync interface so the flow can be driven without a window.

The quad itself is generated in the vertex shader from gl_VertexIndex
as a 4-vertex triangle strip, so there are no vertex buffers anywhere.
*/
package vquad

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"unsafe"

	vk "github.com/goki/vulkan"
)

// Debug prints extra diagnostic info when true, including the
// full binding layout at system Config time.
var Debug = false

// Error wraps a vulkan result code with the caller location.
type Error struct {
	Result vk.Result
	Caller string
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s: vulkan error: %s (%d)", err.Caller, VkResultString(err.Result), err.Result)
}

// NewError returns nil if ret is vk.Success, otherwise an *Error
// recording the result code and the calling function.
func NewError(ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	caller := "vquad"
	if pc, _, _, ok := runtime.Caller(1); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}
	return &Error{Result: ret, Caller: caller}
}

// IsError returns true if ret is not vk.Success
func IsError(ret vk.Result) bool {
	return ret != vk.Success
}

// IfPanic panics on err, running any finalizers first.
// Used for vulkan calls that cannot fail unless the code is wrong.
func IfPanic(err error, finalizers ...func()) {
	if err == nil {
		return
	}
	for _, fn := range finalizers {
		fn()
	}
	panic(err)
}

// CheckErr sets err to a recovered panic error, for deferred use.
func CheckErr(err *error) {
	if v := recover(); v != nil {
		switch v := v.(type) {
		case error:
			*err = v
		default:
			*err = errors.New(fmt.Sprint(v))
		}
	}
}

// VkResultString returns the string name for a vulkan result code
func VkResultString(ret vk.Result) string {
	switch ret {
	case vk.Success:
		return "Success"
	case vk.NotReady:
		return "NotReady"
	case vk.Timeout:
		return "Timeout"
	case vk.Incomplete:
		return "Incomplete"
	case vk.ErrorOutOfHostMemory:
		return "ErrorOutOfHostMemory"
	case vk.ErrorOutOfDeviceMemory:
		return "ErrorOutOfDeviceMemory"
	case vk.ErrorInitializationFailed:
		return "ErrorInitializationFailed"
	case vk.ErrorDeviceLost:
		return "ErrorDeviceLost"
	case vk.ErrorLayerNotPresent:
		return "ErrorLayerNotPresent"
	case vk.ErrorExtensionNotPresent:
		return "ErrorExtensionNotPresent"
	case vk.ErrorFeatureNotPresent:
		return "ErrorFeatureNotPresent"
	case vk.ErrorIncompatibleDriver:
		return "ErrorIncompatibleDriver"
	case vk.ErrorOutOfDate:
		return "ErrorOutOfDate"
	case vk.ErrorSurfaceLost:
		return "ErrorSurfaceLost"
	case vk.Suboptimal:
		return "Suboptimal"
	default:
		return "UnknownResult"
	}
}

// IsNil returns true if given vulkan handle is zero.
// Handles are pointers on desktop and uint64 on 32bit platforms,
// so a reflect-based zero check covers both.
func IsNil(handle any) bool {
	return reflect.ValueOf(handle).IsZero()
}

// SetNil zeroes the handle at given pointer.
func SetNil(handle unsafe.Pointer) {
	*(*uintptr)(handle) = 0
}
