// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	vk "github.com/goki/vulkan"
)

const mtxTol = 1.0e-6

func assertMat4(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], mtxTol, "element %d: col %d, row %d", i, i/4, i%4)
	}
}

func TestQuadModelScaleOnly(t *testing.T) {
	// at time zero the model is just the aspect scale
	got := QuadModel(0, 2)
	assertMat4(t, mgl32.Scale3D(2, 1, 1), got)
}

func TestQuadModelRotateThenScale(t *testing.T) {
	// quarter turn: rotation is applied to the already-scaled quad,
	// so the scaled x axis ends up along +y
	got := QuadModel(math.Pi/2, 2)
	want := mgl32.Mat4{
		0, 2, 0, 0,
		-1, 0, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	assertMat4(t, want, got)

	// the other composition order scales the rotated axes instead
	swapped := mgl32.Scale3D(2, 1, 1).Mul4(mgl32.HomogRotate3DZ(math.Pi / 2))
	assert.InDelta(t, 1, swapped[1], mtxTol)
	assert.InDelta(t, 2, got[1], mtxTol)
}

func TestOrthoProjection(t *testing.T) {
	// x extent is +-viewAspect, y is +-1, z is 0..1
	got := OrthoProjection(2)
	want := mgl32.Mat4{
		0.5, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, -2, 0,
		0, 0, -1, 1,
	}
	assertMat4(t, want, got)
}

func TestVulkanClip(t *testing.T) {
	// y flips, gl z in [-1, 1] maps to vulkan z in [0, 1]
	up := VulkanClip.Mul4x1(mgl32.Vec4{0, 1, 0, 1})
	assert.InDelta(t, -1, up.Y(), mtxTol)

	znear := VulkanClip.Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	assert.InDelta(t, 0, znear.Z(), mtxTol)

	zfar := VulkanClip.Mul4x1(mgl32.Vec4{0, 0, 1, 1})
	assert.InDelta(t, 1, zfar.Z(), mtxTol)
}

func TestTransformMatrix(t *testing.T) {
	// 256x128 texture on an 800x600 viewport at time zero
	var fm ImageFormat
	fm.Set(256, 128, vk.FormatR8g8b8a8Srgb)
	assert.InDelta(t, 2, fm.Aspect(), mtxTol)

	got := TransformMatrix(0, fm.Aspect(), 800.0/600.0)
	want := mgl32.Mat4{
		1.5, 0, 0, 0,
		0, -1, 0, 0,
		0, 0, -1, 0,
		0, 0, 0, 1,
	}
	assertMat4(t, want, got)
}

func TestTransformMatrixFullTurn(t *testing.T) {
	// a full rotation returns to the starting transform
	a := TransformMatrix(0, 1.5, 1)
	b := TransformMatrix(2*math.Pi, 1.5, 1)
	assertMat4(t, a, b)
}
