// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import "github.com/go-gl/mathgl/mgl32"

// QuadModel returns the model matrix for the quad: rotation about Z
// by accumTime radians, applied to a scale of the texture aspect
// ratio in X.  The scale keeps the texture's proportions on screen,
// the rotation spins it.
func QuadModel(accumTime, texAspect float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(accumTime).Mul4(mgl32.Scale3D(texAspect, 1, 1))
}

// OrthoProjection returns the GL-convention orthographic projection
// for a viewport of given aspect ratio: x spans [-aspect, aspect],
// y spans [-1, 1], depth range [0, 1].
func OrthoProjection(viewAspect float32) mgl32.Mat4 {
	return mgl32.Ortho(-viewAspect, viewAspect, -1, 1, 0, 1)
}

// VulkanClip is the fixed matrix converting GL clip space to Vulkan
// clip space: Y is flipped and depth is compressed from [-1, 1] to
// [0, 1].  It is kept separate from OrthoProjection so the projection
// itself stays in the familiar GL convention.
var VulkanClip = mgl32.Mat4{
	1, 0, 0, 0,
	0, -1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// TransformMatrix composes the full transform written to the uniform:
// VulkanClip * OrthoProjection(viewAspect) * QuadModel(accumTime, texAspect).
// The order matters: the model spins and shapes the quad, the
// projection maps it to clip space, and the clip fixup is applied last.
func TransformMatrix(accumTime, texAspect, viewAspect float32) mgl32.Mat4 {
	return VulkanClip.Mul4(OrthoProjection(viewAspect)).Mul4(QuadModel(accumTime, texAspect))
}
