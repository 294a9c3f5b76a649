// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	vk "github.com/goki/vulkan"
)

func TestUploadTextureValidation(t *testing.T) {
	// invalid input fails before any device work, so a bare System works
	sy := &System{}

	_, err := sy.UploadTexture(nil, 0, 16)
	assert.Error(t, err)

	_, err = sy.UploadTexture(nil, 16, -1)
	assert.Error(t, err)

	// 3 bytes per pixel instead of 4
	_, err = sy.UploadTexture(make([]byte, 16*16*3), 16, 16)
	assert.Error(t, err)

	_, err = sy.UploadTexture(make([]byte, 16*16*4+1), 16, 16)
	assert.Error(t, err)

	assert.Nil(t, sy.Texture)
}

func TestTextureDestroyUnconfigured(t *testing.T) {
	// upload failure paths destroy a texture whose view and sampler
	// were never configured, which must be a safe no-op
	tx := &Texture{}
	tx.Defaults()
	tx.Destroy()
	assert.Nil(t, tx.Image.Image)
	assert.Equal(t, LayoutUndefined, tx.Image.Layout)
	// destroying again is also safe
	tx.Destroy()
}

func TestImageFormat(t *testing.T) {
	var fm ImageFormat
	fm.Set(256, 128, vk.FormatR8g8b8a8Srgb)
	assert.InDelta(t, 2, fm.Aspect(), mtxTol)
	assert.Equal(t, 256*128*4, fm.ByteSize())
	w, h := fm.Size32()
	assert.Equal(t, uint32(256), w)
	assert.Equal(t, uint32(128), h)

	fm.SetSize(100, 0)
	assert.InDelta(t, 1, fm.Aspect(), mtxTol)
}

func TestImageToRGBA(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 4, 2))
	assert.Equal(t, rgba, ImageToRGBA(rgba))

	gray := image.NewGray(image.Rect(0, 0, 4, 2))
	gray.SetGray(1, 1, color.Gray{Y: 128})
	conv := ImageToRGBA(gray)
	assert.Equal(t, image.Point{X: 4, Y: 2}, conv.Rect.Size())
	r, g, b, _ := conv.At(1, 1).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}
