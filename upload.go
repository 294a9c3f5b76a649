// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import (
	"fmt"
	"image"
	"image/draw"

	vk "github.com/goki/vulkan"
	"goki.dev/grows/images"
)

// UploadTexture uploads RGBA pixel data of given size as the system
// texture.  The pixels go through a host-visible staging buffer and a
// one-time command buffer that transitions the image
// Undefined -> TransferDst, copies the buffer into it, and transitions
// TransferDst -> ShaderReadOnly.  On return the texture is in
// LayoutShaderReadOnly and ready to bind.
// Input is validated before any device work: width and height must be
// positive and len(pixels) must be exactly w*h*4.
func (sy *System) UploadTexture(pixels []byte, w, h int) (*Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("vquad.UploadTexture: invalid size %d x %d", w, h)
	}
	if len(pixels) != w*h*4 {
		return nil, fmt.Errorf("vquad.UploadTexture: have %d bytes of pixel data, need %d for %d x %d RGBA", len(pixels), w*h*4, w, h)
	}
	dev := sy.Device.Device

	tx := &Texture{}
	tx.Defaults()
	tx.Image.Format.Set(w, h, vk.FormatR8g8b8a8Srgb)
	tx.Image.AllocImage(sy.GPU, dev)

	var stage HostBuff
	stage.Alloc(sy.GPU, dev, vk.BufferUsageTransferSrcBit, len(pixels))
	copy(stage.Bytes(), pixels)

	cmd := sy.TransferPool.BeginCmdOneTime(&sy.Device)
	fail := func(err error) (*Texture, error) {
		sy.TransferPool.FreeBuffer(&sy.Device)
		stage.Free(dev)
		tx.Destroy()
		return nil, err
	}
	if err := tx.Image.Transition(cmd, LayoutTransferDst); err != nil {
		return fail(err)
	}
	vk.CmdCopyBufferToImage(cmd, stage.Buff, tx.Image.Image, LayoutTransferDst.VkLayout(),
		1, []vk.BufferImageCopy{tx.Image.CopyRec()})
	if err := tx.Image.Transition(cmd, LayoutShaderReadOnly); err != nil {
		return fail(err)
	}
	sy.TransferPool.EndSubmitWaitFree(&sy.Device)
	stage.Free(dev)

	tx.Image.ConfigStdView()
	tx.Sampler.Config(dev)
	if sy.Texture != nil {
		sy.Texture.Destroy()
	}
	sy.Texture = tx
	return tx, nil
}

// SetTextureImage uploads any image.Image as the system texture,
// converting to RGBA as needed.
func (sy *System) SetTextureImage(img image.Image) (*Texture, error) {
	rgba := ImageToRGBA(img)
	sz := rgba.Rect.Size()
	return sy.UploadTexture(rgba.Pix, sz.X, sz.Y)
}

// OpenTexture opens an image file and uploads it as the system texture.
func (sy *System) OpenTexture(fname string) (*Texture, error) {
	img, _, err := images.Open(fname)
	if err != nil {
		return nil, err
	}
	return sy.SetTextureImage(img)
}

// ImageToRGBA returns given image as an image.RGBA, converting
// by drawing into a new image if it is not one already.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(image.Rectangle{Max: img.Bounds().Size()})
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}
