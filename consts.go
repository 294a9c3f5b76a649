// Copyright (c) 2022, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vquad

import (
	"github.com/goki/ki/kit"

	vk "github.com/goki/vulkan"
)

// Topologies are the different vertex topology
type Topologies int32

const (
	PointList     = Topologies(vk.PrimitiveTopologyPointList)
	LineList      = Topologies(vk.PrimitiveTopologyLineList)
	LineStrip     = Topologies(vk.PrimitiveTopologyLineStrip)
	TriangleList  = Topologies(vk.PrimitiveTopologyTriangleList)
	TriangleStrip = Topologies(vk.PrimitiveTopologyTriangleStrip)
	TriangleFan   = Topologies(vk.PrimitiveTopologyTriangleFan)
	TopologiesN   = TriangleFan + 1
)

//go:generate stringer -type=Topologies

var KiT_Topologies = kit.Enums.AddEnum(TopologiesN, kit.NotBitFlag, nil)
