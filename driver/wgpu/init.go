// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import "github.com/gogpu/frameloop/driver"

// DriverName is the registry name of this driver.
const DriverName = "wgpu"

func init() {
	driver.Register(DriverName, 100, func() driver.Driver { return &Driver{} }, nil)
}
