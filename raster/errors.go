// SPDX-License-Identifier: MIT

package raster

import "errors"

// ErrNilImage is returned when a nil image or nil channel set is passed in.
var ErrNilImage = errors.New("raster: nil image")
