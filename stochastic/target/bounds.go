// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package target

import (
	"fmt"

	"github.com/0xsoniclabs/mcmc/stochastic/metropolis"
)

// Box is a uniform prior given by an inclusive interval per parameter.
type Box [][2]float64

// NewBox converts a list of [lower, upper] pairs into a Box.
func NewBox(bounds [][]float64) (Box, error) {
	box := make(Box, len(bounds))
	for i, b := range bounds {
		if len(b) != 2 {
			return nil, fmt.Errorf("bounds of parameter %d must have two values, got %d", i, len(b))
		}
		if !(b[0] <= b[1]) {
			return nil, fmt.Errorf("lower bound of parameter %d exceeds upper bound (%v > %v)", i, b[0], b[1])
		}
		box[i] = [2]float64{b[0], b[1]}
	}
	return box, nil
}

// VerifyBox reports whether every parameter of m lies within its interval.
func VerifyBox(m metropolis.Model, box Box) (bool, error) {
	if len(m) != len(box) {
		return false, fmt.Errorf("model has %d parameters but the prior has %d bounds", len(m), len(box))
	}
	for i, x := range m {
		if !(x >= box[i][0] && x <= box[i][1]) {
			return false, nil
		}
	}
	return true, nil
}
