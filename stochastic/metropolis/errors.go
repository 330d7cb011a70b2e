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

package metropolis

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidArgument marks inputs that are rejected before sampling starts.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEvaluatorFailure marks errors returned by a caller-supplied likelihood
	// or prior verifier. The run is aborted and no partial chain is returned.
	ErrEvaluatorFailure = errors.New("evaluator failure")
)

func invalidArgument(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidArgument)
}

func evaluatorFailure(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrEvaluatorFailure)
}
