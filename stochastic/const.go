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

// Package stochastic holds the shared constants of the sampler and its tools.
package stochastic

// ProgressSteps sets the number of progress reports of a verbose run (one per 10%).
const ProgressSteps = 10

// NumECDFPoints sets the number of points in a simplified empirical cumulative distribution function.
const NumECDFPoints = 300

// NumTracePoints sets the maximal number of points of a rendered chain trace.
const NumTracePoints = 2000

// CredibleMass is the probability mass of the reported central credible interval.
const CredibleMass = 0.95
