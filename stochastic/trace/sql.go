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

package trace

// SQL statements for exporting a trace into the chain table of a database.
// The rows are produced by Trace.Rows.
const (
	SqlCreateChain = "DROP TABLE IF EXISTS chain; " +
		"CREATE TABLE chain (step INTEGER PRIMARY KEY, log_likelihood REAL, model TEXT NOT NULL, auxiliary REAL)"
	SqlInsertChain = "INSERT INTO chain (step, log_likelihood, model, auxiliary) VALUES (?, ?, ?, ?)"
)
