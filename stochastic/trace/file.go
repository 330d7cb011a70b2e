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

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// gzipSuffix selects gzip compression for trace files.
const gzipSuffix = ".gz"

// Write stores the trace as CSV file. Files ending in ".gz" are gzip-compressed.
func (t *Trace) Write(filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create trace file %s; %w", filename, err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	var w io.Writer = file
	if strings.HasSuffix(filename, gzipSuffix) {
		zw := gzip.NewWriter(file)
		defer func() {
			err = errors.Join(err, zw.Close())
		}()
		w = zw
	}
	buffer := bufio.NewWriter(w)
	if err := t.Encode(buffer); err != nil {
		return err
	}
	return buffer.Flush()
}

// Encode writes the trace in CSV format to w.
func (t *Trace) Encode(w io.Writer) error {
	for _, name := range t.Names {
		if IsReservedName(name) {
			return fmt.Errorf("parameter name %q is reserved for a trace column", name)
		}
	}
	cw := csv.NewWriter(w)
	header := append([]string{stepColumn, logLikelihoodColumn}, t.Names...)
	if t.Auxiliary != nil {
		header = append(header, auxiliaryColumn)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write trace header; %w", err)
	}
	record := make([]string, len(header))
	for i, m := range t.Chain {
		record = record[:0]
		record = append(record, strconv.Itoa(i), formatFloat(t.LogLikelihood[i]))
		for _, v := range m {
			record = append(record, formatFloat(v))
		}
		if t.Auxiliary != nil {
			record = append(record, formatFloat(t.Auxiliary[i]))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write step %d; %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read loads a trace from a CSV file written by Write. The number of accepted
// proposals is reconstructed from the transitions of the chain.
func Read(filename string) (_ *Trace, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open trace file %s; %w", filename, err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	var r io.Reader = bufio.NewReader(file)
	if strings.HasSuffix(filename, gzipSuffix) {
		zr, zerr := gzip.NewReader(r)
		if zerr != nil {
			return nil, fmt.Errorf("cannot decompress trace file %s; %w", filename, zerr)
		}
		defer func() {
			err = errors.Join(err, zr.Close())
		}()
		r = zr
	}
	return Decode(r)
}

// Decode parses a trace in CSV format.
func Decode(r io.Reader) (*Trace, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read trace header; %w", err)
	}
	if len(header) < 3 || header[0] != stepColumn || header[1] != logLikelihoodColumn {
		return nil, fmt.Errorf("invalid trace header %v", header)
	}
	names := header[2:]
	hasAux := names[len(names)-1] == auxiliaryColumn
	if hasAux {
		names = names[:len(names)-1]
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("trace has no parameter columns")
	}

	t := &Trace{Names: names}
	if hasAux {
		t.Auxiliary = []float64{}
	}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read step %d; %w", t.Len(), err)
		}
		step, err := strconv.Atoi(record[0])
		if err != nil || step != t.Len() {
			return nil, fmt.Errorf("invalid step %q, expected %d", record[0], t.Len())
		}
		values, err := parseFloats(record[1:])
		if err != nil {
			return nil, fmt.Errorf("cannot parse step %d; %w", step, err)
		}
		t.LogLikelihood = append(t.LogLikelihood, values[0])
		t.Chain = append(t.Chain, values[1 : 1+len(names) : 1+len(names)])
		if hasAux {
			t.Auxiliary = append(t.Auxiliary, values[len(values)-1])
		}
	}
	t.Accepted = countAccepted(t.Chain)
	return t, nil
}

func parseFloats(fields []string) ([]float64, error) {
	res := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
