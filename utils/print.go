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

package utils

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Printer exports data produced by a callback to some sink.
type Printer interface {
	Print() error
	Close() error
}

// Printers forwards every print to all registered printers.
type Printers struct {
	printers []Printer
}

// Print prints on all printers; all printers are visited even if one fails.
func (ps *Printers) Print() error {
	var errs []error
	for _, p := range ps.printers {
		if err := p.Print(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes all printers.
func (ps *Printers) Close() error {
	var errs []error
	for _, p := range ps.printers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func NewPrinters() *Printers {
	return &Printers{[]Printer{}}
}

func (ps *Printers) AddPrinter(p Printer) *Printers {
	ps.printers = append(ps.printers, p)
	return ps
}

// Len returns the number of registered printers.
func (ps *Printers) Len() int {
	return len(ps.printers)
}

type PrinterToWriter struct {
	w io.Writer
	f func() string
}

func (p *PrinterToWriter) Print() error {
	_, err := fmt.Fprintln(p.w, p.f())
	return err
}

func (p *PrinterToWriter) Close() error {
	return nil
}

func NewPrinterToWriter(w io.Writer, f func() string) *PrinterToWriter {
	return &PrinterToWriter{w, f}
}

func (ps *Printers) AddPrinterToWriter(w io.Writer, f func() string) *Printers {
	return ps.AddPrinter(NewPrinterToWriter(w, f))
}

// PrinterToFile appends the output of its callback to a file, terminated by
// a new line like PrinterToWriter.
type PrinterToFile struct {
	filepath string
	f        func() string
}

func (p *PrinterToFile) Print() (err error) {
	file, err := os.OpenFile(p.filepath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("unable to print to file %s; %w", p.filepath, err)
	}
	defer func(file *os.File) {
		err = errors.Join(err, file.Close())
	}(file)
	_, err = fmt.Fprintln(file, p.f())
	return err
}

func (p *PrinterToFile) Close() error {
	return nil
}

func NewPrinterToFile(filepath string, f func() string) *PrinterToFile {
	return &PrinterToFile{filepath, f}
}

func (ps *Printers) AddPrinterToFile(filepath string, f func() string) *Printers {
	if filepath != "" {
		ps.AddPrinter(NewPrinterToFile(filepath, f))
	}
	return ps
}

// PrinterToDb inserts the rows produced by its callback in one transaction.
type PrinterToDb struct {
	db     *sqlx.DB
	insert string
	f      func() ([][]any, error)
}

func (p *PrinterToDb) Print() (err error) {
	rows, err := p.f()
	if err != nil {
		return fmt.Errorf("unable to produce rows; %w", err)
	}

	// Transaction is used to improve efficiency over bulk insert
	tx, err := p.db.Beginx()
	if err != nil {
		return fmt.Errorf("unable to begin a transaction; %w", err)
	}

	stmt, err := tx.Preparex(p.insert)
	if err != nil {
		return errors.Join(fmt.Errorf("unable to prepare statement %s; %w", p.insert, err), tx.Rollback())
	}
	defer func(stmt *sqlx.Stmt) {
		err = errors.Join(err, stmt.Close())
	}(stmt)

	for i, row := range rows {
		if _, err = stmt.Exec(row...); err != nil {
			return errors.Join(fmt.Errorf("unable to insert row %d; %w", i, err), tx.Rollback())
		}
	}
	return tx.Commit()
}

func (p *PrinterToDb) Close() error {
	return p.db.Close()
}

// NewPrinterToSqlite3 opens a sqlite3 database, runs the create statement
// and returns a printer inserting rows with the insert statement.
func NewPrinterToSqlite3(conn string, create string, insert string, f func() ([][]any, error)) (*PrinterToDb, error) {
	db, err := sqlx.Open("sqlite3", conn)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection to sqlite3 %s; %w", conn, err)
	}
	p, err := newPrinterToDb(db, create, insert, f)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return p, nil
}

func newPrinterToDb(db *sqlx.DB, create string, insert string, f func() ([][]any, error)) (*PrinterToDb, error) {
	if _, err := db.Exec(create); err != nil {
		return nil, fmt.Errorf("failed to create/replace table; %w", err)
	}
	// so that insert does not block
	if _, err := db.Exec("PRAGMA synchronous = OFF"); err != nil {
		return nil, err
	}
	// improve efficiency - no intermediate write to file
	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		return nil, err
	}
	return &PrinterToDb{db, insert, f}, nil
}

func (ps *Printers) AddPrinterToSqlite3(conn string, create string, insert string, f func() ([][]any, error)) (*Printers, error) {
	if conn == "" {
		return ps, nil
	}
	p, err := NewPrinterToSqlite3(conn, create, insert, f)
	if err != nil {
		return ps, err
	}
	return ps.AddPrinter(p), nil
}
