// Package compdb models a clang JSON compilation database
// (compile_commands.json) as an ordered, append-only list of records.
package compdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// DefaultFileName is the name IDEs and clang tools look for
const DefaultFileName = "compile_commands.json"

const indent = "    "

// CompileRecord tells a code-intelligence engine how one translation unit is
// compiled. Field order is the key order of the serialized object.
type CompileRecord struct {
	Directory string `json:"directory"`
	Command   string `json:"command"`
	File      string `json:"file"`
}

// Database is an ordered sequence of compile records. Records are never
// modified or reordered once appended.
type Database struct {
	records []CompileRecord
}

// New creates an empty database
func New() *Database {
	return &Database{records: make([]CompileRecord, 0)}
}

// Append adds a record at the end of the database
func (db *Database) Append(record CompileRecord) {
	db.records = append(db.records, record)
}

// Len returns the number of records
func (db *Database) Len() int {
	return len(db.records)
}

// Records returns a copy of the records in insertion order
func (db *Database) Records() []CompileRecord {
	return append(make([]CompileRecord, 0, len(db.records)), db.records...)
}

// Placeholders returns the records whose file is the given placeholder path
func (db *Database) Placeholders(placeholder string) []CompileRecord {
	var result []CompileRecord

	for _, record := range db.records {
		if record.File == placeholder {
			result = append(result, record)
		}
	}

	return result
}

// WriteTo serializes the database as an indented JSON array. An empty database
// is written as "[]".
func (db *Database) WriteTo(w io.Writer) (int64, error) {
	var buffer bytes.Buffer

	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)

	if err := encoder.Encode(db.records); err != nil {
		return 0, fmt.Errorf("encoding compilation database: %w", err)
	}

	n, err := w.Write(buffer.Bytes())
	return int64(n), err
}

// Save writes the database to path, replacing any existing content
func (db *Database) Save(fs afero.Fs, path string) error {
	file, err := fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if _, err := db.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return file.Close()
}

// Load reads a compilation database previously written to path
func Load(fs afero.Fs, path string) (*Database, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	db := New()
	if err := json.Unmarshal(data, &db.records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if db.records == nil {
		db.records = make([]CompileRecord, 0)
	}

	return db, nil
}
