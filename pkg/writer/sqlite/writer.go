// Package sqlite provides SQLite database writing for charge calculation results
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vanbaels/pepcharge/pkg/core"
)

// Date format for HeaderTable (ISO 8601)
const headerDateFormat = "2006-01-02"

// Writer handles writing charge results to SQLite database files
type Writer struct {
	db          *sql.DB
	outputPath  string
	constantSet string
	peptideStmt *sql.Stmt
	profileStmt *sql.Stmt
	peptideID   int
}

// NewWriter creates a new SQLite writer. constantSet names the ionization
// constant table the results were computed with and is recorded in the
// HeaderTable at Finalize.
func NewWriter(outputPath, constantSet string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:          db,
		outputPath:  outputPath,
		constantSet: constantSet,
		peptideID:   1,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS PeptideTable (
		PeptideId INTEGER PRIMARY KEY,
		Name TEXT,
		Sequence TEXT,
		Length INTEGER,
		PH DOUBLE,
		NetCharge DOUBLE,
		IsoelectricPoint DOUBLE,
		StateLow INTEGER,
		StateHigh INTEGER,
		StateLowFraction DOUBLE,
		StateHighFraction DOUBLE,
		SourceFile TEXT,
		SourceFormat TEXT
	);

	CREATE TABLE IF NOT EXISTS ProfileTable (
		ProfileId INTEGER PRIMARY KEY,
		PeptideId INTEGER REFERENCES PeptideTable(PeptideId),
		PHMin DOUBLE,
		PHMax DOUBLE,
		PHStep DOUBLE,
		Points INTEGER,
		blobPH BLOB,
		blobCharge BLOB
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		ConstantSet TEXT,
		Description TEXT
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements prepares SQL statements for batch insertion
func (w *Writer) prepareStatements() error {
	var err error

	w.peptideStmt, err = w.db.Prepare(`
		INSERT INTO PeptideTable (
			PeptideId, Name, Sequence, Length, PH, NetCharge,
			IsoelectricPoint, StateLow, StateHigh, StateLowFraction,
			StateHighFraction, SourceFile, SourceFormat
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare peptide statement: %w", err)
	}

	w.profileStmt, err = w.db.Prepare(`
		INSERT INTO ProfileTable (
			ProfileId, PeptideId, PHMin, PHMax, PHStep, Points,
			blobPH, blobCharge
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare profile statement: %w", err)
	}

	return nil
}

// WriteResult writes a single charge result to the database
func (w *Writer) WriteResult(res *core.Result) error {
	_, err := w.peptideStmt.Exec(
		w.peptideID,
		res.DisplayName(),
		res.Sequence,
		len(res.Sequence),
		res.PH,
		res.NetCharge,
		res.IsoelectricPoint,
		res.States.Low,
		res.States.High,
		res.States.LowFrac,
		res.States.HighFrac,
		res.SourceFile,
		res.SourceFormat,
	)
	if err != nil {
		return fmt.Errorf("failed to insert peptide: %w", err)
	}

	if len(res.Profile) > 0 {
		phBlob := encodeProfileFloat64(res.Profile, true)      // pH values
		chargeBlob := encodeProfileFloat64(res.Profile, false) // charge values

		min := res.Profile[0].PH
		max := res.Profile[len(res.Profile)-1].PH
		step := 0.0
		if len(res.Profile) > 1 {
			step = res.Profile[1].PH - res.Profile[0].PH
		}

		_, err = w.profileStmt.Exec(
			w.peptideID, // ProfileId (same as PeptideId for 1:1 mapping)
			w.peptideID,
			min,
			max,
			step,
			len(res.Profile),
			phBlob,
			chargeBlob,
		)
		if err != nil {
			return fmt.Errorf("failed to insert profile: %w", err)
		}
	}

	w.peptideID++
	return nil
}

// encodeProfileFloat64 encodes profile data as little-endian float64 blob
func encodeProfileFloat64(points []core.ProfilePoint, usePH bool) []byte {
	buf := make([]byte, len(points)*8)
	for i, p := range points {
		var value float64
		if usePH {
			value = p.PH
		} else {
			value = p.Charge
		}
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(value))
	}
	return buf
}

// Finalize writes the header table and closes the database
func (w *Writer) Finalize() error {
	_, err := w.db.Exec(`
		INSERT INTO HeaderTable (version, CreationDate, ConstantSet, Description)
		VALUES (?, ?, ?, ?)
	`, 1, time.Now().Format(headerDateFormat), w.constantSet, "")
	if err != nil {
		return fmt.Errorf("failed to insert header: %w", err)
	}

	if w.peptideStmt != nil {
		w.peptideStmt.Close()
	}
	if w.profileStmt != nil {
		w.profileStmt.Close()
	}

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Close closes the database connection (alias for Finalize)
func (w *Writer) Close() error {
	return w.Finalize()
}
