// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/poiesic/arremate/core"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Supported encodings.
const (
	EncodingUTF8BOM     = "utf-8-sig"
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

const (
	DefaultDelimiter = ';'
	DefaultEncoding  = EncodingUTF8BOM

	timestampLayout = "20060102_150405"
	utf8BOM         = "\ufeff"
)

var header = []string{"Relevância", "Tipo Match", "Lote", "Data", "Local", "Descrição", "Link"}

// Exporter writes result tables to files.
type Exporter struct {
	dir       string
	delimiter rune
	encoding  string
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter) error

// WithDirectory sets the directory files are created in.
// Default is the working directory.
func WithDirectory(dir string) Option {
	return func(e *Exporter) error {
		e.dir = dir
		return nil
	}
}

// WithDelimiter sets the field delimiter.
func WithDelimiter(delimiter rune) Option {
	return func(e *Exporter) error {
		// Same rules encoding/csv applies to Writer.Comma.
		if delimiter == 0 || delimiter == '"' || delimiter == '\r' || delimiter == '\n' || delimiter == utf8.RuneError {
			return fmt.Errorf("%w: %q", ErrInvalidDelimiter, delimiter)
		}
		e.delimiter = delimiter
		return nil
	}
}

// WithEncoding sets the text encoding by name. An empty name keeps the default.
func WithEncoding(name string) Option {
	return func(e *Exporter) error {
		switch strings.ToLower(name) {
		case "":
		case EncodingUTF8BOM:
			e.encoding = EncodingUTF8BOM
		case EncodingUTF8:
			e.encoding = EncodingUTF8
		case EncodingWindows1252, "cp1252":
			e.encoding = EncodingWindows1252
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedEncoding, name)
		}
		return nil
	}
}

// WithClock overrides the time source used for file names.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) error {
		if now != nil {
			e.now = now
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExporter creates an exporter.
func NewExporter(opts ...Option) (*Exporter, error) {
	e := &Exporter{
		dir:       ".",
		delimiter: DefaultDelimiter,
		encoding:  DefaultEncoding,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.logger = e.logger.With("component", "exporter")
	return e, nil
}

// FileName returns the export file name for query at time t.
func FileName(query string, t time.Time) string {
	return "resultado_" + sanitize(query) + "_" + t.Format(timestampLayout) + ".csv"
}

// sanitize replaces every rune outside [a-zA-Z0-9] with an underscore.
func sanitize(query string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, query)
}

// Export writes results to a new file and returns its path.
// Empty results return ErrNothingToExport and create nothing.
func (e *Exporter) Export(results []core.RankedResult, query string) (string, error) {
	if len(results) == 0 {
		return "", ErrNothingToExport
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	path := filepath.Join(e.dir, FileName(query, e.now()))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		e.logger.Error("failed to create export file", "path", path, "err", err)
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	if err := e.write(f, results); err != nil {
		f.Close()
		os.Remove(path)
		e.logger.Error("failed to write export file", "path", path, "err", err)
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	e.logger.Info("results exported", "path", path, "rows", len(results))
	return path, nil
}

func (e *Exporter) write(f *os.File, results []core.RankedResult) error {
	var out io.Writer = f
	var flush func() error
	switch e.encoding {
	case EncodingUTF8BOM:
		if _, err := io.WriteString(f, utf8BOM); err != nil {
			return err
		}
	case EncodingWindows1252:
		tw := transform.NewWriter(f, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
		out, flush = tw, tw.Close
	}

	w := csv.NewWriter(out)
	w.Comma = e.delimiter
	w.UseCRLF = true

	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			fmt.Sprintf("%.2f", r.Score),
			r.Kind.String(),
			r.Item.ID,
			r.Item.AuctionDate,
			r.Item.Location,
			r.Item.Description,
			r.Item.SourceURL,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if flush != nil {
		return flush()
	}
	return nil
}
