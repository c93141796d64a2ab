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

import "errors"

var (
	// ErrNothingToExport is returned when there are no results to write.
	// It is a report for the user rather than a failure.
	ErrNothingToExport = errors.New("nothing to export")

	// ErrExportFailed is returned when the export file cannot be written.
	ErrExportFailed = errors.New("export failed")

	// ErrUnsupportedEncoding is returned for an unknown text encoding name.
	ErrUnsupportedEncoding = errors.New("unsupported export encoding")

	// ErrInvalidDelimiter is returned for a delimiter the CSV writer rejects.
	ErrInvalidDelimiter = errors.New("invalid export delimiter")
)
