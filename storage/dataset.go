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

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/poiesic/arremate/core"
)

// catalogRecord is the on-disk shape of a catalog entry. Description is a
// pointer so a missing field can be told apart from an empty one.
type catalogRecord struct {
	ID          string  `json:"lote"`
	AuctionDate string  `json:"data"`
	Location    string  `json:"local"`
	Description *string `json:"texto_completo"`
	SourceURL   string  `json:"url"`
}

// LoadCatalog reads the processed catalog dataset.
// Returns core.ErrMissingInputData if the file does not exist and
// core.ErrMissingDescription if any record lacks its description field.
func LoadCatalog(path string) ([]core.CatalogItem, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	var records []catalogRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: catalog %s: %w", ErrSerializationFailed, path, err)
	}

	items := make([]core.CatalogItem, len(records))
	for i, rec := range records {
		if rec.Description == nil {
			return nil, fmt.Errorf("catalog record %d (lot %q): %w", i, rec.ID, core.ErrMissingDescription)
		}
		items[i] = core.CatalogItem{
			ID:          rec.ID,
			AuctionDate: rec.AuctionDate,
			Location:    rec.Location,
			Description: *rec.Description,
			SourceURL:   rec.SourceURL,
		}
	}
	return items, nil
}

// SaveCatalog writes the processed catalog dataset.
func SaveCatalog(path string, items []core.CatalogItem) error {
	if items == nil {
		items = []core.CatalogItem{}
	}
	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return writeFileAtomic(path, data)
}

// LoadRawLots reads the scraper output.
// Returns core.ErrMissingInputData if the file does not exist.
func LoadRawLots(path string) ([]core.RawLot, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	var lots []core.RawLot
	if err := json.Unmarshal(data, &lots); err != nil {
		return nil, fmt.Errorf("%w: raw lots %s: %w", ErrSerializationFailed, path, err)
	}
	return lots, nil
}

// LoadVectors reads the vector store blob.
// Returns core.ErrMissingInputData if the file does not exist.
func LoadVectors(path string) ([][]float32, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	vectors, err := UnmarshalVectors(data)
	if err != nil {
		return nil, fmt.Errorf("vector store %s: %w", path, err)
	}
	return vectors, nil
}

// SaveVectors writes the vector store blob.
func SaveVectors(path string, vectors [][]float32) error {
	return writeFileAtomic(path, MarshalVectors(vectors))
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrMissingInputData, path)
		}
		return nil, err
	}
	return data, nil
}

// SaveDataset writes the catalog and its vector store together. Both files
// are fully written to temporary names before either is renamed into place.
func SaveDataset(catalogPath string, items []core.CatalogItem, vectorsPath string, vectors [][]float32) error {
	if len(items) != len(vectors) {
		return fmt.Errorf("%w: %d items, %d vectors", core.ErrIndexMisaligned, len(items), len(vectors))
	}
	if items == nil {
		items = []core.CatalogItem{}
	}
	catalog, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}

	vecTmp, err := stageFile(vectorsPath, MarshalVectors(vectors))
	if err != nil {
		return err
	}
	catTmp, err := stageFile(catalogPath, catalog)
	if err != nil {
		os.Remove(vecTmp)
		return err
	}

	if err := os.Rename(vecTmp, vectorsPath); err != nil {
		os.Remove(vecTmp)
		os.Remove(catTmp)
		return err
	}
	if err := os.Rename(catTmp, catalogPath); err != nil {
		os.Remove(catTmp)
		return err
	}
	return nil
}

// writeFileAtomic writes data next to path and renames it into place, so
// readers never observe a partially written file.
func writeFileAtomic(path string, data []byte) error {
	tmpName, err := stageFile(path, data)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// stageFile writes data to a temporary file in the directory of path and
// returns its name.
func stageFile(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", err
	}
	return tmpName, nil
}
