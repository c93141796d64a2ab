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

package core

import (
	"fmt"
	"strings"
)

// ValidateRawLot validates a scraped lot before it enters the catalog.
//
// Validation rules:
//   - ID must not be blank
//   - Description must not be blank
//
// Date, location and URL are free-form and may be "N/A" when the scraper
// could not read them.
func ValidateRawLot(lot *RawLot) error {
	if lot == nil {
		return fmt.Errorf("%w: lot is nil", ErrInvalidLot)
	}

	if strings.TrimSpace(lot.ID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLot, ErrEmptyLotID)
	}

	if strings.TrimSpace(lot.Description) == "" {
		return fmt.Errorf("%w: lot %s: %w", ErrInvalidLot, lot.ID, ErrMissingDescription)
	}

	return nil
}
