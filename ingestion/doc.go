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

// Package ingestion turns the scraper output into the catalog dataset and
// its index-aligned vector store.
//
// A Processor reads the raw lots, drops the ones without an id or
// description, embeds the rest in batches on a worker pool and writes the
// catalog and vectors together:
//
//	proc, err := ingestion.NewProcessor(model, ingestion.Paths{
//	    Raw:     "data/dados_brutos.json",
//	    Catalog: "data/dados_processados.json",
//	    Vectors: "data/embeddings.bin",
//	}, ingestion.WithProgress(os.Stderr))
//	if err != nil {
//	    return err
//	}
//	defer proc.Release()
//
//	summary, err := proc.Run(ctx)
//
// Each batch is retried with exponential backoff. The first batch that
// still fails cancels the run and nothing is written.
package ingestion
