// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package reranking implements post-processing algorithms for recommendation diversity.
//
// Rerankers operate on an already-scored list and reorder it to balance
// relevance against variety:
//
//	Rank -> Rerankers -> Final Ranking
//	(relevance)  (diversity)
//
// # Available Rerankers
//
// Category runs:
//   - Bounds the number of consecutive items sharing a category
//   - Promotes the next item from a different category when the bound is hit
//   - Always returns a permutation of its input before truncation to k
//
// Maximal Marginal Relevance (MMR):
//   - Balances relevance with diversity
//   - Penalizes items whose clusters and category overlap already-selected items
//   - Lambda parameter controls relevance/diversity tradeoff
//
// When both are enabled MMR is registered first so the run bound holds on the
// final list.
//
// # Interface
//
// All rerankers implement the recommend.Reranker interface:
//
//	type Reranker interface {
//	    Name() string
//	    Rerank(ctx context.Context, items []ScoredItem, k int) []ScoredItem
//	}
//
// # Usage Example
//
//	engine.RegisterReranker(reranking.NewMMR(0.7))
//	engine.RegisterReranker(reranking.NewCategoryRuns(4))
//
// # Thread Safety
//
// Rerankers hold no mutable state and are safe for concurrent use.
package reranking
