// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package recommend implements the rule-based ranking engine.
//
// # Scoring
//
// Every catalog item in the profile's domain receives a score that is a
// fixed convex combination of four components:
//
//   - Alignment (60%): cosine between the item's axis weights and the
//     profile's axis scores, mapped to [0, 1]
//   - Rarity (15%): a tier x stability-mode lookup that rewards rare finds
//     for settled profiles and staples for volatile ones
//   - Cluster (15%): 1 when the item belongs to the profile's dominant style
//     cluster, the arg-max of a small set of linear combinations over axes
//   - Context (10%): mean of freshness, category fit and material fit, with
//     fit decided by rule tables keyed by the dominant axis pole
//
// Results are ordered by score descending, then item id ascending, so the
// same inputs always yield the same order.
//
// # Design Principles
//
//   - Deterministic: no randomness, no learned weights
//   - Auditable: each result carries a breakdown and an explanation
//   - Observable: metrics exposed for monitoring
//   - Traceable: request IDs propagated through logs
//
// # Diversification
//
// Rerankers from the reranking subpackage run after scoring. The category
// run limiter bounds consecutive items of one category; cluster-based MMR
// can be enabled ahead of it.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	engine.SetCatalog(cat)
//	engine.RegisterReranker(reranking.NewCategoryRuns(4))
//	resp, err := engine.Rank(ctx, recommend.Request{
//	    ProfileID: "p-1",
//	    Profile:   recommend.Profile{Scores: scores, Interactions: 18},
//	    K:         20,
//	})
//
// # Caching
//
// Responses are cached in an expiring LRU keyed by profile, domain, K,
// exclusions, the freshness day and the exact axis scores. Call
// [Engine.InvalidateCache] after the catalog changes.
//
// # Thread Safety
//
// [Engine] is safe for concurrent use. [Rank] is a pure function.
package recommend
