// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

/*
Package recommend ranks birding hotspots by expected new-species yield.

# Scoring Model

For each location with an observation summary, the engine partitions the
location's species into seen and unseen using the observer's life list. Each
unseen species contributes its reporting rate

	p = occurrenceCount / totalChecklists

and the location's expected yield is the plain sum of those rates. The sum
intentionally overcounts relative to a probabilistic union (1 - prod(1-p)):
it reads as "species-sightings per visit" and keeps hotspot comparisons
linear in reporting frequency.

The final score discounts by travel distance from the center point:

	score = expected / sqrt(distanceKm)    (distance > 0)
	score = expected                       (at the center)

Each recommendation also carries the top N unseen species by reporting
frequency, with N set by Config.TopSpeciesCutoff.

# Usage

	engine, err := recommend.NewEngine(nil, logger)
	if err != nil {
		return err
	}
	recs := engine.Recommend(locations, summaries, lifeList.Snapshot(), lat, lng)

The engine holds no mutable state; one instance serves all requests.
*/
package recommend
