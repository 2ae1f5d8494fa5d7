// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stats turns a corrected submission batch into activity figures.

Totals sum the TA, OT, MCS and introduction counts. The funnel reports each
stage as a percentage of TA, rounded to one decimal, with every rate after
the first forced to 0 when TA is 0.

Rankings are dense and tie-aware: First holds every member at the highest
sum and Second every member at the next distinct sum. Members whose sum is
not positive never rank.
*/
package stats
