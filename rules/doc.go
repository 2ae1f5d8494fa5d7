// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rules holds the static data-quality rules applied to every fetch.

# Rules File

Rules are read once at startup from YAML:

	corrections:
	  - date: "2025-03-04"   # optional, matched against submittedAt[:10]
	    field: "본인 사번"     # optional, defaults to the member ID label
	    wrong: 1111
	    replace: 2222
	excluded: [9999]
	valid_members: [100, 200]

Corrections run in file order. A rule sees answers already rewritten by
earlier rules in the same pass.

# Filtering

	subs = rules.ApplyCorrections(subs, cfg.Corrections, m)
	subs, removed := rules.ExcludeKnownBad(subs, cfg.Excluded, m)
*/
package rules
