// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package fields resolves opaque form question IDs to labels and reads answers.

The form provider identifies answers by question ID. The first page of every
fetch lists the questions, and NewMap turns that listing into an immutable
snapshot:

	m := fields.NewMap(page.Questions)
	v, ok := fields.ValueOf(sub, m, models.LabelOT)

Labels are compared after NFC normalization.

Answers arrive as numbers or strings depending on the source. Callers doing
arithmetic use Float, which treats missing and non-numeric answers as zero.
*/
package fields
