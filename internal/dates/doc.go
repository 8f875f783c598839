// Package dates finds date-like spans in text and normalises them to the
// canonical YYYY-MM-DD form.
//
// Matching and normalisation are separate steps. A Matcher scans text with
// a Pattern and yields DateMatch spans; a Normaliser tries a fixed, ordered
// list of layouts against one span. Ambiguous numeric dates such as
// 03-04-2020 resolve to the first layout that parses, which with the
// default list is day-first (2020-04-03).
//
// Both steps are pure: they hold no state between calls and are safe for
// concurrent use.
package dates
