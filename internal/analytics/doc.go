// Package analytics computes the three dashboard views over a loaded
// dataprocessing.Dataset.
//
// Overall aggregates the whole table: totals, the largest single investment,
// average funding per startup, top startups, verticals and cities, and a
// month-on-month trend counted by rows or summed by amount.
//
// Startup drills into one cleaned startup name. Investor drills into every
// record whose raw investor text contains a key, so "Sequoia" also matches
// "Sequoia Capital India".
//
// Every query is pure. A key without matches yields zero amounts and empty
// lists, never an error; the startup view reports "Not Available" for its
// vertical and city. Ranked lists are ordered by amount descending with ties
// broken by key ascending.
package analytics
