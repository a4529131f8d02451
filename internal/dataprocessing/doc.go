// Package dataprocessing loads the startup funding table and normalizes it
// into an immutable Dataset that every report is computed from.
//
// # Pipeline
//
// Loading runs once per process and applies, row by row:
//
//  1. Missing investor text is replaced with "Undisclosed".
//  2. Escaped encoding artifacts (no-break spaces, newline escapes, curly
//     possessives) are removed from the investor text.
//  3. Known malformed dates are rewritten through DateFixups and every date
//     is parsed day-first by ParseDate.
//  4. The investor text is split on commas into an ordered list.
//  5. Startup and investor names are cleaned with CleanStartupName and CleanName.
//
// # Usage
//
//	loader := dataprocessing.NewLoader(dataprocessing.DatePolicyFail, logger)
//	ds, err := loader.Load(ctx, "data/startup_funding.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	names := ds.StartupNames()
//
// A date that is neither in the fix-up table nor parseable aborts the load
// with a *RowError under DatePolicyFail, or drops the row with a warning
// under DatePolicySkip.
package dataprocessing
