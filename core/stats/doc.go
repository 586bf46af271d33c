// Package stats aggregates fuel log records.
//
// A Statistics value is built once from the records in file order and never
// changes afterwards. Queries walk the records on every call; logs are small
// enough that nothing is cached.
//
// Per-field sums take a Selector so the same loop serves liters and cost:
//
//	st := stats.New(records)
//	perYear := st.Years(stats.Cost)
//	liters := st.Total(stats.Liters)
package stats
