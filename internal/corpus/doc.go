// Package corpus persists labeled match samples backed by SQLite.
//
// A sample pairs a catalog game name with a candidate title, the reason
// trail the scorer produced, and a human label. The store feeds threshold
// tuning: a sweep walks candidate thresholds over the labeled set and
// records precision/recall per evaluation run.
//
// CSV import and export use the flat wire form with reasons joined by "|",
// so labeled sets round-trip through spreadsheets and training scripts.
package corpus
