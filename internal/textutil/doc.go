// Package textutil provides term-frequency fingerprints for comparing
// longer prose fields, such as catalog summaries against release
// descriptions. Token-level heuristics for release titles live in
// normalize; this package handles free text where word order and exact
// phrasing vary between stores.
package textutil
