// Package normalize reduces noisy release titles to comparable canonical
// forms and classifies release shapes.
//
// The primary operations are:
//   - Folding titles to a lowercase ASCII comparison form
//   - Stripping edition suffixes, version strings, and container extensions
//   - Extracting a base name plus sequel number from a decorated title
//   - Deciding whether two titles name the same game, a variant of it, or a
//     different entry in the same franchise
//   - Boolean classifiers for malware decoys, non-game content, update-only,
//     DLC-only, scene, and repack releases
//
// Every operation is a pure, total function over strings. The ad-hoc token
// lists (scene groups, repacker credits, platform and language codes) live in
// tables.go so they can be tested independently of the matching flow.
package normalize
