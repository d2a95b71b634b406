// Package signal is the single home of the reason-string wire contract.
//
// The reasons list on a match result doubles as a serialization format: the
// same strings are parsed back into features by the model filter and by
// offline labeling tooling. Every format that is parsed downstream is
// rendered by a builder here and consumed by the matching parser here, so the
// textual contract lives in exactly one place.
package signal
