// Command gamematch evaluates release titles against catalog games.
//
// It exposes the match pipeline for one-off checks (match), CSV batches
// (batch), and title debugging (normalize), plus management of the labeled
// corpus (corpus), threshold tuning (tune), and model artifact utilities
// (model).
package main
