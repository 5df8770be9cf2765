// Package resolve maps free-text catalog names to canonical reference IDs.
//
// A ReferenceIndex is built from a reference table (actresses, genres,
// makers, series) and keeps names in insertion order so that the
// case-insensitive fallback always picks the same entity for the same input.
// An AliasIndex holds alternate spellings and is only consulted after every
// ReferenceIndex pass has failed.
//
// Resolve applies the lookup cascade: exact, case-insensitive, parenthetical
// stripped, alias. The secondary passes trade precision for recall and may
// return a different entity than intended when names collide after
// normalization; callers that need certainty should inspect the Step.
package resolve
