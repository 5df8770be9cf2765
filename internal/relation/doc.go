// Package relation builds video-to-reference relationship tables.
//
// Extract walks every primary record once, splits its free-text relation
// fields, resolves each name through package resolve, and returns one pair
// list and one unresolved-name accumulator per relation kind. Nothing here
// aborts on an unknown name; misses are only collected and reported.
package relation
