// Package fetch downloads the series catalog from the DMM affiliate API.
//
// The API is paged by offset. FetchAll walks pages until the service answers
// with a non-200 status, an empty page, or a transport failure, and returns
// whatever it gathered up to that point. Items are kept as raw JSON so the
// document written by WriteJSON carries every field in source order.
package fetch
