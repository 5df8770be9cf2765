// Package dataset reads and writes the delimited tables the catalog tools
// operate on and turns them into typed records.
//
// Tables are loaded fully into memory. Header names are trimmed, a UTF-8 BOM
// is dropped, short rows are padded, and quoting follows encoding/csv with
// lazy quotes so hand-edited exports still load. Missing input files surface
// as ErrMissingFile and bad required fields as *MalformedRecordError; both
// are fatal for the run that hits them.
package dataset
