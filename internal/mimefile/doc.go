// Package mimefile reads pseudo-MIME metadata files into flat key/value maps.
//
// A pseudo-MIME file is UTF-8 text made of "key: value" lines, the shape used
// by PKG-INFO style metadata. Only the first ": " on a line separates key from
// value; lines without it are ignored and later keys overwrite earlier ones.
// There is no header folding, no multi-line values, and no charset handling
// beyond rejecting invalid UTF-8.
package mimefile
