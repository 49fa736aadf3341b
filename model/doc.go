// Package model defines the geometric primitives and data types shared by
// the extraction pipeline.
//
// All coordinates are in page-image space: the origin is the top-left
// corner of the page raster and Y grows downward. [Rect] provides the
// spatial operations (intersection, union, vertical overlap, nearest
// right-neighbor distance) the field extractor builds on, and [Element]
// models one positioned OCR word.
package model
