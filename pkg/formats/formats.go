// Package formats provides the flat encodings used to move height fields and
// contour polylines across a host boundary.
package formats

// Note: the polyline separator encoding is implemented in borders.go
// Note: the binary frame layout is implemented in frame.go
