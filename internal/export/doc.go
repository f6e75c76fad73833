// Package export writes metric samples as CSV, JSON, SVG and animated GIF.
package export
