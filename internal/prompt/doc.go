// Package prompt is the boundary between the scaffolder and whoever answers
// its questions. The pipeline only sees the Asker interface, so it can be
// driven from a terminal (Terminal) or from literal replies (Scripted).
package prompt
