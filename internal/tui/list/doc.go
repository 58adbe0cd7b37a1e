// Package listview provides a scrolling single-selection list for Bubble Tea programs.
//
// Only the rows inside the viewport are rendered, so long option lists stay cheap to draw.
// Navigation covers up/down, j/k, pgup/pgdown and home/end.
package listview
