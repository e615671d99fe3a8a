// Package render draws the two output plots: the 2D shaded-relief map
// and the 3D elevation surface. Both share the same hypsometric color
// ramp and hillshade multiplier; both write PNG through a gg canvas.
package render
