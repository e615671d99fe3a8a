// Package scene compiles CUE scene files into the run configuration:
// which boundary to load, the sampling step, the sun position, the
// elevation source, the palette, and where artifacts go.
//
// A scene file looks like:
//
//	scene: {
//		region:   "São Paulo"
//		boundary: "boundaries/sao-paulo.geojson"
//		grid: step: 0.01
//		sun: { azimuth: 315, altitude: 45 }
//		dem: { source: "srtm", dir: "./srtm" }
//		palette: "palettes/terrain.yaml"
//		out: "./out"
//	}
//
// Only region and boundary are required; everything else has the same
// defaults as the command-line flags. Compilation uses the CUE Go API
// directly and reports structured errors with file positions.
package scene
