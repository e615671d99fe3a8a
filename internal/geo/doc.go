// Package geo loads region boundaries from GeoJSON and answers the two
// geometric questions the pipeline needs: the bounding box to sample
// over, and whether a grid cell center falls inside the region.
//
// All coordinates are WGS84 longitude/latitude (EPSG:4326). The package
// deliberately does no reprojection; the sampling grid and both plots
// stay in geographic coordinates.
package geo
