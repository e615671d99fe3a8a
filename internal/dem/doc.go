// Package dem holds the raster side of the pipeline: the elevation
// grid with its affine transform, the samplers that fill it (local
// SRTM tiles or a remote lookup service), polygon clipping, and the
// ESRI ASCII grid codec used for the intermediate artifacts.
//
// A Grid is row-major with row 0 at the northern edge, matching the
// GDAL geotransform convention. Clipping never touches the transform
// or the dimensions; it only replaces cell values with NoData, so a
// grid and its transform stay consistent through the whole run.
package dem
