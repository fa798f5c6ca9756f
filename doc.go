// Package morphology implements connected-component attribute filters and
// grayscale reconstruction for 8-bit grayscale images.
//
// Attribute openings and closings remove flat image components whose shape
// attribute (area, bounding-box squareness, fill ratio) falls below a
// threshold lambda. The filter engine builds a max-tree over the pixels with
// Tarjan's union-find algorithm, implemented after
//
// M. H. F. Wilkinson & J. B. T. M. Roerdink (2000): "Fast Morphological
// Attribute Operations Using Tarjan's Union-Find Algorithm". In Proceedings
// of the ISMM2000, pp. 311-320.
//
// A. Meijster & M. H. F. Wilkinson (2002): "A comparison of algorithms for
// connected set openings and closings". In IEEE Transactions on Pattern
// Analysis and Machine Intelligence, 24(4):484-494.
//
// Basic usage:
//
//	opened, err := morphology.Open(img, 100, morphology.Area)
//	// opened has every bright component of area < 100 removed
//
//	spectrum, err := morphology.Granulometry(img, 5000, morphology.Area)
//	// spectrum[i] is the area-weighted gray volume removed at attribute i
//
// The grayscale reconstruction operators, including the h-dome and h-basin
// transforms derived from them, follow
//
// L. Vincent (1993): "Morphological grayscale reconstruction in image
// analysis: applications and efficient algorithms". In IEEE Transactions on
// Image Processing, 2(2):176-201.
//
//	domes, err := morphology.HDomes(img, 20)
//	// domes contains the regional maxima exceeding contrast 20
//
// Images are stdlib *image.Gray. The engines never do I/O and never log;
// precondition violations surface as errors wrapping the Err* sentinels.
package morphology
