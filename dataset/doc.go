// Package dataset holds decoded directional audio content in memory and
// implements the reader contract of the interfaces package on top of it.
//
// A [Dataset] is immutable once built. Several [Reader] instances may share
// one Dataset; each reader keeps its own open/closed state.
//
// # Grid
//
// Records are laid out on an equiangular two-angle grid. Beta rows run from
// BetaStart to BetaEnd in steps of BetaResolution. A row lying on a pole
// (beta 0 or 180) holds a single record at alpha 0; every other row holds
// one record per alpha point. Records are numbered row by row, starting at
// the first beta row.
//
// # Views
//
// Stored coordinates use the data view (alpha, beta). Queries may use the
// object view (phi, theta); [ObjectToData] and [DataToObject] convert
// between the two using the file orientation.
package dataset
