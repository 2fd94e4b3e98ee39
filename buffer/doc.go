// Package buffer provides the append-only output buffer used to
// assemble replacement results. Backing storage comes from an
// explicit Pool (built on valyala/bytebufferpool) so hot loops reuse
// memory instead of allocating per call. A Buffer grows
// geometrically up to a hard maximum and is consumed exactly once by
// Finish; Release returns its storage on error paths.
package buffer
