//go:build !virtualdebug

package virtual

// debugBounds turns out-of-range offset reads into panics. Build with
// -tags virtualdebug to enable it.
const debugBounds = false
