// Package stream adapts the ICE buffer transform to io.Reader and io.Writer.
//
// Key features:
//   - Arbitrary write/read sizes, transformed in aligned chunks
//   - Chunks go through the parallel buffer driver (configurable worker count)
//   - Chunk buffers are recycled through a sync.Pool
//   - Explicit tail policy: a final partial block is an error unless
//     PassthroughTail is set, in which case it is copied through unchanged
//
// The adapters add no framing, padding or authentication. The output of a
// Writer is exactly what ice.Cipher.Encrypt would produce for the whole
// input, so files produced here interoperate with any other ICE implementation.
package stream
