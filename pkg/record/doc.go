// Package record decodes single SMF record frames into typed records.
//
// A frame is one length-prefixed physical record as produced by package
// frame. Every frame starts with a common header:
//
//	[0:2)   RDW length (big-endian, covers the whole frame)
//	[2:4)   RDW reserved
//	[4:6)   record length (informational)
//	[6:7)   segment descriptor
//	[7:8)   flags
//	[8:9)   record family (30 = job accounting, 110 = CICS statistics)
//	[9:10)  reserved
//	[10:14) timestamp (TOD word, carried opaque)
//	[14:18) system id (EBCDIC)
//	[18:22) subsystem id (EBCDIC)
//	[22:23) subtype discriminator
//	[23:L)  subtype-specific payload
//
// Payload decoding is data-driven: each subtype has an ordered table of
// FieldSpec descriptors (name, offset, width, kind, unit scale,
// plausibility ceiling) applied by DecodeFields. A field whose span falls
// outside the frame takes its zero value; an integer above its ceiling is
// reset to zero as likely misaligned. Decoding a frame therefore always
// yields a complete record — malformed input degrades field by field,
// never record by record.
//
// Where a field's base offset is not stable across format revisions, the
// Locate heuristic probes an ordered candidate list against a
// plausibility predicate (see the smf30 package for its use).
//
// A Registry maps subtype values to decode functions; Dispatch routes a
// decoded header to the matching decoder and reports unregistered
// subtypes with UnknownSubtypeError.
package record
