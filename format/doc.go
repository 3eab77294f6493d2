// Package format reads and writes TreeMaker's persistent tree file
// format: a text, line-delimited, tag-per-record layout tolerant
// of both "\n" and "\r\n" on input, emitting "\n" (or, in legacy export
// mode, a bare "\r").
//
// Built against the tree package's raw-load surface (tree/rawbuild.go:
// BeginRawLoad/AddRawNode/AddRawEdge/SetRootNode/FinishRawLoad). Scalar
// encoding is a small, allocation-light bufio.Scanner loop rather than a
// general-purpose serialization library: the wire format's escaping and
// fixed-point rules are bespoke, and no off-the-shelf codec
// (encoding/json, protobuf, etc.) speaks this dialect.
//
// Scope: the persistent format's tree/node/edge/condition/paper header
// records fully determine a Tree's independent state; everything else
// (paths, polys, vertices, creases, facets, and every per-part derived
// flag such as Border/Pinned/Conditioned) is a pure function of that
// state the cleanup pipeline recomputes identically every time it
// runs. So this package only serializes nodes, edges, paper/scale/
// symmetry, and conditions -- the record counts for paths/polys/
// vertices/creases/facets are always written as 0 and those sections
// are omitted, and Load reconstructs the rest by running the same
// raw-load-then-cleanup path Bootstrap uses. A byte-exact implementation
// of the legacy 3.0/4.0 inline-constraint node fields is out of scope
// for the same reason a GUI is: this package accepts those version
// tokens without erroring (IoBadTreeVersion is only for a token that
// isn't a recognised version at all) but does not translate their
// payload, which is recorded as an open decision rather than silently
// dropped.
package format
