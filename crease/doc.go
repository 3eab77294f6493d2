// Package crease builds the crease pattern: the vertices, creases, and
// facets of the universal molecule, populated once package polygon has
// built every poly's inset sub-structure.
//
// The build is tree-wide and staged. Bands come first: every top-level
// ring path (axial) and every active inset ring path (gusset) is a
// band; inactive inset ring paths bear no creases, and the band beneath
// them sees through to their ridgeline. Active bands get a vertex at
// every tree branch node falling within their metric, and a hinge rises
// from each such foot to the perpendicular intersection with the band's
// ridgeline -- creating a ridge-side vertex that inherits the foot's
// tree node, the inheritance that later stitches the local-root
// networks together. Each band's sorted ridgeline vertices are then
// joined by ridge creases, and inactive axial bands propagate hinges
// downward instead: a ridgeline vertex projecting a tree node drops a
// regular hinge, one projecting none but flanked by two vertices of the
// same tree node drops a pseudohinge, and each completed
// regular-pseudo-regular triplet records its two regular feet as
// pseudohinge mates. Finally every structural path is segmented into
// Axial or Gusset creases between consecutive vertices, and
// BuildFacetsFromCreases traces every bounded region of each top-level
// poly's crease set into a Facet, linking forward/backward facet
// pointers and rotating each facet so an axial-or-gusset crease is its
// index-0 bottom.
//
// One file per construction stage: hinge emission in hinge.go,
// ridgeline resolution in ridgeline.go, band/path segmentation in
// build.go, and facet tracing in facets.go.
package crease
