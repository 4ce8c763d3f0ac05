// Package scene defines the world document data model: a versioned,
// hierarchical forest of named, tagged, transformable nodes referencing a
// shared asset library.
//
// Documents follow an immutable-update discipline. They are never edited in
// place; every mutation produces a new Document value that structurally
// shares unchanged subtrees with its predecessor. The shallow Clone helpers
// on Document and Node exist to support that discipline.
package scene
