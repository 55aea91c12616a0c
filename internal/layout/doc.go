// Package layout decides where an organized file belongs.
//
// It maps file extensions to category folders (RAW, <EXT>/Originals, plain
// uppercased extensions, NO_EXTENSION), formats the date folder, and searches
// for the first free file name inside a target directory. Everything here is
// pure: filesystem access is injected by the caller so the rules can be
// exercised without touching disk.
package layout
