// Package manifest reads packing lists: the student's name, the items to
// pack in order, and item names to unpack afterwards.
package manifest
