// Package bag models a school bag: a capacity-limited, ordered list of items
// checked against a fixed set of mandatory item names. Weight, missing
// mandatory items and the status summary are derived on every call.
package bag
