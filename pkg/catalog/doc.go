/*
Package catalog is the component library of the rail engine.

A Catalog maps a component type name to its parameter schema and to the pure
function that turns resolved parameters into an ABCD matrix and offset. The
built-in table is compiled in (Default); deployments can derive new types from
it with YAML (Load, LoadFile) without touching the formulas.

Parameter bounds (min, max, step) describe the editor's input widgets only. The
engine accepts any finite value and only rejects true mathematical degeneracies.
*/
package catalog
