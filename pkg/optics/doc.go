/*
Package optics holds the paraxial ray-transfer algebra used by the rail engine.

A ray state is the column vector [height, angle] (mm, mrad). Every element acts on
it as an affine map:

	out = M · in + o

where M is a 2x2 ABCD Matrix and o an Offset. Composition of two elements, first
(M1, o1) then (M2, o2), is (M2·M1, M2·o1 + o2).
*/
package optics
