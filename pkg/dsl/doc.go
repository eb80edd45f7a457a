/*
Package dsl provides a fluent Go builder for optical rails.

It is an alternative to YAML/JSON rail files when rails are generated in code,
for example when sweeping a lens position or writing tests.

Example usage:

	req, err := dsl.New().
		Space(100).
		Add("L1", "thin_lens").Set("focal_length", 50).
		Space(50).
		Ray("marginal", 1, 0).
		Build(catalog.Default())
	if err != nil {
		log.Fatal(err)
	}
	res, err := engine.Trace(ctx, req)
*/
package dsl
