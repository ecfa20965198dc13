/*
Package dsl builds weighted graphs for the traversal algorithms, either with
a fluent builder or from a compact edge list.

Builder usage:

	b := dsl.New()
	b.Add("A").At(100, 100).To("B", 4).To("D", 2)
	b.Add("B").To("C", 3)
	g, err := b.Build()

Edge list usage, as accepted by the command line:

	g, err := dsl.Parse("A-B:4, A-D:2, B-C:3, Z")

Nodes without an explicit position are laid out on a circle.
*/
package dsl
