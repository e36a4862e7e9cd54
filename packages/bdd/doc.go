// Package bdd is the human-facing way to build a suite: nested
// Describe blocks, It test cases, and lifecycle hooks, all thin
// wrappers over a harness.
//
//	s := bdd.New("math")
//	s.Describe("addition", func(s *bdd.Suite) {
//		s.BeforeEach(resetCalculator)
//		s.It("adds", func(ctx context.Context) error { ... })
//	})
//	result, err := s.Run(ctx, harness.Options{})
//
// Registration mistakes (empty name, nil function) are programmer
// errors and panic, keeping the chaining style free of error returns.
package bdd
