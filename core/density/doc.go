// Package density defines the closed set of distribution families handled by
// the engine and the Distribution interface they share.
//
// Distributions are immutable values. Each family validates its parameters on
// construction, exposes pdf/cdf and the first three moments, and carries a
// structural identity: a reproducible 64-bit hash of the family tag and every
// parameter, plus field-by-field comparison within an absolute tolerance or a
// number of ULPs.
//
//	n, err := density.NewNormal(1, 4)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(n.CDF(1)) // 0.5
package density
