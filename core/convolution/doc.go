// Package convolution holds the closed-form combination rules for
// independent random variables: sums, sums of squares and the square root of
// sums of squares.
//
// Every rule exists in a typed pairwise form (SumNormal) and, where it
// generalizes, a typed n-ary form over a slice (SumNormals). Parameters that
// must agree across operands are compared exactly against the first operand;
// a mismatch is reported as a *PreconditionError. The pairwise forms are
// registered in dispatch tables (NewSumTable and friends) so callers holding
// density.Distribution values can combine them without knowing the concrete
// families. Engine bundles the three tables.
package convolution
