package number

// The methods in this file are the owned-value convenience wrappers around
// BorrowedNumber's arithmetic, matching the domain entry points
// (Number.Add/.Mul/.Pow/.Cmp) that external callers of this core use. They
// exist only for callers holding owned Numbers; code that already has
// BorrowedNumber views (e.g. freshly decoded from the packed codec) should
// call the BorrowedNumber methods directly to avoid a needless ToBorrowed.

// Add returns n+o, dispatching per BorrowedNumber.Add.
func (n Number) Add(o Number, state State) Number {
	return n.ToBorrowed().Add(o.ToBorrowed(), state)
}

// Mul returns n*o, dispatching per BorrowedNumber.Mul.
func (n Number) Mul(o Number, state State) Number {
	return n.ToBorrowed().Mul(o.ToBorrowed(), state)
}

// Pow returns n^o as a (factor, residual) pair, dispatching per
// BorrowedNumber.Pow.
func (n Number) Pow(o Number, state State) (Number, Number) {
	return n.ToBorrowed().Pow(o.ToBorrowed(), state)
}

// Cmp orders n against o, dispatching per BorrowedNumber.Cmp.
func (n Number) Cmp(o Number) int {
	return n.ToBorrowed().Cmp(o.ToBorrowed())
}
