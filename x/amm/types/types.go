package types

// Address identifies an account, pool, or ledger participant.
// The zero value is the null identity and is never a valid party.
type Address string

// Empty reports whether the address is the null identity.
func (a Address) Empty() bool {
	return a == ""
}

func (a Address) String() string {
	return string(a)
}
