package usecase

// Collection keys in the blob store. The values are part of the persisted
// data contract and must not change.
const (
	KeyTransactions = "transactions"
	KeyGroups       = "groups"
	KeyTours        = "TOURS_DATA"
)
