package scheduler

import "fmt"

// PanicError wraps a panic recovered at the store boundary of a sync run
type PanicError struct {
	ShopDomain string
	Value      interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic while syncing %s: %v", e.ShopDomain, e.Value)
}
