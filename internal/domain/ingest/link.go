package ingest

// LinkOutcome reports how customer attribution went for an order write
type LinkOutcome int

const (
	// LinkNone means the payload carried no customer reference; the order
	// is complete without one.
	LinkNone LinkOutcome = iota
	// Linked means the customer was resolved and the order references it.
	Linked
	// LinkDegraded means resolution failed but the order was still written
	// without the link. The failure is logged, never fatal.
	LinkDegraded
)

func (o LinkOutcome) String() string {
	switch o {
	case Linked:
		return "linked"
	case LinkDegraded:
		return "degraded"
	default:
		return "none"
	}
}
