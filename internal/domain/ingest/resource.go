package ingest

// Resource identifies one upstream collection that can be synchronized
type Resource string

const (
	ResourceProducts  Resource = "products"
	ResourceCustomers Resource = "customers"
	ResourceOrders    Resource = "orders"
)

// IsValid reports whether the resource is one of the synchronized collections
func (r Resource) IsValid() bool {
	switch r {
	case ResourceProducts, ResourceCustomers, ResourceOrders:
		return true
	}
	return false
}

// CursorMode returns the pagination mode the upstream requires for this
// resource. Orders only page via opaque page tokens; the id-ordered
// collections page via since-id.
func (r Resource) CursorMode() CursorMode {
	if r == ResourceOrders {
		return CursorModePageToken
	}
	return CursorModeSinceID
}

// Topic is a webhook topic string such as "orders/create". The prefix before
// the slash selects the entity family; the suffix verb is not significant for
// idempotent application.
type Topic string

// Resource maps the topic to the resource family it mutates. The second
// return is false for topics outside the synchronized families; those are
// acknowledged without any mutation.
func (t Topic) Resource() (Resource, bool) {
	s := string(t)
	for _, r := range []Resource{ResourceOrders, ResourceCustomers, ResourceProducts} {
		prefix := string(r) + "/"
		if len(s) > len(prefix) && s[:len(prefix)] == prefix {
			return r, true
		}
	}
	return "", false
}
