// Package commerce contains the entities ingested from the upstream
// e-commerce platform (stores, customers, orders, products) and their
// repository ports. Every entity is owned by exactly one Store; the store is
// the tenant boundary for all lookups and all upsert keys.
package commerce
