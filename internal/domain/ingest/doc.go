// Package ingest defines the synchronization vocabulary shared by the webhook
// and backfill paths: resource kinds, webhook topics, pagination cursors, the
// wire payload shapes received from the upstream platform, and the ports for
// run coordination and page fetching.
package ingest
