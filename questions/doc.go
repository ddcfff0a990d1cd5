// Package questions defines the company screening question domain: the
// Provider interface agents consume, the Manager interface the admin API
// consumes, and an in-memory implementation of both. The Firestore-backed
// implementation lives in the firestore subpackage so higher layers never
// depend on a concrete store.
package questions
