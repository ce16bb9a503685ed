// Package types defines the entity model of the shelf catalog (authors,
// books and physical copies), the copy status enumeration, backend
// configuration and the standard errors shared by the store, the catalog
// operations and the CLI.
package types
