// Package domain holds the value types shared by the validator and the
// exporter: proposal statuses, document classes and the closed enumerations
// that frontmatter fields are checked against.
package domain
