// Package frontmatter declares the closed frontmatter schema for each
// proposal class and implements its two phases: Cast, which coerces loosely
// typed YAML values into the declared kinds, and Validate, which checks the
// coerced record with ozzo-validation and reports every failing field.
package frontmatter
