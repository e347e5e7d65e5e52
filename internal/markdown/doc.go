// Package markdown loads proposal documents from the content root: it
// resolves glob patterns, splits the frontmatter block from the Markdown
// body and renders bodies to HTML with goldmark.
package markdown
