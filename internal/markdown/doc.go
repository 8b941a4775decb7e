// Package markdown discovers requirement files on disk, splits optional front
// matter from the Markdown body, and renders Markdown to HTML with goldmark.
// It knows nothing about the requirement micro-format itself.
package markdown
