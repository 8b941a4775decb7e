// Package requirements implements the requirement document workflows: file
// naming, id allocation, template rendering, scanning, and the index table.
//
// A requirement file is plain Markdown. The first line is the title heading;
// later lines carry "**Id**: <id>" and "**Context**: <context>". Anything
// else in the file is free-form and ignored by the scanner.
package requirements
