// Package main provides the sqlrender command, which renders query
// documents to SQL for a chosen database dialect.
//
// The CLI supports:
//   - render: Render a YAML or JSON query document
//   - dialects: List dialects and the features each supports
//   - config show: Print the effective configuration
//   - version: Print build information
//
// Usage:
//
//	sqlrender render --dialect mysql --server-version 5.7.44 query.yaml
//	cat query.yaml | sqlrender render -
//
// Defaults for the dialect and server version come from sqlrender.yaml,
// discovered by walking up from the working directory, or from
// SQLRENDER_* environment variables.
package main

func main() {
	Execute()
}
