// Package assets holds the embedded web UI.
package assets

import _ "embed"

// Index is the compiled single page application, built by cmd/minify from
// index.html.tpl, style.css and script.js.
//
//go:embed index.html
var Index []byte

// Favicon is the site icon served at /favicon.ico.
//
//go:embed favicon.svg
var Favicon []byte
