// Package mapping provides the YAML schema, parsing and validation of
// tag-mapping rules: the configuration that tells the control resolver which
// implementation a prefixed markup tag stands for.
//
// # Schema Overview
//
//	version: "1"
//	controls:
//	  # code rule: every <cc:Name> resolves to the compiled control
//	  # "App.Controls.Name, App"
//	  - tagPrefix: cc
//	    namespace: App.Controls
//	    assembly: App
//	  # markup rule: <cc:Card> is compiled from a markup file
//	  - tagPrefix: cc
//	    tagName: Card
//	    src: markup/Card.dothtml
//
// # Matching
//
// Rules are evaluated in declaration order and the first rule whose prefix
// (and tag name, when the rule has one) equals the requested tag wins.
// Comparison is case-insensitive. A markup rule declared after a code rule
// with the same prefix is therefore never reached; Validate reports it.
//
// # Rule Kinds
//
//   - Code rule: tagPrefix + namespace + assembly, no tagName, no src.
//   - Markup rule: tagPrefix + tagName + src, no namespace, no assembly.
package mapping
