// Package markup reads the parts of a markup file the resolver cares about:
// leading @directives, element tags with their prefix and attributes, and
// {kind: expression} binding attribute values.
//
// Element tags are tokenized with golang.org/x/net/html. The tokenizer
// lower-cases tag names, so names are re-read from the raw token text to
// keep their original spelling.
package markup
