// Package wikitext converts MediaWiki markup into plain paragraph text.
//
// This package contains the following main types:
//   - Parser: Extracts plain paragraphs from raw wikitext
//   - Cleaner: Scrubs leftover markup from already-parsed text
//
// The corpus pairs official Wikipedia articles with their clone wiki
// counterparts, and the clones frequently carry broken markup: unclosed
// templates, stray table syntax, image parameters pasted as body text.
// The parser is therefore deliberately forgiving. Well-formed constructs
// (templates, tables, references, comments) are dropped as structure;
// malformed ones fall through as literal text and are picked up by the
// template expansion and fragment removal passes that run afterwards.
//
// Design decision: Extraction is a hand-written scanner rather than a
// grammar-based parser. The input is not trusted to be well-formed, and
// the output we need is plain text with paragraph boundaries, not a
// syntax tree. A scanner that degrades to "keep the text" on anything
// unexpected matches the salvage-oriented passes downstream.
package wikitext
