// Package tokenizer turns cleaned page text into normalized token
// sequences for the frequency index.
//
// Two interchangeable implementations exist: a linguistically-aware
// segmenter built on Unicode Text Segmentation (UAX #29) word boundaries,
// and a regex fallback. The variant is selected once at startup; the crawl
// engine is agnostic to which one is active.
//
// Design decision: We use the clipperhouse/uax29 segmenter for the primary
// tokenizer rather than strings.FieldsFunc because:
//  1. UAX #29 word boundaries handle contractions, CJK text, and
//     punctuation correctly where naive splitting does not
//  2. It allocates per token only, not per rune
//  3. The regex variant remains as a dependency-light fallback
package tokenizer
