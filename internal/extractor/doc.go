// Package extractor turns raw HTML into cleaned plain text and the set of
// outbound links found in the document.
//
// Design decision: We use golang.org/x/net/html for parsing rather than
// regex because:
//  1. It correctly handles malformed HTML common on the web
//  2. Provides a proper DOM-like structure for skipping script/style
//     subtrees instead of trying to pattern-match them out
//  3. Standard library extension, well-maintained
package extractor
