// Package gmail sends mail, saves drafts and reads messages through the
// Gmail API.
//
// Outgoing mail is assembled by NewMessage into an immutable OutboundMessage
// that renders as multipart/alternative: the plain-text body followed by an
// HTML copy in which line breaks become <br>. Replies carry the thread id plus
// In-Reply-To and References so Gmail files them under the original
// conversation.
//
// Incoming messages are reduced to their headers and a readable body with
// Body, which prefers plain text at any nesting depth and converts legacy
// charsets to UTF-8.
//
// Every API call is traced and counted through the instrumentation package.
package gmail
