// Package google loads, refreshes and stores the OAuth credentials used to
// call Gmail and Google Calendar on behalf of a single account.
//
// Credentials are kept as JSON-encoded oauth2.Token values under the
// configured credentials directory, one file per account:
//
//	<dir>/gmail/<local>_at_<domain>.token
//
// A Loader turns a stored token into a token source, refreshing and
// persisting it when it has expired, and builds HTTP clients for the Google
// API service constructors.
package google
