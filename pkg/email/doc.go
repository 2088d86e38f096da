// Package email provides transactional email delivery behind the EmailSender
// interface. Two implementations ship with it: a Postmark-backed client for
// production and a filesystem DevSender that writes outgoing mail to disk for
// local development.
//
// The email delivery channel sends through this interface, so swapping
// providers never touches dispatch logic.
package email
