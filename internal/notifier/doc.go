// Package notifier delivers the transient success and failure notices raised
// by event mutations.
//
// A Notification is sent through a Notifier. Console renders it as a styled
// toast line on a terminal and Log writes it to the structured logger.
// Twitter and Telegram announce newly created events only. Multi fans a
// notification out to several notifiers.
package notifier
