// Package webhook provides single-attempt HTTP webhook delivery with request
// signing.
//
// Each Send marshals the payload to JSON, POSTs it once, and reports the
// outcome. There is deliberately no retry loop here: the notification
// dispatcher treats every channel attempt as at-most-once and bounds it with
// its own delivery timeout, so layering retries underneath would hide
// failures from the dispatch outcome accounting.
//
//	sender := webhook.NewSender()
//	err := sender.Send(ctx, endpoint, payload,
//	    webhook.WithTimeout(5*time.Second),
//	    webhook.WithSignature(secret),
//	)
//
// Payloads are signed with HMAC-SHA256 bound to a timestamp, following the
// signature scheme popularized by Stripe and GitHub. VerifySignature is the
// receiving-side counterpart.
package webhook
