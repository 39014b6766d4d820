package email

import "context"

// Sender is what business code depends on to deliver mail. The Dispatcher is
// the production implementation.
type Sender interface {
	// SendEmail delivers msg and always returns a result, never panics.
	SendEmail(ctx context.Context, msg OutboundEmail) SendResult
}

// Adapter translates an OutboundEmail into one vendor's HTTP call and the
// vendor's answer back into a SendResult. Every adapter makes exactly one
// request per call and reports failures through the result.
type Adapter interface {
	Vendor() Vendor
	Send(ctx context.Context, msg OutboundEmail, credential, defaultSender string) SendResult
}

// senderOrDefault picks the message's sender, falling back to the configured default.
func senderOrDefault(msg OutboundEmail, defaultSender string) string {
	if msg.Sender != "" {
		return msg.Sender
	}
	return defaultSender
}
