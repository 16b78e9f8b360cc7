package domain

import "strings"

type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

// Channels lists every supported delivery channel.
var Channels = []Channel{ChannelSMS, ChannelWhatsApp}

func (c Channel) Valid() bool {
	return c == ChannelSMS || c == ChannelWhatsApp
}

// ParseChannel normalizes user input ("SMS", " WhatsApp ") to a Channel.
// The returned value must still be checked with Valid.
func ParseChannel(s string) Channel {
	return Channel(strings.ToLower(strings.TrimSpace(s)))
}
