package types

import "fmt"

// Channel represents a reminder delivery channel
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// AllChannels returns all valid channels
func AllChannels() []Channel {
	return []Channel{ChannelEmail, ChannelSMS}
}

// IsValid checks if the channel is valid
func (c Channel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelSMS:
		return true
	default:
		return false
	}
}

// String returns the string representation of the channel
func (c Channel) String() string {
	return string(c)
}

// ParseChannel parses a string into a Channel
func ParseChannel(s string) (Channel, error) {
	c := Channel(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid channel: %s", s)
	}
	return c, nil
}
