package domain

import "strings"

// Collection names of the document store.
const (
	CollectionEvents       = "events"
	CollectionParticipants = "participants"
	CollectionChannels     = "channels"
	CollectionMessages     = "messages"
)

func EventPath(eventID string) string {
	return CollectionEvents + "/" + eventID
}

func ParticipantPath(eventID, userID string) string {
	return EventPath(eventID) + "/" + CollectionParticipants + "/" + userID
}

func ChannelPath(eventID, channelID string) string {
	return EventPath(eventID) + "/" + CollectionChannels + "/" + channelID
}

func MessagePath(eventID, channelID, messageID string) string {
	return ChannelPath(eventID, channelID) + "/" + CollectionMessages + "/" + messageID
}

// ParseMessagePath splits events/{e}/channels/{c}/messages/{m} into its IDs.
// ok is false for any other path.
func ParseMessagePath(path string) (eventID, channelID, messageID string, ok bool) {
	parts := strings.Split(path, "/")
	if len(parts) != 6 ||
		parts[0] != CollectionEvents ||
		parts[2] != CollectionChannels ||
		parts[4] != CollectionMessages {
		return "", "", "", false
	}
	for _, p := range parts {
		if p == "" {
			return "", "", "", false
		}
	}
	return parts[1], parts[3], parts[5], true
}
