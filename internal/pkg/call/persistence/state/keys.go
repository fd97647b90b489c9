package state

// Key naming is a wire contract with other services reading the same store;
// it must stay stable across migrations.

func voiceParticipantKey(channelID string, userID string) string {
	return "voice:" + channelID + ":" + userID
}

func voiceChannelKey(channelID string) string {
	return "voice:channel:" + channelID
}

func ringKey(channelID string, userID string) string {
	return "ring:" + channelID + ":" + userID
}

func ringChannelKey(channelID string) string {
	return "ring:channel:" + channelID
}
