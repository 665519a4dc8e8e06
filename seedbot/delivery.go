package seedbot

import (
	"bytes"
	"encoding/base64"
	"log"
)

// Destination identifies where a request came from and where the image goes
// back to. GuildID is empty for direct messages.
type Destination struct {
	GuildID   string
	ChannelID string
	UserID    string
}

func (d Destination) IsGroup() bool {
	return d.GuildID != ""
}

// ImageSender delivers images and status text to a destination. Both calls
// report success as a plain bool; delivery errors are logged and swallowed,
// never propagated.
type ImageSender interface {
	SendImage(dest Destination, base64Image string) bool
	SendText(dest Destination, content string) bool
}

const IMAGE_FILENAME = "seedbot.png"

type discordSender struct {
	dg DiscordSession
}

func NewDiscordSender(dg DiscordSession) ImageSender {
	return &discordSender{dg: dg}
}

func (s *discordSender) SendImage(dest Destination, base64Image string) bool {
	imageBytes, err := base64.StdEncoding.DecodeString(base64Image)
	if err != nil {
		log.Println("could not decode image payload: ", err)
		return false
	}
	channelID, ok := s.resolveChannel(dest)
	if !ok {
		return false
	}
	if _, err := s.dg.ChannelFileSend(channelID, IMAGE_FILENAME, bytes.NewReader(imageBytes)); err != nil {
		log.Println("could not send image: ", err)
		return false
	}
	return true
}

func (s *discordSender) SendText(dest Destination, content string) bool {
	channelID, ok := s.resolveChannel(dest)
	if !ok {
		return false
	}
	if _, err := s.dg.ChannelMessageSend(channelID, content); err != nil {
		log.Println("could not send message: ", err)
		return false
	}
	return true
}

// group messages go back to the originating channel; direct messages go
// through a DM channel with the user
func (s *discordSender) resolveChannel(dest Destination) (string, bool) {
	if dest.IsGroup() {
		return dest.ChannelID, true
	}
	channel, err := s.dg.UserChannelCreate(dest.UserID)
	if err != nil {
		log.Println("could not create DM channel: ", err)
		return "", false
	}
	return channel.ID, true
}
