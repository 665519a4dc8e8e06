package seedbot

import (
	"io"

	"github.com/bwmarrin/discordgo"
)

// discordgo.Session interface wrapping for modularity and testing
// implements methods used in this project
type DiscordSession interface {
	Open() error
	Close() error

	// see discordgo.Session.ChannelMessageSend
	ChannelMessageSend(
		channelID, content string,
		options ...discordgo.RequestOption,
	) (*discordgo.Message, error)

	// see discordgo.Session.ChannelFileSend
	ChannelFileSend(
		channelID, name string,
		r io.Reader,
		options ...discordgo.RequestOption,
	) (*discordgo.Message, error)

	// see discordgo.Session.ChannelTyping()
	ChannelTyping(channelID string, options ...discordgo.RequestOption) error

	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)

	AddHandler(handler interface{}) func()

	// wraps discordgo.Session.State
	GetState() *discordgo.State
}

// wrapper
type DiscordBot struct {
	*discordgo.Session
}

func NewDiscordBot(session *discordgo.Session) *DiscordBot {
	return &DiscordBot{Session: session}
}

func (bot *DiscordBot) GetState() *discordgo.State {
	return bot.State
}
