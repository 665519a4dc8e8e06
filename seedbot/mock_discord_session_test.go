package seedbot

import (
	"errors"
	"io"

	"github.com/bwmarrin/discordgo"
)

// FOR TESTING
type MockDiscordSession struct {
	channelMessages     map[string][]string
	channelFiles        map[string][][]byte
	channelTypingCalled map[string]bool
	dmChannels          map[string]string
	failFileSend        bool
	State               *discordgo.State
}

func NewMockDiscordSession() *MockDiscordSession {
	return &MockDiscordSession{
		channelMessages:     make(map[string][]string),
		channelFiles:        make(map[string][][]byte),
		channelTypingCalled: make(map[string]bool),
		dmChannels:          make(map[string]string),
	}
}

func (m *MockDiscordSession) Open() error {
	return nil
}

func (m *MockDiscordSession) Close() error {
	return nil
}

func (m *MockDiscordSession) ChannelMessageSend(
	channelID, content string,
	options ...discordgo.RequestOption,
) (*discordgo.Message, error) {
	m.channelMessages[channelID] = append(m.channelMessages[channelID], content)
	return nil, nil
}

func (m *MockDiscordSession) ChannelFileSend(
	channelID, name string,
	r io.Reader,
	options ...discordgo.RequestOption,
) (*discordgo.Message, error) {
	if m.failFileSend {
		return nil, errors.New("file send failed")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.channelFiles[channelID] = append(m.channelFiles[channelID], data)
	return nil, nil
}

func (m *MockDiscordSession) ChannelTyping(
	channelID string,
	options ...discordgo.RequestOption,
) error {
	m.channelTypingCalled[channelID] = true
	return nil
}

func (m *MockDiscordSession) UserChannelCreate(
	recipientID string,
	options ...discordgo.RequestOption,
) (*discordgo.Channel, error) {
	channelID, ok := m.dmChannels[recipientID]
	if !ok {
		return nil, errors.New("unknown user")
	}
	return &discordgo.Channel{ID: channelID}, nil
}

func (m *MockDiscordSession) AddHandler(handler interface{}) func() {
	return func() {}
}

func (m *MockDiscordSession) GetState() *discordgo.State {
	return m.State
}
