package seedbot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

const TEST_BOT_ID = "BOT"

func newMessage(channelID, authorID, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			ID:        "1",
			GuildID:   "G",
			ChannelID: channelID,
			Content:   content,
			Author:    &discordgo.User{ID: authorID},
		},
	}
}

func newTestBot(dg DiscordSession) *Seedbot {
	gen := &fakeGenerator{}
	return &Seedbot{
		DiscordSession: dg,
		Action:         NewImageAction(testConfig(), gen, nil, &fakeSender{}, nil, nil),
	}
}

func TestMessageCreateIgnoresChatter(t *testing.T) {
	dg := NewMockDiscordSession()
	dg.State = &discordgo.State{
		Ready: discordgo.Ready{User: &discordgo.User{ID: TEST_BOT_ID}},
	}
	bot := newTestBot(dg)

	messageCreate(dg, newMessage("C", "USER", "just chatting"), bot)
	if dg.channelTypingCalled["C"] {
		t.Fatal("non-draw messages must be ignored")
	}
}

func TestMessageCreateIgnoresOwnMessages(t *testing.T) {
	dg := NewMockDiscordSession()
	dg.State = &discordgo.State{
		Ready: discordgo.Ready{User: &discordgo.User{ID: TEST_BOT_ID}},
	}
	bot := newTestBot(dg)

	messageCreate(dg, newMessage("C", TEST_BOT_ID, "draw a cat"), bot)
	if dg.channelTypingCalled["C"] {
		t.Fatal("the bot's own messages must be ignored")
	}
}

func TestMessageCreateAcceptsDrawKeyword(t *testing.T) {
	dg := NewMockDiscordSession()
	dg.State = &discordgo.State{
		Ready: discordgo.Ready{User: &discordgo.User{ID: TEST_BOT_ID}},
	}
	bot := newTestBot(dg)

	messageCreate(dg, newMessage("C", "USER", "draw a red fox"), bot)
	if !dg.channelTypingCalled["C"] {
		t.Fatal("draw keyword must trigger the action")
	}
}

func TestMatchDrawRequest(t *testing.T) {
	tests := []struct {
		content  string
		wantDesc string
		wantOK   bool
	}{
		{"画一只可爱的小猫", "一只可爱的小猫", true},
		{"画图：夕阳下的海边", "夕阳下的海边", true},
		{"draw a red fox", "a red fox", true},
		{"Draw a red fox", "a red fox", true},
		{"paint: a castle", "a castle", true},
		{"生成图片 蓝色的龙", "蓝色的龙", true},
		{"今天天气怎么样", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		desc, ok := matchDrawRequest(tt.content)
		if ok != tt.wantOK || desc != tt.wantDesc {
			t.Errorf("matchDrawRequest(%q) = (%q, %v), want (%q, %v)",
				tt.content, desc, ok, tt.wantDesc, tt.wantOK)
		}
	}
}

func TestSplitSizeSuffix(t *testing.T) {
	desc, size := splitSizeSuffix("a red fox 1024x1024")
	if desc != "a red fox" || size != "1024x1024" {
		t.Fatalf("unexpected split: %q %q", desc, size)
	}

	desc, size = splitSizeSuffix("a red fox")
	if desc != "a red fox" || size != "" {
		t.Fatalf("plain description must pass through: %q %q", desc, size)
	}

	// out-of-range token stays part of the description
	desc, size = splitSizeSuffix("a red fox 50x50")
	if desc != "a red fox 50x50" || size != "" {
		t.Fatalf("invalid size must not be lifted: %q %q", desc, size)
	}
}
