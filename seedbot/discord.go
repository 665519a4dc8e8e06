package seedbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"seedbot/ark"
)

// keyword activation, the intent classification itself lives outside this bot
var DRAW_KEYWORDS = []string{"画图", "画", "绘制", "生成图片", "draw", "paint"}

func messageCreate(dg DiscordSession, m *discordgo.MessageCreate, bot *Seedbot) {
	if m.Author == nil || m.Author.ID == dg.GetState().User.ID {
		return
	}

	content := removeBotMention(m.Content, dg.GetState().User.ID)
	content = strings.TrimSpace(content)
	mentioned := isMentioned(m.Mentions, dg.GetState().User)

	description, ok := matchDrawRequest(content)
	if !ok {
		// a bare mention with no keyword still routes; the empty
		// description gets the guidance reply from the action
		if !mentioned || content != "" {
			return
		}
	}
	description, size := splitSizeSuffix(description)

	_ = dg.ChannelTyping(m.ChannelID)

	req := Request{
		Description: description,
		Size:        size,
		Dest: Destination{
			GuildID:   m.GuildID,
			ChannelID: m.ChannelID,
			UserID:    m.Author.ID,
		},
	}
	// the generation and download calls block; keep them off the gateway
	// event loop
	go bot.Action.Execute(context.Background(), req)
}

// matchDrawRequest strips a leading draw keyword and returns the remainder
// as the image description.
func matchDrawRequest(content string) (string, bool) {
	lowered := strings.ToLower(content)
	for _, keyword := range DRAW_KEYWORDS {
		if strings.HasPrefix(lowered, keyword) {
			rest := content[len(keyword):]
			return strings.TrimSpace(strings.TrimLeft(rest, ":：，, ")), true
		}
	}
	return "", false
}

// splitSizeSuffix lifts a trailing WxH token (e.g. "... 1024x1024") out of
// the description as the requested size.
func splitSizeSuffix(description string) (string, string) {
	idx := strings.LastIndexAny(description, " \t")
	if idx < 0 {
		return description, ""
	}
	last := strings.TrimSpace(description[idx+1:])
	if !ark.ValidateSize(last) {
		return description, ""
	}
	return strings.TrimSpace(description[:idx]), last
}

func removeBotMention(content string, botID string) string {
	mentionPattern := fmt.Sprintf("<@%s>", botID)
	// remove nicknames
	mentionPatternNick := fmt.Sprintf("<@!%s>", botID)

	content = strings.Replace(content, mentionPattern, "", -1)
	content = strings.Replace(content, mentionPatternNick, "", -1)
	return content
}

func isMentioned(mentions []*discordgo.User, currUser *discordgo.User) bool {
	for _, user := range mentions {
		if user.ID == currUser.ID {
			return true
		}
	}
	return false
}
