package seedbot

import (
	"context"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const REWRITE_INSTRUCTIONS = `你是一个友好的聊天机器人。把下面的状态消息用自然、简短的语气改写一遍，保留原意，不要添加额外信息。`

// ReplyRewriter rephrases canned status lines through a chat model before
// they go out, so the bot doesn't repeat itself verbatim. A nil rewriter or
// nil client sends the raw line unchanged.
type ReplyRewriter struct {
	client *openai.Client
	model  string
}

func NewReplyRewriter(client *openai.Client, model string) *ReplyRewriter {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &ReplyRewriter{client: client, model: model}
}

// Rewrite returns a rephrased version of raw, or raw itself on any failure.
// reason gives the model context about why the message is being sent.
func (r *ReplyRewriter) Rewrite(ctx context.Context, raw, reason string) string {
	if r == nil || r.client == nil {
		return raw
	}
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     r.model,
		MaxTokens: 150,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: REWRITE_INSTRUCTIONS + "\n改写场景: " + reason,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: raw,
			},
		},
	})
	if err != nil {
		log.Println("unable to rewrite reply: ", err)
		return raw
	}
	if len(resp.Choices) == 0 {
		return raw
	}
	rewritten := strings.TrimSpace(resp.Choices[0].Message.Content)
	if rewritten == "" {
		return raw
	}
	return rewritten
}
