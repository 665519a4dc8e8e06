package seedbot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"seedbot/ark"
)

const MAX_PROMPT_LEN = 1000

// user-facing status lines, rephrased through the rewriter before sending
const (
	MSG_CONFIG_INCOMPLETE = "抱歉，图片生成功能所需的HTTP配置（如API地址或密钥）不完整，无法提供服务。"
	MSG_KEY_UNSET         = "图片生成功能尚未配置，请设置正确的API密钥。"
	MSG_EMPTY_PROMPT      = "你需要告诉我想要画什么样的图片哦~ 比如说'画一只可爱的小猫'"
	MSG_CACHE_HIT         = "我之前画过类似的图片，用之前的结果~"
	MSG_SENT              = "图片已成功生成并发送！"
	MSG_SENT_CACHED       = "图片已发送！"
	MSG_SEND_FAILED       = "图片已处理为Base64，但发送失败了。"
)

type Status int

const (
	StatusDelivered Status = iota
	StatusDeliveredFromCache
	StatusRejected
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusDelivered:
		return "delivered"
	case StatusDeliveredFromCache:
		return "delivered_from_cache"
	case StatusRejected:
		return "rejected"
	default:
		return "failed"
	}
}

func (s Status) Success() bool {
	return s == StatusDelivered || s == StatusDeliveredFromCache
}

// Outcome is the terminal state of one image request: a status plus the
// short human-readable message reported back to the host.
type Outcome struct {
	Status  Status
	Message string
}

// Request is the inbound contract from the host: a description, an optional
// size, and where to deliver.
type Request struct {
	Description string
	Size        string
	Dest        Destination
}

// Generator abstracts the provider client for testing.
type Generator interface {
	RequestGeneration(ctx context.Context, req ark.GenerationRequest) ark.GenerationResult
	DownloadAndEncode(ctx context.Context, imageURL string) (bool, string)
}

// ImageAction runs the full request lifecycle:
// validate -> cache check -> generate -> download/encode -> deliver -> cache store.
type ImageAction struct {
	cfg       *Config
	generator Generator
	cache     *ResultCache // nil when caching is disabled
	sender    ImageSender
	rewriter  *ReplyRewriter
	db        Database // nil when history is disabled
}

func NewImageAction(cfg *Config, generator Generator, cache *ResultCache, sender ImageSender, rewriter *ReplyRewriter, db Database) *ImageAction {
	return &ImageAction{
		cfg:       cfg,
		generator: generator,
		cache:     cache,
		sender:    sender,
		rewriter:  rewriter,
		db:        db,
	}
}

// Execute processes one request to a terminal outcome. It blocks on the two
// network calls, so the host dispatches it on its own goroutine; the per-call
// HTTP timeouts are the only cancellation mechanism and no failure is
// retried.
func (a *ImageAction) Execute(ctx context.Context, req Request) Outcome {
	requestID := uuid.NewString()
	prefix := fmt.Sprintf("[imagegen %.8s]", requestID)
	log.Printf("%s 执行图片生成动作", prefix)

	baseURL := a.cfg.API.BaseURL
	apiKey := a.cfg.API.VolcanoGenerateAPIKey
	if baseURL == "" || apiKey == "" {
		log.Printf("%s HTTP调用配置缺失: base_url 或 volcano_generate_api_key", prefix)
		a.sender.SendText(req.Dest, MSG_CONFIG_INCOMPLETE)
		return a.finish(requestID, req, "", "", false, Outcome{StatusRejected, "HTTP配置不完整"})
	}
	if apiKey == PLACEHOLDER_API_KEY {
		log.Printf("%s API密钥未配置", prefix)
		a.sender.SendText(req.Dest, MSG_KEY_UNSET)
		return a.finish(requestID, req, "", "", false, Outcome{StatusRejected, "API密钥未配置"})
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		log.Printf("%s 图片描述为空，无法生成图片", prefix)
		a.sender.SendText(req.Dest, MSG_EMPTY_PROMPT)
		return a.finish(requestID, req, "", "", false, Outcome{StatusRejected, "图片描述为空"})
	}
	if utf8.RuneCountInString(description) > MAX_PROMPT_LEN {
		description = ark.Truncate(description, MAX_PROMPT_LEN)
		log.Printf("%s 图片描述过长，已截断", prefix)
	}
	req.Description = description

	model := a.cfg.DefaultModel()
	size := a.resolveSize(prefix, req.Size)

	cacheKey := CacheKey(description, model, size)
	if a.cache != nil {
		if cached, ok := a.cache.Get(cacheKey); ok {
			log.Printf("%s 使用缓存的图片结果", prefix)
			a.notify(ctx, req.Dest, MSG_CACHE_HIT, "图片生成缓存命中，优化表达后发送给用户")
			if a.sender.SendImage(req.Dest, cached) {
				a.notify(ctx, req.Dest, MSG_SENT_CACHED, "图片已发送，优化表达后发送给用户")
				return a.finish(requestID, req, model, size, true, Outcome{StatusDeliveredFromCache, "图片已发送(缓存)"})
			}
			// stale entry; drop it and regenerate below
			a.cache.Remove(cacheKey)
			log.Printf("%s 缓存图片发送失败，已清除缓存项", prefix)
		}
	}

	a.notify(ctx, req.Dest,
		fmt.Sprintf("收到！正在为您生成关于 '%s' 的图片，请稍候...（模型: %s, 尺寸: %s）", description, model, size),
		"图片生成请求已收到，优化表达后发送给用户")

	genReq := ark.GenerationRequest{
		Prompt:        description,
		Model:         model,
		Size:          size,
		Seed:          a.cfg.Seed(),
		GuidanceScale: a.cfg.GuidanceScale(),
		Watermark:     a.cfg.Watermark(),
	}
	log.Printf("%s (HTTP) 发起图片请求: %s, Prompt: %s...", prefix, model, ark.Truncate(description, 30))
	result := a.generator.RequestGeneration(ctx, genReq)
	if !result.OK {
		log.Printf("%s (HTTP) 图片生成失败: %s", prefix, result.Message)
		a.notify(ctx, req.Dest, "哎呀，生成图片时遇到问题："+result.Message, "图片生成失败，优化表达后发送给用户")
		return a.finish(requestID, req, model, size, false, Outcome{StatusFailed, "图片生成失败: " + result.Message})
	}

	log.Printf("%s 图片URL获取成功: %s... 下载并编码", prefix, ark.Truncate(result.URL, 70))
	encodeOK, encoded := a.generator.DownloadAndEncode(ctx, result.URL)
	if !encodeOK {
		log.Printf("%s (B64) 下载/编码失败: %s", prefix, encoded)
		a.sender.SendText(req.Dest, "获取到图片URL，但在处理图片时失败了："+encoded)
		return a.finish(requestID, req, model, size, false, Outcome{StatusFailed, "图片处理失败(Base64): " + encoded})
	}

	if !a.sender.SendImage(req.Dest, encoded) {
		a.sender.SendText(req.Dest, MSG_SEND_FAILED)
		return a.finish(requestID, req, model, size, false, Outcome{StatusFailed, "图片发送失败 (Base64)"})
	}
	if a.cache != nil {
		a.cache.Put(cacheKey, encoded)
		a.cache.EvictIfOverCapacity()
	}
	a.notify(ctx, req.Dest, MSG_SENT, "图片生成成功，优化表达后发送给用户")
	return a.finish(requestID, req, model, size, false, Outcome{StatusDelivered, "图片已成功生成并发送"})
}

// resolveSize never rejects: a bad caller size falls back to the configured
// default, and a bad configured default to the fixed one.
func (a *ImageAction) resolveSize(prefix, requested string) string {
	if ark.ValidateSize(requested) {
		return requested
	}
	if requested != "" {
		log.Printf("%s 无效的图片尺寸: %s，使用默认值", prefix, requested)
	}
	if size := a.cfg.DefaultSize(); ark.ValidateSize(size) {
		return size
	}
	return DEFAULT_SIZE
}

// notify sends a status line, rephrased by the rewriter when one is wired
func (a *ImageAction) notify(ctx context.Context, dest Destination, raw, reason string) {
	a.sender.SendText(dest, a.rewriter.Rewrite(ctx, raw, reason))
}

func (a *ImageAction) finish(requestID string, req Request, model, size string, fromCache bool, out Outcome) Outcome {
	if a.db != nil {
		record := &GenerationRecord{
			RequestID: requestID,
			GuildID:   req.Dest.GuildID,
			ChannelID: req.Dest.ChannelID,
			UserID:    req.Dest.UserID,
			Prompt:    req.Description,
			Model:     model,
			Size:      size,
			Status:    out.Status.String(),
			Message:   out.Message,
			FromCache: fromCache,
		}
		if err := a.db.CreateGenerationRecord(record); err != nil {
			log.Println("unable to record generation outcome: ", err)
		}
	}
	return out
}
