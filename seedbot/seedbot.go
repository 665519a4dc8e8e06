package seedbot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	openai "github.com/sashabaranov/go-openai"

	"seedbot/ark"
)

const (
	MAINTENANCE_INTERVAL = 1 * time.Hour
	HISTORY_RETENTION    = 30 * 24 * time.Hour
)

type Seedbot struct {
	DiscordSession DiscordSession
	AIClient       *openai.Client
	Config         *Config
	Cache          *ResultCache
	DB             Database
	Action         *ImageAction
	Scheduler      *Scheduler
}

// NewSeedbot wires the bot. openAIKey may be empty; the reply rewriter is
// then disabled and canned status lines go out verbatim.
func NewSeedbot(cfg *Config, discordToken, openAIKey string) (*Seedbot, error) {
	session, err := discordgo.New("Bot " + discordToken)
	if err != nil {
		return nil, fmt.Errorf("unable to get discord client: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	var aiClient *openai.Client
	if openAIKey != "" {
		aiClient = openai.NewClient(openAIKey)
	}

	log.Println("Connecting to db")
	db, err := NewDB("seedbot.db")
	if err != nil {
		return nil, fmt.Errorf("unable to get database connection: %w", err)
	}

	scheduler, err := NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("could not create scheduler: %w", err)
	}

	var cache *ResultCache
	if cfg.CacheEnabled() {
		cache = NewResultCache(cfg.CacheMaxSize())
	}

	generator := ark.NewClient(ark.Options{
		BaseURL: cfg.API.BaseURL,
		APIKey:  cfg.API.VolcanoGenerateAPIKey,
	})

	dg := NewDiscordBot(session)
	action := NewImageAction(
		cfg,
		generator,
		cache,
		NewDiscordSender(dg),
		NewReplyRewriter(aiClient, ""),
		db,
	)

	return &Seedbot{
		DiscordSession: dg,
		AIClient:       aiClient,
		Config:         cfg,
		Cache:          cache,
		DB:             db,
		Action:         action,
		Scheduler:      scheduler,
	}, nil
}

func (s *Seedbot) Run() error {
	err := s.DiscordSession.Open()
	if err != nil {
		return fmt.Errorf("error unable to open discord session %w", err)
	}
	defer s.DiscordSession.Close()

	s.DiscordSession.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		messageCreate(s.DiscordSession, m, s)
	})

	if recent, err := s.DB.GetRecentGenerationRecords(1); err == nil && len(recent) > 0 {
		log.Printf("last generation was %q at %s", ark.Truncate(recent[0].Prompt, 30), recent[0].CreatedAt.Format(time.RFC3339))
	}

	s.Scheduler.Start()
	err = s.Scheduler.AddDurationJob(MAINTENANCE_INTERVAL, func() {
		s.maintain()
	})
	if err != nil {
		log.Println("could not schedule maintenance job: ", err)
	}

	log.Println("Bot is now running. Press CTRL+C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(
		sc,
		syscall.SIGINT,
		syscall.SIGTERM,
		os.Interrupt,
	)
	<-sc
	return nil
}

// maintain purges old history records and logs cache counters
func (s *Seedbot) maintain() {
	if s.DB != nil {
		purged, err := s.DB.PurgeGenerationRecords(time.Now().Add(-HISTORY_RETENTION))
		if err != nil {
			log.Println("could not purge generation records: ", err)
		} else if purged > 0 {
			log.Printf("purged %d generation records", purged)
		}
	}
	if s.Cache != nil {
		hits, misses, entries := s.Cache.Stats()
		log.Printf("image cache: %d entries, %d hits, %d misses", entries, hits, misses)
	}
}
