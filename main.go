package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"seedbot/seedbot"
)

const DEFAULT_CONFIG_PATH = "config.yaml"

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Println("Initializing...")
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file loaded: ", err)
	}

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		log.Fatalln("could not read discord token")
	}

	configPath := os.Getenv("SEEDBOT_CONFIG")
	if configPath == "" {
		configPath = DEFAULT_CONFIG_PATH
	}
	cfg, err := seedbot.LoadConfig(configPath)
	if err != nil {
		log.Fatalln("unable to load config: ", err)
	}
	if key := os.Getenv("VOLCANO_API_KEY"); key != "" {
		cfg.API.VolcanoGenerateAPIKey = key
	}

	// optional, only powers the reply rewriter
	openAIKey := os.Getenv("OPEN_AI_KEY")

	bot, err := seedbot.NewSeedbot(cfg, token, openAIKey)
	if err != nil {
		log.Fatalln("unable to create bot: ", err)
	}
	if err := bot.Run(); err != nil {
		log.Fatalln(err)
	}
}
