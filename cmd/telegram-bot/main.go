package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/mpetrov/edgefinder/internal/pkg/models"
)

const defaultDashboardURL = "http://localhost:8080"

type BotConfig struct {
	Token          string
	DashboardURL   string
	APIKey         string // The Odds API key passed through to the dashboard
	UpdateTimeout  int
	AllowedUserIDs []int64 // Optional: restrict access to specific users
}

func main() {
	_ = godotenv.Load()

	var token string
	var dashboardURL string
	var apiKey string
	var allowedUsers string

	flag.StringVar(&token, "token", "", "Telegram bot token (required, or set TELEGRAM_BOT_TOKEN env var)")
	flag.StringVar(&dashboardURL, "dashboard-url", defaultDashboardURL, "EdgeFinder dashboard service URL")
	flag.StringVar(&apiKey, "api-key", "", "The Odds API key (or set ODDS_API_KEY env var)")
	flag.StringVar(&allowedUsers, "allowed-users", "", "Comma-separated list of allowed user IDs (optional)")
	flag.Parse()

	if token == "" {
		token = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	if token == "" {
		log.Fatal("Telegram bot token is required. Set -token flag or TELEGRAM_BOT_TOKEN env var")
	}

	if apiKey == "" {
		apiKey = os.Getenv("ODDS_API_KEY")
	}

	if dashboardURL == defaultDashboardURL {
		if envURL := os.Getenv("DASHBOARD_URL"); envURL != "" {
			dashboardURL = envURL
		}
	}

	config := BotConfig{
		Token:         token,
		DashboardURL:  strings.TrimSuffix(dashboardURL, "/"),
		APIKey:        apiKey,
		UpdateTimeout: 60,
	}

	if allowedUsers != "" {
		for _, idStr := range strings.Split(allowedUsers, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err == nil {
				config.AllowedUserIDs = append(config.AllowedUserIDs, id)
			}
		}
	}

	log.Printf("Starting EdgeFinder Telegram bot...")
	log.Printf("Dashboard URL: %s", config.DashboardURL)

	bot, err := tgbotapi.NewBotAPI(config.Token)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	bot.Debug = false
	log.Printf("Authorized on account %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = config.UpdateTimeout

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping bot...")
		cancel()
	}()

	updates := bot.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-ctx.Done():
				bot.StopReceivingUpdates()
				return
			case update := <-updates:
				if update.Message == nil {
					continue
				}

				if len(config.AllowedUserIDs) > 0 {
					allowed := false
					for _, id := range config.AllowedUserIDs {
						if update.Message.From.ID == id {
							allowed = true
							break
						}
					}
					if !allowed {
						msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Access denied. You are not authorized to use this bot.")
						bot.Send(msg)
						continue
					}
				}

				handleMessage(bot, update.Message, config)
			}
		}
	}()

	<-ctx.Done()
	log.Println("Telegram bot stopped")
}

// runOptions are the per-message settings parsed from the user's command.
type runOptions struct {
	top10   bool
	minEdge float64
	query   string
}

func handleMessage(bot *tgbotapi.BotAPI, message *tgbotapi.Message, config BotConfig) {
	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}

	if strings.HasPrefix(text, "/") {
		parts := strings.Fields(text)
		command := strings.ToLower(parts[0])

		switch command {
		case "/start", "/help":
			sendHelpMessage(bot, message.Chat.ID)
		case "/run":
			fetchAndSendCards(bot, message.Chat.ID, config, parseRunOptions(parts[1:]))
		case "/top":
			opts := parseRunOptions(parts[1:])
			opts.top10 = true
			fetchAndSendCards(bot, message.Chat.ID, config, opts)
		default:
			msg := tgbotapi.NewMessage(message.Chat.ID, "Unknown command. Use /help to see available commands.")
			bot.Send(msg)
		}
		return
	}

	// Free text: "run", "top", or a team name to filter by.
	parts := strings.Fields(strings.ToLower(text))
	switch parts[0] {
	case "run":
		fetchAndSendCards(bot, message.Chat.ID, config, parseRunOptions(parts[1:]))
	case "top":
		opts := parseRunOptions(parts[1:])
		opts.top10 = true
		fetchAndSendCards(bot, message.Chat.ID, config, opts)
	default:
		fetchAndSendCards(bot, message.Chat.ID, config, runOptions{query: text})
	}
}

// parseRunOptions understands "top10" and a numeric min edge, e.g.
// "/run top10 2.5" or "/run arsenal".
func parseRunOptions(args []string) runOptions {
	var opts runOptions
	var queryParts []string
	for _, arg := range args {
		a := strings.ToLower(arg)
		if a == "top10" || a == "top" {
			opts.top10 = true
			continue
		}
		if f, err := strconv.ParseFloat(a, 64); err == nil && f >= 0 && f <= 10 {
			opts.minEdge = f
			continue
		}
		queryParts = append(queryParts, arg)
	}
	opts.query = strings.Join(queryParts, " ")
	return opts
}

func sendHelpMessage(bot *tgbotapi.BotAPI, chatID int64) {
	helpText := `🧠 *EdgeFinder Bot*

Compares a baseline model against bookmaker moneyline odds and recommends PLAY, PASS or NEUTRAL per game.

*Available Commands:*

/run [top10] [min edge] [team] - Run the model
  Example: /run top10 2.5
  Example: /run arsenal

/top - Run and show top 10 by model win %

/help - Show this help message

You can also just send a team name to filter by it.`

	msg := tgbotapi.NewMessage(chatID, helpText)
	msg.ParseMode = tgbotapi.ModeMarkdown
	bot.Send(msg)
}

func fetchAndSendCards(bot *tgbotapi.BotAPI, chatID int64, config BotConfig, opts runOptions) {
	if config.APIKey == "" {
		msg := tgbotapi.NewMessage(chatID, "No Odds API key configured. Start the bot with -api-key or ODDS_API_KEY.")
		bot.Send(msg)
		return
	}

	typing := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	bot.Send(typing)

	q := url.Values{}
	q.Set("api_key", config.APIKey)
	if opts.top10 {
		q.Set("top10", "true")
	}
	if opts.minEdge > 0 {
		q.Set("min_edge", strconv.FormatFloat(opts.minEdge, 'f', -1, 64))
	}
	if opts.query != "" {
		q.Set("q", opts.query)
	}

	runURL := fmt.Sprintf("%s/run?%s", config.DashboardURL, q.Encode())

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(runURL)
	if err != nil {
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Failed to reach dashboard service: %v", err))
		bot.Send(msg)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = fmt.Sprintf("dashboard returned status %d", resp.StatusCode)
		}
		msg := tgbotapi.NewMessage(chatID, "❌ "+apiErr.Error)
		bot.Send(msg)
		return
	}

	var result models.RunResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Failed to decode dashboard response: %v", err))
		bot.Send(msg)
		return
	}

	if len(result.Cards) == 0 {
		msg := tgbotapi.NewMessage(chatID, "No games found for the current window.")
		bot.Send(msg)
		return
	}

	for _, card := range result.Cards {
		msg := tgbotapi.NewMessage(chatID, card.Text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := bot.Send(msg); err != nil {
			log.Printf("Failed to send card: %v", err)
		}
	}
}
