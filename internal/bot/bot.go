package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/susu3304/warikan/internal/logger"
	"github.com/susu3304/warikan/internal/render"
	"github.com/susu3304/warikan/internal/split"
)

type Bot struct {
	session *discordgo.Session
	split   *split.Service
	format  render.Formatter
	log     *logger.Logger
}

func New(token string, svc *split.Service, format render.Formatter, log *logger.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	bot := &Bot{
		session: session,
		split:   svc,
		format:  format,
		log:     log.With("component", "bot"),
	}

	// Register event handlers
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onGuildCreate)
	session.AddHandler(bot.onInteractionCreate)

	// Slash commands only; no message content is read.
	session.Identify.Intents = discordgo.IntentsGuilds

	return bot, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	b.log.Info("Discord bot is running")
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}
