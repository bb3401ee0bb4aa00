package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/susu3304/warikan/internal/commands"
)

func (b *Bot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	b.log.Info("connected", "user", event.User.Username)

	// Register commands for all guilds
	for _, guild := range event.Guilds {
		if err := b.registerGuildCommands(guild.ID); err != nil {
			b.log.Warn("failed to register commands", "guild", guild.ID, "error", err)
		}
	}
}

func (b *Bot) onGuildCreate(s *discordgo.Session, event *discordgo.GuildCreate) {
	b.log.Debug("guild available, ensuring commands", "guild", event.ID, "name", event.Name)
	if err := b.registerGuildCommands(event.ID); err != nil {
		b.log.Warn("failed to register commands", "guild", event.ID, "error", err)
	}
}

func (b *Bot) registerGuildCommands(guildID string) error {
	cmds := commands.GetCommands()
	// Delete existing commands and register new ones
	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, guildID, cmds)
	if err != nil {
		return err
	}

	b.log.Debug("registered application commands", "guild", guildID)
	return nil
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	switch data.Name {
	case "split":
		commands.HandleSplit(s, i, b.split, b.format, b.log)
	case "history":
		commands.HandleHistory(s, i, b.split, b.format, b.log)
	}
}
