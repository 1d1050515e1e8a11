package handler

import (
	"fmt"
	"srgbot/internal/core/domain"
	"srgbot/internal/core/port"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type CommandSession interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand,
		options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// RegisterCommands replaces the application's slash commands with commands.
// An empty guildID registers them globally.
func RegisterCommands(s CommandSession, appID, guildID string, commands []port.Command) error {
	defs := make([]*discordgo.ApplicationCommand, 0, len(commands))
	for _, cmd := range commands {
		defs = append(defs, ApplicationCommand(cmd))
	}

	created, err := s.ApplicationCommandBulkOverwrite(appID, guildID, defs)
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	log.Info().Int("commands", len(created)).Str("guildId", guildID).Msg("registered application commands")

	return nil
}

// ApplicationCommand builds the slash command definition of cmd. Integer
// ranges are left to the validator so out-of-range values fall back to the
// default instead of being rejected by Discord.
func ApplicationCommand(cmd port.Command) *discordgo.ApplicationCommand {
	def := &discordgo.ApplicationCommand{
		Name:        cmd.GetCommand(),
		Description: cmd.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}

	for _, spec := range cmd.Options() {
		opt := &discordgo.ApplicationCommandOption{
			Name:        spec.Name,
			Description: spec.Description,
			Required:    spec.Required,
		}

		switch spec.Kind {
		case domain.KindChoice:
			opt.Type = discordgo.ApplicationCommandOptionString
			for _, c := range spec.Choices {
				opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{Name: c.Label, Value: c.Value})
			}
		case domain.KindInteger:
			opt.Type = discordgo.ApplicationCommandOptionInteger
		case domain.KindUser:
			opt.Type = discordgo.ApplicationCommandOptionUser
		case domain.KindChannel:
			opt.Type = discordgo.ApplicationCommandOptionChannel
		}

		def.Options = append(def.Options, opt)
	}

	return def
}
