package sender

import (
	"context"
	"fmt"
	"srgbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Session is the part of *discordgo.Session used to answer interactions.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse,
		options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Discord struct {
	session Session
}

func NewDiscord(session Session) *Discord {
	return &Discord{session: session}
}

const (
	EmbedFieldLimit       = 25
	EmbedFieldValueLimit  = 1024
	EmbedDescriptionLimit = 4096
)

func interaction(invocation *domain.Invocation) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:        invocation.ID,
		AppID:     invocation.AppID,
		Token:     invocation.Token,
		GuildID:   invocation.GuildID,
		ChannelID: invocation.ChannelID,
	}
}

func (d *Discord) Acknowledge(ctx context.Context, invocation *domain.Invocation) error {
	err := d.session.InteractionRespond(interaction(invocation), &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(ctx))
	if err != nil {
		log.Error().Err(err).Str("invocationId", invocation.ID).Msg("failed to defer interaction")
		return err
	}

	return nil
}

func (d *Discord) Deny(ctx context.Context, invocation *domain.Invocation, message string) error {
	return d.session.InteractionRespond(interaction(invocation), &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
}

func (d *Discord) Send(ctx context.Context, invocation *domain.Invocation, envelope domain.Envelope,
	attachment *domain.Attachment) error {
	params := &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{Embed(envelope)},
	}

	if attachment != nil {
		params.Files = []*discordgo.File{{
			Name:        attachment.Filename,
			ContentType: attachment.ContentType,
			Reader:      attachment.Reader,
		}}
	}

	_, err := d.session.FollowupMessageCreate(interaction(invocation), true, params, discordgo.WithContext(ctx))
	if err != nil {
		log.Error().Err(err).Str("invocationId", invocation.ID).Msg("failed to send followup")
		return fmt.Errorf("followup failed: %w", err)
	}

	return nil
}

// Embed converts an envelope to a Discord embed, truncating to the platform limits.
func Embed(envelope domain.Envelope) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       envelope.Title,
		Description: truncate(envelope.Description, EmbedDescriptionLimit),
		Color:       envelope.Color,
	}

	for i, f := range envelope.Fields {
		if i == EmbedFieldLimit {
			log.Warn().Int("fields", len(envelope.Fields)).Msg("dropping embed fields over limit")
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  truncate(f.Value, EmbedFieldValueLimit),
			Inline: f.Inline,
		})
	}

	if envelope.Image != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: envelope.Image}
	}

	if envelope.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: envelope.Footer}
	}

	return embed
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
