package handler

import (
	"context"
	"fmt"
	"srgbot/internal/core/domain"
	"srgbot/internal/core/port"
	"srgbot/internal/core/service"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog/log"
)

type Command struct {
	ctx             context.Context
	cancel          context.CancelFunc
	commandRegistry port.CommandRegistry
	pool            *workerpool.WorkerPool

	mu      sync.RWMutex
	stopped bool
}

// NewCommand dispatches interactions onto a pool of workers. Invocations inherit
// the values of ctx but not its cancellation; they are only cancelled when Stop
// gives up waiting for them.
func NewCommand(ctx context.Context, commandRegistry port.CommandRegistry, workers int) *Command {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	return &Command{
		ctx:             runCtx,
		cancel:          cancel,
		commandRegistry: commandRegistry,
		pool:            workerpool.New(workers),
	}
}

// Handle is registered with the Discord session for InteractionCreate events.
func (c *Command) Handle(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	invocation := NewInvocation(i.Interaction)

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.stopped || c.pool.Stopped() {
		log.Warn().Str("command", invocation.Command).Str("invocationId", invocation.ID).
			Msg("shutting down, dropping command")
		return
	}

	log.Debug().Str("command", invocation.Command).Str("invocationId", invocation.ID).Msg("received command")

	c.pool.Submit(func() {
		c.Dispatch(c.ctx, invocation)
	})
}

// Dispatch runs one invocation to completion. Errors and panics stay inside
// the invocation and are handed to the error classifier.
func (c *Command) Dispatch(ctx context.Context, invocation *domain.Invocation) {
	defer func() {
		if r := recover(); r != nil {
			service.Handle(invocation, fmt.Errorf("panic while handling command: %v", r))
		}
	}()

	commandHandler, err := c.commandRegistry.Get(invocation.Command)
	if err != nil {
		service.Handle(invocation, fmt.Errorf("no handler for command: %w", err))
		return
	}

	err = commandHandler.Respond(ctx, invocation)
	if err != nil {
		service.Handle(invocation, err)
		return
	}

	log.Debug().Str("invocationId", invocation.ID).Str("state", string(invocation.State())).
		Dur("elapsed", time.Since(invocation.Received)).Msg("invocation finished")
}

// Stop rejects new interactions and waits for in-flight invocations to finish.
// Once ctx is done the remaining invocations are cancelled and Stop waits for
// them to return.
func (c *Command) Stop(ctx context.Context) {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.pool.StopWait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn().Msg("drain timed out, cancelling running commands")
		c.cancel()
		<-done
	}

	c.cancel()
}

// NewInvocation copies the values needed by the command pipeline out of the
// interaction.
func NewInvocation(i *discordgo.Interaction) *domain.Invocation {
	data := i.ApplicationCommandData()

	invocation := &domain.Invocation{
		ID:        i.ID,
		AppID:     i.AppID,
		Token:     i.Token,
		Command:   data.Name,
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		Options:   make(map[string]any, len(data.Options)),
		Received:  time.Now(),
	}

	switch {
	case i.Member != nil && i.Member.User != nil:
		invocation.Actor = actor(i.Member.User, i.Member)
		invocation.Actor.Administrator = i.Member.Permissions&discordgo.PermissionAdministrator != 0
	case i.User != nil:
		invocation.Actor = actor(i.User, nil)
	}

	for _, opt := range data.Options {
		invocation.Options[opt.Name] = optionValue(opt, data.Resolved)
	}

	return invocation
}

func optionValue(opt *discordgo.ApplicationCommandInteractionDataOption,
	resolved *discordgo.ApplicationCommandInteractionDataResolved) any {
	switch opt.Type {
	case discordgo.ApplicationCommandOptionInteger:
		return opt.IntValue()
	case discordgo.ApplicationCommandOptionUser:
		id, _ := opt.Value.(string)
		user := &discordgo.User{ID: id}
		var member *discordgo.Member
		if resolved != nil {
			if u, ok := resolved.Users[id]; ok {
				user = u
			}
			member = resolved.Members[id]
		}
		return actor(user, member)
	case discordgo.ApplicationCommandOptionChannel:
		id, _ := opt.Value.(string)
		channel := domain.Channel{ID: id, Name: id, Mention: "<#" + id + ">"}
		if resolved != nil {
			if ch, ok := resolved.Channels[id]; ok {
				channel.Name = ch.Name
			}
		}
		return channel
	default:
		return opt.Value
	}
}

func actor(user *discordgo.User, member *discordgo.Member) domain.Actor {
	return domain.Actor{
		ID:      user.ID,
		Name:    displayName(user, member),
		Mention: user.Mention(),
		Bot:     user.Bot,
	}
}

func displayName(user *discordgo.User, member *discordgo.Member) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	if user.Username == "" {
		return user.ID
	}

	return user.Username
}
