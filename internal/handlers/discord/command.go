package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Embed colors
const (
	colorInfo    = 0x5865f2
	colorSuccess = 0x00ff00
	colorWarning = 0xffa500
	colorError   = 0xff0000
	colorAltered = 0x9b59b6
)

// CommandHandler defines the interface for Discord command handlers
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Handle processes a Discord interaction
	Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetCommand returns the application command definition
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

// response is a rendered reply, built without touching the Discord session
type response struct {
	Title       string
	Description string
	Fields      []*discordgo.MessageEmbedField
	Color       int
	Ephemeral   bool
	Components  []discordgo.MessageComponent
}

func errorResponse(message string) *response {
	return &response{
		Title:       "Error",
		Description: message,
		Color:       colorError,
		Ephemeral:   true,
	}
}

func (r *response) data() *discordgo.InteractionResponseData {
	color := r.Color
	if color == 0 {
		color = colorInfo
	}
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       r.Title,
			Description: r.Description,
			Color:       color,
			Fields:      r.Fields,
		}},
	}
	if len(r.Components) > 0 {
		data.Components = []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: r.Components},
		}
	}
	if r.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return data
}

// send answers a slash command with a new message
func (r *response) send(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: r.data(),
	})
}

// update replaces the message a component was attached to
func (r *response) update(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := r.data()
	if data.Components == nil {
		data.Components = []discordgo.MessageComponent{}
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
}

// RespondWithError sends an error response to an interaction
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, errorMessage string) error {
	return errorResponse(errorMessage).send(s, i)
}

// RespondWithEphemeralMessage sends an ephemeral message response to an interaction
func RespondWithEphemeralMessage(s *discordgo.Session, i *discordgo.InteractionCreate, message string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// interactionUser returns the invoking user's ID and display name. Guild
// interactions carry a member; direct messages only carry a user.
func interactionUser(i *discordgo.InteractionCreate) (string, string) {
	if i.Member != nil && i.Member.User != nil {
		name := i.Member.User.Username
		if i.Member.Nick != "" {
			name = i.Member.Nick
		}
		return i.Member.User.ID, name
	}
	if i.User != nil {
		return i.User.ID, i.User.Username
	}
	return "", ""
}
